package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
)

// parseListOptions 从 query 参数解析分页和排序
func parseListOptions(c *gin.Context) repository.ListOptions {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return repository.ListOptions{
		Skip:           skip,
		Limit:          limit,
		OrderBy:        c.Query("order_by"),
		OrderDirection: c.Query("order_direction"),
	}
}

// statusForError 业务错误到 HTTP 状态码的统一映射
func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, repository.ErrInvalidSortKey),
		errors.Is(err, appraisalService.ErrSubmissionClosed),
		errors.Is(err, appraisalService.ErrGroupNotFound),
		errors.Is(err, appraisalService.ErrFieldNotFound),
		errors.Is(err, appraisalService.ErrInvalidAnswerData),
		errors.Is(err, appraisalService.ErrYearMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError 记录日志并按映射返回错误响应
func respondError(c *gin.Context, err error, context ...string) {
	model.HandleError(c, statusForError(err), err, context...)
}
