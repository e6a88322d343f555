package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/api/handler"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/api/middleware"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
)

func Setup(
	authHandler *handler.AuthHandler,
	cycleHandler *handler.CycleHandler,
	sectionHandler *handler.SectionHandler,
	inputHandler *handler.InputHandler,
	submissionHandler *handler.SubmissionHandler,
	appraisalHandler *handler.AppraisalHandler,
	departmentGroupHandler *handler.DepartmentGroupHandler,
	organizationHandler *handler.OrganizationHandler,
	authService *service.AuthService,
	mode string,
) *gin.Engine {
	gin.SetMode(mode)
	r := gin.New()

	// 使用自定义的 recovery 中间件（打印详细错误信息）
	r.Use(middleware.RecoveryMiddleware())
	// 使用 Gin 的 Logger 中间件（记录请求日志）
	r.Use(gin.Logger())

	// 中间件
	r.Use(middleware.CORS())
	r.Use(middleware.MetricsMiddleware())

	// 公开API（不需要认证）
	api := r.Group("/api")
	{
		// 认证相关（公开）
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	// 需要认证的API
	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(authService))
	{
		authorized.GET("/auth/me", authHandler.GetCurrentUser)

		// 考核周期
		cycles := authorized.Group("/appraisal-cycles")
		{
			cycles.POST("", cycleHandler.Create)
			cycles.GET("", cycleHandler.List)
			cycles.GET("/:id", cycleHandler.Get)
			cycles.PUT("/:id", cycleHandler.Update)
			cycles.DELETE("/:id", cycleHandler.Delete)
		}

		// 考核小节
		sections := authorized.Group("/appraisal-sections")
		{
			sections.POST("", sectionHandler.Create)
			sections.GET("", sectionHandler.List)
			sections.GET("/:id", sectionHandler.Get)
			sections.PUT("/:id", sectionHandler.Update)
			sections.DELETE("/:id", sectionHandler.Delete)
		}

		// 考核表单
		inputs := authorized.Group("/appraisal-inputs")
		{
			inputs.POST("", inputHandler.Create)
			inputs.GET("", inputHandler.List)
			inputs.GET("/staff/:staff_id", inputHandler.ListForStaff)
			inputs.GET("/section/:section_id", inputHandler.GetBySection)
			inputs.GET("/:id", inputHandler.Get)
			inputs.PUT("/:id", inputHandler.Update)
			inputs.DELETE("/:id", inputHandler.Delete)
		}

		// 作答记录
		submissions := authorized.Group("/appraisal-submissions")
		{
			submissions.POST("", submissionHandler.Create)
			submissions.GET("", submissionHandler.List)
			submissions.GET("/summary", submissionHandler.SummaryResults)
			submissions.GET("/summary/:staff_id", submissionHandler.Summary)
			submissions.GET("/:id", submissionHandler.Get)
			submissions.PATCH("/:id/answer", submissionHandler.UpdateAnswer)
			submissions.PATCH("/:id/answers", submissionHandler.UpsertAnswers)
			submissions.POST("/:id/submit", submissionHandler.Submit)
			submissions.POST("/:id/complete", submissionHandler.Complete)
			submissions.DELETE("/:id", submissionHandler.Delete)
		}

		// 考核活动
		appraisals := authorized.Group("/appraisals")
		{
			appraisals.POST("", appraisalHandler.Create)
			appraisals.GET("", appraisalHandler.List)
			appraisals.GET("/:id", appraisalHandler.Get)
			appraisals.PUT("/:id", appraisalHandler.Update)
			appraisals.DELETE("/:id", appraisalHandler.Delete)
		}

		// 部门组
		groups := authorized.Group("/department-groups")
		{
			groups.POST("", departmentGroupHandler.Create)
			groups.GET("", departmentGroupHandler.List)
			groups.GET("/:id", departmentGroupHandler.Get)
			groups.PUT("/:id", departmentGroupHandler.Update)
			groups.DELETE("/:id", departmentGroupHandler.Delete)
		}

		// 部门与员工（部门增删仅管理员可用）
		departments := authorized.Group("/departments")
		{
			departments.POST("", middleware.AdminOnly(), organizationHandler.CreateDepartment)
			departments.GET("", organizationHandler.ListDepartments)
			departments.GET("/:id", organizationHandler.GetDepartment)
			departments.DELETE("/:id", middleware.AdminOnly(), organizationHandler.DeleteDepartment)
		}
		staff := authorized.Group("/staff")
		{
			staff.POST("", organizationHandler.CreateStaff)
			staff.GET("", organizationHandler.ListStaff)
			staff.GET("/:id", organizationHandler.GetStaff)
			staff.PUT("/:id", organizationHandler.UpdateStaff)
			staff.DELETE("/:id", organizationHandler.DeleteStaff)
		}
	}

	// Prometheus Metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check (支持 GET 和 HEAD 方法)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"type":   "api-server",
		})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	return r
}
