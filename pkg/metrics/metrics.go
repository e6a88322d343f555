package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Server Metrics

	// APIRequestsTotal API请求总数
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration API请求处理时长
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Appraisal Metrics

	// SubmissionAnswerUpdatesTotal 答案更新总数
	SubmissionAnswerUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_answer_updates_total",
			Help: "Total number of submission answer updates",
			// mode: single, bulk
		},
		[]string{"mode", "result"},
	)

	// SubmissionVersionConflictsTotal 乐观锁冲突次数
	SubmissionVersionConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submission_version_conflicts_total",
			Help: "Total number of optimistic-lock conflicts on submission updates",
		},
	)

	// SummaryCacheHitsTotal 汇总缓存命中次数
	SummaryCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_cache_hits_total",
			Help: "Total number of summary cache lookups",
			// result: hit, miss, bypass
		},
		[]string{"result"},
	)
)
