package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	AddResultAdded            = "added"
	AddResultDuplicate        = "duplicate"
	AddResultCapacityExceeded = "capacity_exceeded"
	AddResultNotFound         = "not_found"
)

var (
	// Outcomes of adding a course to a visitor's comparison selection
	ComparisonAddTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "comparison_add_total",
		Help: "Comparison add attempts by outcome",
	}, []string{"result"})

	// Latency of resolving a selection and building the comparison matrix
	ComparisonMatrixLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_matrix_latency_seconds",
		Help:    "Latency of comparison matrix builds",
		Buckets: prometheus.DefBuckets,
	})

	ComparisonRequestedCourses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comparison_requested_courses_total",
		Help: "Course ids requested for comparison",
	})

	ComparisonResolvedCourses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comparison_resolved_courses_total",
		Help: "Course ids that resolved to published courses",
	})

	// Live selections held in process memory
	ComparisonLiveSelections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "comparison_live_selections",
		Help: "Visitor selections currently held in memory",
	})

	SearchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "course_search_requests_total",
		Help: "Total number of quick search requests",
	})
)

func Init() {
	prometheus.MustRegister(
		ComparisonAddTotal,
		ComparisonMatrixLatency,
		ComparisonRequestedCourses,
		ComparisonResolvedCourses,
		ComparisonLiveSelections,
		SearchRequests,
	)
}
