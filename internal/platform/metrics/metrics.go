package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RequestDuration   *prometheus.HistogramVec
	UsersRegistered   prometheus.Counter
	TemplatesCreated  prometheus.Counter
	WorkoutsScheduled prometheus.Counter
	WorkoutsCompleted prometheus.Counter
	WorkoutsReset     prometheus.Counter
	WeightLogged      prometheus.Counter
}

// New creates all metrics and registers them on reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fittrack_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_users_registered_total",
			Help: "Total number of users registered",
		}),
		TemplatesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_templates_created_total",
			Help: "Total number of workout templates created",
		}),
		WorkoutsScheduled: factory.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_workouts_scheduled_total",
			Help: "Total number of daily workouts scheduled",
		}),
		WorkoutsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_workouts_completed_total",
			Help: "Total number of daily workouts marked completed",
		}),
		WorkoutsReset: factory.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_workouts_reset_total",
			Help: "Total number of completed workouts reset to upcoming",
		}),
		WeightLogged: factory.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_weight_logged_total",
			Help: "Total number of body weight entries written",
		}),
	}
}

// ObserveRequest satisfies the request latency middleware.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) IncrementUsersRegistered()   { m.UsersRegistered.Inc() }
func (m *Metrics) IncrementTemplatesCreated()  { m.TemplatesCreated.Inc() }
func (m *Metrics) IncrementWorkoutsScheduled() { m.WorkoutsScheduled.Inc() }
func (m *Metrics) IncrementWorkoutsCompleted() { m.WorkoutsCompleted.Inc() }
func (m *Metrics) IncrementWorkoutsReset()     { m.WorkoutsReset.Inc() }
func (m *Metrics) IncrementWeightLogged()      { m.WeightLogged.Inc() }
