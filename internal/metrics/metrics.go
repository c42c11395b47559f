package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"flowShopSolver/internal/flowshop"
)

var (
	// Registry - отдельный реестр Prometheus для решателя.
	Registry = prometheus.NewRegistry()

	// Evaluations считает вычисления целевой функции по видам.
	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fsp_evaluations_total", Help: "Objective evaluations by kind."},
		[]string{"kind"},
	)
	// Solves считает запуски решателя по методу и исходу.
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fsp_solves_total", Help: "Solve calls by method and status."},
		[]string{"mh", "status"},
	)
	// SolveDuration - длительность решения в секундах.
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "fsp_solve_duration_seconds", Help: "Solve duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10)},
		[]string{"mh"},
	)
	// LandscapePoints считает классифицированные точки ландшафта.
	LandscapePoints = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fsp_landscape_points_total", Help: "Sampled landscape points by class."},
		[]string{"class"},
	)
	// WalkSteps считает шаги случайных блужданий.
	WalkSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fsp_walk_steps_total", Help: "Random walk steps by strategy."},
		[]string{"strategy"},
	)
)

var regOnce sync.Once

// RegisterDefault регистрирует коллекторы в Registry (однократно).
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Evaluations)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(LandscapePoints)
		Registry.MustRegister(WalkSteps)
		Registry.MustRegister(collectors.NewGoCollector())
	})
}

// ObserveEvaluations добавляет счётчики задачи к метрикам.
func ObserveEvaluations(c flowshop.EvalCounts) {
	Evaluations.WithLabelValues("full").Add(float64(c.Full))
	Evaluations.WithLabelValues("neighbor").Add(float64(c.Neighbor))
	Evaluations.WithLabelValues("partial").Add(float64(c.Partial))
}

// WriteTextfile сохраняет текущие значения в формате textfile-коллектора.
func WriteTextfile(path string) error {
	RegisterDefault()
	return prometheus.WriteToTextfile(path, Registry)
}
