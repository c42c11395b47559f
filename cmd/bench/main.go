package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"flowShopSolver/internal/bench"
	"flowShopSolver/internal/fla"
	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/logging"
	"flowShopSolver/internal/metrics"
	"flowShopSolver/internal/params"
)

// Параметры по умолчанию: NEH с упорядочиванием по сумме времён.
func defaultParams(mh string) map[string]string {
	return map[string]string{
		mh + ".Init":                      "neh",
		mh + ".Init.NEH.Ratio":            "0",
		mh + ".Init.NEH.Priority":         "sum_pij",
		mh + ".Init.NEH.PriorityWeighted": "no",
		mh + ".Init.NEH.PriorityOrder":    "decr",
		mh + ".Init.NEH.Insertion":        "first_best",
		mh + ".Comp.Strat":                "strict",
	}
}

func main() {
	// CLI флаги для настройки режима и политики запуска
	var (
		mode         = flag.String("mode", "solve", "режим: solve | fla | enumerate")
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		pairs        = flag.String("pairs", "20x5,50x10,100x20", "конфигурации: количество работ Х количество станков (через запятую)")
		algos        = flag.String("algos", "NEH,SA,TS", "список методов: NEH, SA, TS (через запятую)")
		runs         = flag.Int("runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
		workers      = flag.Int("workers", 4, "количество параллельных запусков")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

		// --- Описание задачи ---
		objective = flag.String("objective", "MAKESPAN", "целевая функция: MAKESPAN | FLOWTIME")
		budget    = flag.String("budget", "low", "бюджет: low | med | high")
		stopping  = flag.String("stopping", "EVALS", "критерий остановки: EVALS | TIME")

		// --- Параметры методов ---
		paramsFile = flag.String("params", "", "YAML-файл со значениями параметров (имя: значение)")
		specsFile  = flag.String("param_specs", "", "YAML-файл с описанием параметров для проверки значений")

		// --- Анализ ландшафта ---
		flaNeigh    = flag.String("fla_neigh", "shift", "окрестность: shift | swap")
		flaSamples  = flag.Int("fla_samples", 1000, "количество случайных точек на запуск")
		flaWalk     = flag.Int("fla_walk", 100, "длина случайного блуждания")
		flaStrategy = flag.String("fla_strategy", "random", "стратегия блуждания: random | first_improvement | best_improvement")

		// --- Наблюдаемость ---
		logLevel   = flag.String("log", "info", "уровень логирования: debug | info | warn | error")
		logJSON    = flag.Bool("log_json", false, "логи в формате JSON")
		metricsOut = flag.String("metrics_out", "", "файл для метрик Prometheus (textfile); пусто - не сохранять")
	)
	flag.Parse()

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}
	log := logging.NewText(os.Stderr, level)
	if *logJSON {
		log = logging.NewJSON(os.Stderr, level)
	}
	metrics.RegisterDefault()

	ctx := context.Background()

	problemSpecs := map[string]string{
		"objective":          *objective,
		"budget":             *budget,
		"stopping_criterion": *stopping,
	}
	if _, err := flowshop.DecodeProblemSpec(problemSpecs); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в описании задачи:", err)
		os.Exit(2)
	}

	cases, err := parsePairs(*pairs, *instanceSeed, problemSpecs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
		Workers:       *workers,
		Logger:        log,
	}

	switch *mode {
	case "solve":
		selected, err := selectAlgorithms(*algos, *paramsFile, *specsFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в параметрах:", err)
			os.Exit(2)
		}
		err = runSolve(ctx, runner, cases, selected, *out)
		exitOnError(err)
	case "fla":
		kind, err := flowshop.ParseMoveKind(*flaNeigh)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт:", err)
			os.Exit(2)
		}
		l := bench.Landscape{Neighborhood: kind, Samples: *flaSamples, WalkLength: *flaWalk, WalkStrategy: *flaStrategy}
		exitOnError(runLandscape(ctx, runner, cases, l, *out))
	case "enumerate":
		exitOnError(runEnumerate(cases, problemSpecs))
	default:
		fmt.Fprintf(os.Stderr, "Неизвестный режим %q\n", *mode)
		os.Exit(2)
	}

	if *metricsOut != "" {
		if err := metrics.WriteTextfile(*metricsOut); err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка при записи метрик:", err)
			os.Exit(1)
		}
	}
}

func runSolve(ctx context.Context, runner bench.Runner, cases []bench.Case, selected []bench.Algorithm, out string) error {
	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; %d работ %d машин (общее кол-во запусков=%d)...\n", a.Name, c.Jobs, c.Machines, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				return err
			}
			records = append(records, rec)

			fmt.Printf("  Значение целевой функции: лучшее=%.0f среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms среднее отклонение=%.2fms | Вычислений: %.0f\n",
				rec.FitnessBest, rec.FitnessMean, rec.FitnessStd,
				rec.TimeMeanMs, rec.TimeStdMs, rec.EvalsMean,
			)
		}
	}
	if err := bench.WriteCSV(out, records); err != nil {
		return fmt.Errorf("запись в CSV: %w", err)
	}
	fmt.Println("Saved:", out)
	return nil
}

func runLandscape(ctx context.Context, runner bench.Runner, cases []bench.Case, l bench.Landscape, out string) error {
	var records []bench.LandscapeRecord
	for _, c := range cases {
		fmt.Printf("Анализ ландшафта: %d работ %d машин, окрестность %s...\n", c.Jobs, c.Machines, l.Neighborhood)
		rec, err := runner.RunLandscape(ctx, c, l)
		if err != nil {
			return err
		}
		records = append(records, rec)

		s := rec.Sample
		fmt.Printf("  Точек: %d | slmin=%d lmin=%d iplat=%d ledge=%d slope=%d lmax=%d slmax=%d | Конец блуждания: среднее=%.2f\n",
			s.Points(), s.SLMin, s.LMin, s.IPlat, s.Ledge, s.Slope, s.LMax, s.SLMax, rec.WalkEndMean)
	}
	if err := bench.WriteLandscapeCSV(out, records); err != nil {
		return fmt.Errorf("запись в CSV: %w", err)
	}
	fmt.Println("Saved:", out)
	return nil
}

// runEnumerate перебирает все перестановки небольших экземпляров.
func runEnumerate(cases []bench.Case, problemSpecs map[string]string) error {
	spec, err := flowshop.DecodeProblemSpec(problemSpecs)
	if err != nil {
		return err
	}
	for _, c := range cases {
		prob, err := flowshop.NewProblem(c.Instance(), spec)
		if err != nil {
			return err
		}
		fitness, err := fla.EnumerateFitness(prob)
		if err != nil {
			return fmt.Errorf("%dx%d: %w", c.Jobs, c.Machines, err)
		}
		best, worst := lo.Min(fitness), lo.Max(fitness)
		optima := lo.CountBy(fitness, func(f float64) bool { return f == best })
		fmt.Printf("%d работ %d машин: перестановок=%d лучшее=%.0f худшее=%.0f оптимумов=%d\n",
			c.Jobs, c.Machines, len(fitness), best, worst, optima)
	}
	return nil
}

// selectAlgorithms собирает методы и их параметры.
// Значения из файла фильтруются по префиксу метода.
func selectAlgorithms(algos, paramsFile, specsFile string) ([]bench.Algorithm, error) {
	var values map[string]string
	if paramsFile != "" {
		f, err := os.Open(paramsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if values, err = params.LoadValues(f); err != nil {
			return nil, err
		}
	}
	if specsFile != "" {
		if err := checkValues(specsFile, values); err != nil {
			return nil, err
		}
	}

	available := []string{"NEH", "SA", "TS"}
	var selected []bench.Algorithm
	for _, a := range splitCSV(algos) {
		if !lo.Contains(available, a) {
			return nil, fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: %v", a, available)
		}
		p := defaultParams(a)
		if values != nil {
			p = lo.PickBy(values, func(k, _ string) bool { return strings.HasPrefix(k, a+".") })
		}
		selected = append(selected, bench.Algorithm{Name: a, MH: a, Params: p})
	}
	return selected, nil
}

// checkValues проверяет значения по описанию параметров из файла.
func checkValues(path string, values map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	specs, err := params.LoadSpecs(f)
	if err != nil {
		return err
	}
	names := lo.Map(specs.Params, func(s params.Spec, _ int) string { return s.Name })
	own := lo.PickByKeys(values, names)
	_, err = params.New(specs.Method, specs.Params, own)
	return err
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

// helpers

func parsePairs(s string, baseInstanceSeed int64, problemSpecs map[string]string) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		jm := strings.Split(p, "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x10", p)
		}
		jobs, err := atoiStrict(jm[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := atoiStrict(jm[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества машин: %w", p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("пара %q: количество работ и машин должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
			ProblemSpecs: problemSpecs,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
