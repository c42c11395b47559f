package params

import "fmt"

func bound(v float64) *float64 { return &v }

var yesNo = []string{"yes", "no"}

// initSpecs - параметры построения начального решения и компаратора.
// Имена стратегий не ограничиваются: их проверяет фабрика.
func initSpecs(method string) []Spec {
	p := func(name string, kind Kind) Spec { return Spec{Name: method + name, Kind: kind} }
	yn := func(name string) Spec { return Spec{Name: method + name, Kind: Categorical, Values: yesNo} }
	return []Spec{
		p(".Init", Categorical),
		p(".Init.NEH.Ratio", Real),
		p(".Init.NEH.First.Priority", Categorical),
		yn(".Init.NEH.First.PriorityWeighted"),
		p(".Init.NEH.First.PriorityOrder", Categorical),
		p(".Init.NEH.Priority", Categorical),
		yn(".Init.NEH.PriorityWeighted"),
		p(".Init.NEH.PriorityOrder", Categorical),
		p(".Init.NEH.Insertion", Categorical),
		p(".Comp.Strat", Categorical),
	}
}

func saSpecs() []Spec {
	return append(initSpecs("SA"),
		Spec{Name: "SA.Neighborhood", Kind: Categorical, Values: []string{"shift", "swap"}},
		Spec{Name: "SA.Temp.Init", Kind: Real, Min: bound(0)},
		Spec{Name: "SA.Temp.Final", Kind: Real, Min: bound(0)},
		Spec{Name: "SA.Temp.Alpha", Kind: Real, Min: bound(0), Max: bound(1)},
	)
}

func tsSpecs() []Spec {
	return append(initSpecs("TS"),
		Spec{Name: "TS.Neighborhood", Kind: Categorical, Values: []string{"shift", "swap"}},
		Spec{Name: "TS.Tenure", Kind: Integer, Min: bound(1)},
		Spec{Name: "TS.TenureRand", Kind: Integer, Min: bound(0)},
		Spec{Name: "TS.Neighbors", Kind: Integer, Min: bound(1)},
	)
}

// Builtin возвращает встроенные описания параметров для метода
// ("NEH", "SA", "TS" или "all" - объединение с выбором метода через MH).
func Builtin(method string) ([]Spec, error) {
	switch method {
	case "NEH":
		return initSpecs("NEH"), nil
	case "SA":
		return saSpecs(), nil
	case "TS":
		return tsSpecs(), nil
	case "all":
		specs := []Spec{{Name: "MH", Kind: Categorical, Values: []string{"NEH", "SA", "TS"}}}
		specs = append(specs, initSpecs("NEH")...)
		specs = append(specs, saSpecs()...)
		return append(specs, tsSpecs()...), nil
	}
	return nil, fmt.Errorf("unknown mh: %s", method)
}
