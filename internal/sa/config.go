package sa

import (
	"errors"
	"fmt"

	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/params"
)

type Config struct {
	// Используется, если бюджет вычислений не задан.
	IterationsPerJob int

	InitialTemp float64
	FinalTemp   float64
	Alpha       float64

	Neighborhood flowshop.MoveKind
}

func DefaultConfig() Config {
	return Config{
		IterationsPerJob: 2500,

		InitialTemp: 2000.0,
		FinalTemp:   0.5,
		Alpha:       0.995,

		Neighborhood: flowshop.MoveSwap,
	}
}

// ConfigFromParams читает SA.* из набора параметров; отсутствующие
// значения берутся из DefaultConfig.
func ConfigFromParams(set *params.Set) (Config, error) {
	cfg := DefaultConfig()
	if err := optionalReal(set, ".Temp.Init", &cfg.InitialTemp); err != nil {
		return Config{}, err
	}
	if err := optionalReal(set, ".Temp.Final", &cfg.FinalTemp); err != nil {
		return Config{}, err
	}
	if err := optionalReal(set, ".Temp.Alpha", &cfg.Alpha); err != nil {
		return Config{}, err
	}
	neigh, err := set.Categorical(".Neighborhood")
	var missing *params.MissingParameterError
	switch {
	case errors.As(err, &missing):
	case err != nil:
		return Config{}, err
	default:
		if cfg.Neighborhood, err = flowshop.ParseMoveKind(neigh); err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.Validate()
}

func optionalReal(set *params.Set, name string, dst *float64) error {
	v, err := set.Real(name)
	var missing *params.MissingParameterError
	if errors.As(err, &missing) {
		return nil
	}
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (c Config) Validate() error {
	if c.IterationsPerJob <= 0 {
		return fmt.Errorf(
			"IterationsPerJob должно быть > 0 (получено %d)",
			c.IterationsPerJob,
		)
	}
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf(
			"FinalTemp должно быть > 0 (получено %f)",
			c.FinalTemp,
		)
	}
	if c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	switch c.Neighborhood {
	case flowshop.MoveSwap, flowshop.MoveShift:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	return nil
}
