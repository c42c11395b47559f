package ts

import (
	"errors"
	"fmt"

	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/params"
)

type Config struct {
	// Используется, если бюджет вычислений не задан.
	IterationsPerJob int

	TabuTenure int

	TabuTenureRand int

	NeighborsPerIter int

	Neighborhood flowshop.MoveKind
}

func DefaultConfig() Config {
	return Config{
		IterationsPerJob: 250,

		TabuTenure:     7,
		TabuTenureRand: 3,

		NeighborsPerIter: 90,
		Neighborhood:     flowshop.MoveShift,
	}
}

// ConfigFromParams читает TS.* из набора параметров.
func ConfigFromParams(set *params.Set) (Config, error) {
	cfg := DefaultConfig()
	for name, dst := range map[string]*int{
		".Tenure":     &cfg.TabuTenure,
		".TenureRand": &cfg.TabuTenureRand,
		".Neighbors":  &cfg.NeighborsPerIter,
	} {
		if err := optionalInt(set, name, dst); err != nil {
			return Config{}, err
		}
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

func optionalInt(set *params.Set, name string, dst *int) error {
	v, err := set.Integer(name)
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
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"TabuTenure должно быть > 0 (получено %d)",
			c.TabuTenure,
		)
	}
	if c.TabuTenureRand < 0 {
		return fmt.Errorf(
			"TabuTenureRand должно быть >= 0 (получено %d)",
			c.TabuTenureRand,
		)
	}
	if c.NeighborsPerIter <= 0 {
		return fmt.Errorf(
			"NeighborsPerIter должно быть > 0 (получено %d)",
			c.NeighborsPerIter,
		)
	}
	switch c.Neighborhood {
	case flowshop.MoveShift, flowshop.MoveSwap:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	return nil
}
