package factory

import (
	"errors"
	"fmt"

	"flowShopSolver/internal/params"
)

type (
	MissingParameterError = params.MissingParameterError
	TypeMismatchError     = params.TypeMismatchError
)

// ErrArenaReleased - обращение к компоненту после завершения построения.
var ErrArenaReleased = errors.New("arena released")

// UnknownStrategyError - ни один построитель цепочки не знает имени.
type UnknownStrategyError struct {
	Kind string
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return "unknown " + e.Kind + ": " + e.Name
}

// ConfigurationRatioError - доля добавления вне [0,1] или не число.
type ConfigurationRatioError struct {
	Ratio float64
}

func (e *ConfigurationRatioError) Error() string {
	return fmt.Sprintf("unknown ratio: %g (must be in [0,1])", e.Ratio)
}
