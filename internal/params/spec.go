package params

import (
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Kind - тип значения параметра.
type Kind string

const (
	Categorical Kind = "categorical"
	Integer     Kind = "integer"
	Real        Kind = "real"
)

// Spec описывает допустимые значения одного параметра.
type Spec struct {
	Name   string   `yaml:"name"`
	Kind   Kind     `yaml:"kind"`
	Values []string `yaml:"values,omitempty"`
	Min    *float64 `yaml:"min,omitempty"`
	Max    *float64 `yaml:"max,omitempty"`
}

// Specs - описание параметров одной метаэвристики.
type Specs struct {
	Method string `yaml:"method"`
	Params []Spec `yaml:"params"`
}

// LoadSpecs читает описание параметров в формате YAML.
func LoadSpecs(r io.Reader) (Specs, error) {
	var s Specs
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Specs{}, fmt.Errorf("decode specs: %w", err)
	}
	if s.Method == "" {
		return Specs{}, fmt.Errorf("specs: method is empty")
	}
	for _, p := range s.Params {
		switch p.Kind {
		case Categorical, Integer, Real:
		default:
			return Specs{}, fmt.Errorf("unknown kind: %s", p.Kind)
		}
	}
	return s, nil
}

// LoadValues читает плоский YAML вида "имя: значение".
func LoadValues(r io.Reader) (map[string]string, error) {
	raw := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case int:
			out[k] = strconv.Itoa(t)
		case float64:
			out[k] = strconv.FormatFloat(t, 'g', -1, 64)
		case bool:
			// yaml.v3 разбирает как bool только true/false, yes/no остаются строками
			out[k] = strconv.FormatBool(t)
		default:
			return nil, fmt.Errorf("value of %s: unsupported type %T", k, v)
		}
	}
	return out, nil
}

func (s Spec) parse(raw string) (value, error) {
	switch s.Kind {
	case Categorical:
		if len(s.Values) > 0 && !lo.Contains(s.Values, raw) {
			return value{}, fmt.Errorf("unknown %s: %s", s.Name, raw)
		}
		return value{kind: Categorical, str: raw}, nil
	case Integer:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return value{}, fmt.Errorf("parameter %s: %w", s.Name, err)
		}
		if err := s.checkRange(float64(v)); err != nil {
			return value{}, err
		}
		return value{kind: Integer, str: raw, i: v}, nil
	case Real:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return value{}, fmt.Errorf("parameter %s: %w", s.Name, err)
		}
		if err := s.checkRange(v); err != nil {
			return value{}, err
		}
		return value{kind: Real, str: raw, f: v}, nil
	}
	return value{}, fmt.Errorf("unknown kind: %s", s.Kind)
}

func (s Spec) checkRange(v float64) error {
	if s.Min != nil && v < *s.Min {
		return fmt.Errorf("parameter %s must be >= %g (got %g)", s.Name, *s.Min, v)
	}
	if s.Max != nil && v > *s.Max {
		return fmt.Errorf("parameter %s must be <= %g (got %g)", s.Name, *s.Max, v)
	}
	return nil
}
