package params

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

type value struct {
	kind Kind
	str  string
	i    int
	f    float64
}

// Set - неизменяемый набор значений параметров одной метаэвристики.
// Ключ параметра: имя метода + "." + имя параметра.
type Set struct {
	method string
	values map[string]value
}

// New разбирает строковые значения raw согласно specs.
// Значение без описания считается ошибкой.
func New(method string, specs []Spec, raw map[string]string) (*Set, error) {
	byName := lo.KeyBy(specs, func(s Spec) string { return s.Name })
	values := make(map[string]value, len(raw))
	for name, str := range raw {
		spec, ok := byName[name]
		if !ok {
			return nil, &MissingParameterError{Name: name}
		}
		v, err := spec.parse(strings.TrimSpace(str))
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	return &Set{method: method, values: values}, nil
}

func (s *Set) Method() string { return s.method }

// WithMethod возвращает представление того же набора с другим префиксом.
func (s *Set) WithMethod(method string) *Set {
	return &Set{method: method, values: s.values}
}

// Key составляет полное имя параметра. Ведущая точка в param допускается.
func (s *Set) Key(param string) string {
	param = strings.TrimPrefix(param, ".")
	if s.method == "" {
		return param
	}
	return s.method + "." + param
}

func (s *Set) Has(param string) bool {
	_, ok := s.values[s.Key(param)]
	return ok
}

// Names возвращает полные имена всех параметров в алфавитном порядке.
func (s *Set) Names() []string {
	names := lo.Keys(s.values)
	sort.Strings(names)
	return names
}

func (s *Set) lookup(param string, want Kind) (value, error) {
	key := s.Key(param)
	v, ok := s.values[key]
	if !ok {
		return value{}, &MissingParameterError{Name: key}
	}
	if v.kind != want {
		return value{}, &TypeMismatchError{Name: key, Stored: v.kind, Wanted: want}
	}
	return v, nil
}

func (s *Set) Categorical(param string) (string, error) {
	v, err := s.lookup(param, Categorical)
	return v.str, err
}

func (s *Set) Integer(param string) (int, error) {
	v, err := s.lookup(param, Integer)
	return v.i, err
}

func (s *Set) Real(param string) (float64, error) {
	v, err := s.lookup(param, Real)
	return v.f, err
}

// String выводит набор в виде "имя=значение" через запятую.
func (s *Set) String() string {
	parts := lo.Map(s.Names(), func(name string, _ int) string {
		return fmt.Sprintf("%s=%s", name, s.values[name].str)
	})
	return strings.Join(parts, ",")
}
