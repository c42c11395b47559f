// Package compare реализует сравнение значений целевой функции
// (минимизация) для трёх ролей: решение–решение, решение–сосед
// и сосед–сосед.
package compare

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknown - ни одна стратегия не подошла.
var ErrUnknown = errors.New("unknown comparator")

type Strategy int

const (
	// Strict - равенство только при побитовом совпадении.
	Strict Strategy = iota
	// Equal - значения в пределах допуска задачи считаются равными.
	Equal
	// Domain - предметная стратегия со своей функцией равенства.
	Domain
)

type Role string

const (
	RoleSolution         Role = "solution"
	RoleSolutionNeighbor Role = "solution-neighbor"
	RoleNeighbor         Role = "neighbor"
)

// Comparator - замкнутый вариант {Strict, Equal, Domain}.
type Comparator struct {
	Role     Role
	Strategy Strategy
	Name     string

	tol   float64
	equal func(a, b, tol float64) bool
}

// DomainResolver возвращает предметный компаратор по имени или false.
type DomainResolver func(name string, tol float64) (Comparator, bool)

// NewDomain создаёт предметный компаратор с функцией равенства equal.
func NewDomain(name string, tol float64, equal func(a, b, tol float64) bool) Comparator {
	return Comparator{Strategy: Domain, Name: name, tol: tol, equal: equal}
}

// Default - строгий компаратор.
func Default(role Role) Comparator {
	return Comparator{Role: role, Strategy: Strict, Name: "strict"}
}

// Resolve выбирает компаратор по имени стратегии: "strict", "equal",
// иначе - domain (может быть nil).
func Resolve(role Role, name string, tol float64, domain DomainResolver) (Comparator, error) {
	switch name {
	case "strict":
		return Default(role), nil
	case "equal":
		return Comparator{Role: role, Strategy: Equal, Name: name, tol: tol}, nil
	}
	if domain != nil {
		if c, ok := domain(name, tol); ok {
			c.Role = role
			return c, nil
		}
	}
	return Comparator{}, fmt.Errorf("%s %s: %w", role, name, ErrUnknown)
}

func (c Comparator) Tolerance() float64 { return c.tol }

// Equal сообщает, считаются ли a и b равными.
func (c Comparator) Equal(a, b float64) bool {
	switch c.Strategy {
	case Equal:
		return math.Abs(a-b) <= c.tol
	case Domain:
		return c.equal(a, b, c.tol)
	}
	return a == b
}

// Compare возвращает -1, если a лучше b, 0 при равенстве и 1, если хуже.
func (c Comparator) Compare(a, b float64) int {
	switch {
	case c.Equal(a, b):
		return 0
	case a < b:
		return -1
	}
	return 1
}

// Better сообщает, что a строго лучше b.
func (c Comparator) Better(a, b float64) bool { return c.Compare(a, b) < 0 }

// RelativeEqual - равенство с относительным допуском.
func RelativeEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}
