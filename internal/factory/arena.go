package factory

import (
	"fmt"

	"flowShopSolver/internal/heuristics"
)

type (
	OrderID     int
	InsertionID int
)

// Arena владеет всеми компонентами одного построения. Составные
// эвристики хранят индексы; после Release компоненты недоступны.
type Arena struct {
	orders     [][]int
	insertions []*heuristics.Insertion
	released   bool
}

func (a *Arena) addOrder(order []int) OrderID {
	a.orders = append(a.orders, order)
	return OrderID(len(a.orders) - 1)
}

func (a *Arena) addInsertion(ins *heuristics.Insertion) InsertionID {
	a.insertions = append(a.insertions, ins)
	return InsertionID(len(a.insertions) - 1)
}

func (a *Arena) Order(id OrderID) ([]int, error) {
	if a.released {
		return nil, ErrArenaReleased
	}
	if int(id) < 0 || int(id) >= len(a.orders) {
		return nil, fmt.Errorf("order %d out of range", id)
	}
	return a.orders[id], nil
}

func (a *Arena) Insertion(id InsertionID) (*heuristics.Insertion, error) {
	if a.released {
		return nil, ErrArenaReleased
	}
	if int(id) < 0 || int(id) >= len(a.insertions) {
		return nil, fmt.Errorf("insertion %d out of range", id)
	}
	return a.insertions[id], nil
}

// Len - число компонентов в арене.
func (a *Arena) Len() int { return len(a.orders) + len(a.insertions) }

// Release освобождает компоненты; последующие обращения возвращают ErrArenaReleased.
func (a *Arena) Release() {
	a.orders, a.insertions = nil, nil
	a.released = true
}

func (a *Arena) Released() bool { return a.released }
