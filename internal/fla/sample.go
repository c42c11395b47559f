// Package fla - анализ ландшафта приспособленности: классификация точек
// полным перебором соседей, случайные блуждания и перебор всех перестановок.
package fla

// PointClass - тип точки ландшафта относительно её соседей.
type PointClass int

const (
	StrictLocalMin  PointClass = iota // все соседи хуже
	LocalMin                          // соседи хуже или равны
	InteriorPlateau                   // все соседи равны
	Ledge                             // есть лучшие, равные и худшие
	Slope                             // есть лучшие и худшие, равных нет
	LocalMax                          // соседи лучше или равны
	StrictLocalMax                    // все соседи лучше
)

var classNames = [...]string{"slmin", "lmin", "iplat", "ledge", "slope", "lmax", "slmax"}

func (c PointClass) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// Classify относит точку ровно к одному из семи классов по числу
// лучших (down), равных (side) и худших (up) соседей.
func Classify(down, side, up int) PointClass {
	switch {
	case down == 0 && side == 0:
		return StrictLocalMin
	case down == 0 && up == 0:
		return InteriorPlateau
	case down == 0:
		return LocalMin
	case up == 0 && side == 0:
		return StrictLocalMax
	case up == 0:
		return LocalMax
	case side == 0:
		return Slope
	}
	return Ledge
}

// Sample - счётчики ходов (up/down/side) и классов точек.
type Sample struct {
	Up    int64 `json:"up"`
	Down  int64 `json:"down"`
	Side  int64 `json:"side"`
	SLMin int64 `json:"slmin"`
	LMin  int64 `json:"lmin"`
	IPlat int64 `json:"iplat"`
	Ledge int64 `json:"ledge"`
	Slope int64 `json:"slope"`
	LMax  int64 `json:"lmax"`
	SLMax int64 `json:"slmax"`
}

func (s *Sample) add(c PointClass) {
	switch c {
	case StrictLocalMin:
		s.SLMin++
	case LocalMin:
		s.LMin++
	case InteriorPlateau:
		s.IPlat++
	case Ledge:
		s.Ledge++
	case Slope:
		s.Slope++
	case LocalMax:
		s.LMax++
	case StrictLocalMax:
		s.SLMax++
	}
}

// Count возвращает счётчик класса c.
func (s Sample) Count(c PointClass) int64 {
	switch c {
	case StrictLocalMin:
		return s.SLMin
	case LocalMin:
		return s.LMin
	case InteriorPlateau:
		return s.IPlat
	case Ledge:
		return s.Ledge
	case Slope:
		return s.Slope
	case LocalMax:
		return s.LMax
	case StrictLocalMax:
		return s.SLMax
	}
	return 0
}

// Points - число классифицированных точек.
func (s Sample) Points() int64 {
	return s.SLMin + s.LMin + s.IPlat + s.Ledge + s.Slope + s.LMax + s.SLMax
}

// Merge возвращает покомпонентную сумму счётчиков.
func (s Sample) Merge(o Sample) Sample {
	return Sample{
		Up: s.Up + o.Up, Down: s.Down + o.Down, Side: s.Side + o.Side,
		SLMin: s.SLMin + o.SLMin, LMin: s.LMin + o.LMin, IPlat: s.IPlat + o.IPlat,
		Ledge: s.Ledge + o.Ledge, Slope: s.Slope + o.Slope,
		LMax: s.LMax + o.LMax, SLMax: s.SLMax + o.SLMax,
	}
}

// Moves - число оценённых ходов.
func (s Sample) Moves() int64 { return s.Up + s.Down + s.Side }
