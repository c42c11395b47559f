package flowshop

import "math/rand"

// Solution - перестановка работ с лениво вычисляемым значением
// целевой функции. Любое изменение порядка сбрасывает значение.
type Solution struct {
	perm    []int
	fitness float64
	valid   bool
	version uint64
}

// NewSolution копирует perm.
func NewSolution(perm []int) *Solution {
	p := make([]int, len(perm))
	copy(p, perm)
	return &Solution{perm: p}
}

func IdentitySolution(n int) *Solution {
	return &Solution{perm: IdentityPermutation(n)}
}

// RandomSolution возвращает равномерно случайную перестановку.
func RandomSolution(n int, rng *rand.Rand) *Solution {
	s := IdentitySolution(n)
	ShufflePermutation(s.perm, rng)
	return s
}

func (s *Solution) Len() int { return len(s.perm) }

func (s *Solution) Job(i int) int { return s.perm[i] }

// Perm возвращает внутренний срез; изменять его нельзя.
func (s *Solution) Perm() []int { return s.perm }

// Jobs возвращает копию перестановки.
func (s *Solution) Jobs() []int {
	out := make([]int, len(s.perm))
	copy(out, s.perm)
	return out
}

func (s *Solution) Fitness() (float64, bool) { return s.fitness, s.valid }

func (s *Solution) SetFitness(f float64) {
	s.fitness = f
	s.valid = true
}

func (s *Solution) Invalidate() {
	s.valid = false
	s.version++
}

// SetPerm заменяет перестановку копией perm.
func (s *Solution) SetPerm(perm []int) {
	if cap(s.perm) < len(perm) {
		s.perm = make([]int, len(perm))
	}
	s.perm = s.perm[:len(perm)]
	copy(s.perm, perm)
	s.Invalidate()
}

// Apply применяет ход к решению.
func (s *Solution) Apply(mv Move) {
	mv.Apply(s.perm)
	s.Invalidate()
}

func (s *Solution) Clone() *Solution {
	c := NewSolution(s.perm)
	c.fitness, c.valid = s.fitness, s.valid
	return c
}

// CopyFrom делает s копией other (включая значение целевой функции).
func (s *Solution) CopyFrom(other *Solution) {
	s.SetPerm(other.perm)
	s.fitness, s.valid = other.fitness, other.valid
}
