// Package quasi implements a Gray-code Sobol low-discrepancy sequence
// generator with a Moro inverse-normal mapping, for quasi-Monte Carlo
// variants of the path simulators in package models.
package quasi

import (
	"math"

	"github.com/bcdannyboy/mcengine/mcerrors"
)

const (
	// MaxDim is the tabulated primitive-polynomial range. Dimensions
	// beyond this are refused rather than served by a known-poor
	// fallback (see DESIGN.md).
	MaxDim = 40
	// Bits is the number of direction-number bits (32-bit direction
	// words, scaled by 2^32).
	Bits = 32
)

// sobolPoly holds (degree, polynomial coefficient bits) for dimensions
// 2..40 (dimension 1, index 0, uses the fixed v[k]=2^(32-k) initializer
// below and has no entry here).
var sobolPoly = [MaxDim - 1][2]uint32{
	{2, 1}, {3, 1}, {3, 2}, {4, 1}, {4, 4}, {5, 2}, {5, 4}, {5, 7}, {5, 11},
	{5, 13}, {5, 14}, {6, 1}, {6, 13}, {6, 16}, {6, 19}, {6, 22}, {6, 25}, {7, 1}, {7, 4},
	{7, 7}, {7, 8}, {7, 14}, {7, 19}, {7, 21}, {7, 28}, {7, 31}, {7, 32}, {7, 37}, {7, 41},
	{7, 42}, {7, 50}, {7, 55}, {7, 56}, {7, 59}, {7, 62}, {8, 14}, {8, 21}, {8, 22}, {8, 38},
}

// sobolM holds the initial direction numbers m[0..deg-1] for dimensions
// 2..40, from the Joe & Kuo tables.
var sobolM = [MaxDim - 1][]uint32{
	{1, 1},
	{1, 3, 1},
	{1, 3, 3},
	{1, 1, 1, 1},
	{1, 1, 3, 3},
	{1, 3, 5, 13, 7},
	{1, 1, 5, 5, 21},
	{1, 3, 1, 15, 21},
	{1, 3, 7, 5, 27},
	{1, 1, 5, 11, 19},
	{1, 3, 5, 1, 1},
	{1, 1, 1, 3, 29, 15},
	{1, 1, 3, 7, 7, 49},
	{1, 1, 1, 9, 19, 21},
	{1, 1, 1, 13, 21, 55},
	{1, 1, 7, 5, 7, 11},
	{1, 1, 7, 7, 31, 17},
	{1, 3, 7, 13, 1, 5, 49},
	{1, 1, 5, 3, 17, 57, 97},
	{1, 1, 7, 1, 7, 33, 73},
	{1, 3, 3, 9, 23, 47, 97},
	{1, 3, 7, 5, 5, 27, 39},
	{1, 3, 1, 3, 21, 3, 7},
	{1, 1, 5, 11, 29, 17, 117},
	{1, 1, 3, 15, 15, 49, 125},
	{1, 3, 1, 11, 19, 7, 3},
	{1, 1, 7, 7, 25, 5, 85},
	{1, 1, 7, 13, 29, 51, 107},
	{1, 3, 5, 13, 31, 55, 89},
	{1, 1, 1, 5, 11, 51, 69},
	{1, 1, 3, 7, 17, 39, 127},
	{1, 1, 1, 9, 1, 33, 83},
	{1, 3, 5, 7, 19, 29, 73},
	{1, 3, 5, 5, 1, 37, 101},
	{1, 3, 3, 11, 29, 33, 93},
	{1, 3, 1, 3, 25, 29, 127, 151},
	{1, 1, 7, 11, 5, 5, 23, 69},
	{1, 3, 3, 1, 31, 51, 95, 243},
	{1, 3, 3, 15, 17, 41, 83, 247},
}

// Sobol is a Gray-code Sobol sequence generator over a fixed dimension
// count, up to MaxDim.
type Sobol struct {
	dim   int
	count uint32
	x     []uint32
	v     [][Bits]uint32
}

// New constructs a Sobol generator for the given dimension. Dimensions
// above MaxDim are refused with ErrDimensionUnsupported rather than
// served by a known-poor hash-based fallback.
func New(dim int) (*Sobol, error) {
	if dim <= 0 || dim > MaxDim {
		return nil, mcerrors.ErrDimensionUnsupported
	}

	s := &Sobol{
		dim: dim,
		x:   make([]uint32, dim),
		v:   make([][Bits]uint32, dim),
	}

	for d := 0; d < dim; d++ {
		if d == 0 {
			for k := 0; k < Bits; k++ {
				s.v[0][k] = 1 << uint(Bits-1-k)
			}
			continue
		}

		deg := sobolPoly[d-1][0]
		poly := sobolPoly[d-1][1]
		m := sobolM[d-1]

		for k := uint32(0); k < deg && int(k) < len(m); k++ {
			s.v[d][k] = m[k] << uint(Bits-1-k)
		}

		for k := deg; k < Bits; k++ {
			vk := s.v[d][k-deg]
			vk ^= s.v[d][k-deg] >> deg
			for j := uint32(1); j < deg; j++ {
				if poly&(1<<uint(deg-1-j)) != 0 {
					vk ^= s.v[d][k-j]
				}
			}
			s.v[d][k] = vk
		}
	}

	return s, nil
}

// Dim returns the generator's dimension.
func (s *Sobol) Dim() int { return s.dim }

func rightmostZero(n uint32) int {
	c := 0
	for n&1 == 1 {
		n >>= 1
		c++
	}
	return c
}

// Next writes the next dim-dimensional point into point, scaled to
// [0,1), and advances the sequence.
func (s *Sobol) Next(point []float64) {
	c := rightmostZero(s.count)
	const scale = 1.0 / float64(uint64(1)<<Bits)

	for d := 0; d < s.dim; d++ {
		s.x[d] ^= s.v[d][c]
		point[d] = float64(s.x[d]) * scale
	}
	s.count++
}

// Skip advances the sequence by n points without returning them.
func (s *Sobol) Skip(n uint64) {
	for i := uint64(0); i < n; i++ {
		c := rightmostZero(s.count)
		for d := 0; d < s.dim; d++ {
			s.x[d] ^= s.v[d][c]
		}
		s.count++
	}
}

// Reset zeroes the current index and integer vector, preserving the
// fixed direction numbers.
func (s *Sobol) Reset() {
	s.count = 0
	for d := range s.x {
		s.x[d] = 0
	}
}

// NextNormal writes the next dim-dimensional point into normal, mapped
// through the Moro inverse-normal transform after clamping away from
// 0 and 1 by 1e-10.
func (s *Sobol) NextNormal(normal []float64) {
	uniform := make([]float64, s.dim)
	s.Next(uniform)
	for d := 0; d < s.dim; d++ {
		u := uniform[d]
		if u < 1e-10 {
			u = 1e-10
		}
		if u > 1-1e-10 {
			u = 1 - 1e-10
		}
		normal[d] = InvNormal(u)
	}
}

var moroA = [4]float64{2.50662823884, -18.61500062529, 41.39119773534, -25.44106049637}
var moroB = [4]float64{-8.47351093090, 23.08336743743, -21.06224101826, 3.13082909833}
var moroC = [9]float64{
	0.3374754822726147, 0.9761690190917186, 0.1607979714918209, 0.0276438810333863,
	0.0038405729373609, 0.0003951896511919, 0.0000321767881768, 0.0000002888167364,
	0.0000003960315187,
}

// InvNormal implements Moro's algorithm for the inverse standard normal
// CDF.
func InvNormal(u float64) float64 {
	x := u - 0.5
	if math.Abs(x) < 0.42 {
		r := x * x
		return x * (((moroA[3]*r+moroA[2])*r+moroA[1])*r + moroA[0]) /
			((((moroB[3]*r+moroB[2])*r+moroB[1])*r+moroB[0])*r + 1.0)
	}

	var r float64
	if x > 0 {
		r = 1.0 - u
	} else {
		r = u
	}
	r = math.Log(-math.Log(r))
	val := moroC[0] + r*(moroC[1]+r*(moroC[2]+r*(moroC[3]+r*(moroC[4]+
		r*(moroC[5]+r*(moroC[6]+r*(moroC[7]+r*moroC[8])))))))
	if x < 0 {
		val = -val
	}
	return val
}
