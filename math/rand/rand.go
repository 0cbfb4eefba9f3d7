/*package rand provides the pseudo random deviates used for photon
shooting: uniform floats and binomially distributed integers.

	// Generate a single value
	gen := New(Xorshift, 1337)
	x := gen.Uniform(0, 1)

	// Binomially partition 1000 trials with success probability 0.25
	k := gen.Binomial(1000, 0.25)

	// Use the time as a seed
	gen2 := NewTimeSeed(Xorshift)

A Generator mutates its internal state on every draw, so a single shoot
operation must be the only consumer of its Generator while it runs.*/
package rand

import (
	"math"
	"time"
)

// generatorBackend is an interface which is used by the generators to
// supply the functionality needed for top-level functions like Uniform().
type generatorBackend interface {
	Init(seed uint64)
	Next() float64
	NextSequence(target []float64)
}

// Generator is a random number generator.
type Generator struct {
	backend generatorBackend
}

// GeneratorType is a flag used to indicate the desired algorithm for a
// random number generator.
type GeneratorType uint8

const (
	Xorshift GeneratorType = iota
	Golang
)

// NewTimeSeed returns a new random number generator that uses the current
// time as the seed.
func NewTimeSeed(gt GeneratorType) *Generator {
	return New(gt, uint64(time.Now().UnixNano()))
}

// New returns a new random number generator.
func New(gt GeneratorType, seed uint64) *Generator {
	var backend generatorBackend

	switch gt {
	case Xorshift:
		backend = new(xorshiftGenerator)
	case Golang:
		backend = new(golangGenerator)
	default:
		panic("Unrecognized GeneratorType")
	}

	backend.Init(seed)
	return &Generator{backend}
}

// Uniform returns a float uniformly at random within the range
// [low, high).
func (gen *Generator) Uniform(low, high float64) float64 {
	if low == 0.0 && high == 1.0 {
		return gen.backend.Next()
	}
	return (gen.backend.Next() * (high - low)) + low
}

// UniformAt writes floats generated uniformly at random in the range
// [low, high) to every element in a target slice. This is generally
// faster than calling Uniform the corresponding number of times.
func (gen *Generator) UniformAt(low, high float64, target []float64) {
	gen.backend.NextSequence(target)
	if low == 0.0 && high == 1.0 {
		return
	}
	for i := range target {
		target[i] = target[i]*(high-low) + low
	}
}

// UniformInt returns an integer uniformly at random within in the range
// [low, high).
func (gen *Generator) UniformInt(low, high int) int {
	f := gen.backend.Next()
	return int(math.Floor(float64(high-low)*f + float64(low)))
}

// Binomial returns an integer drawn from the binomial distribution with
// n trials and per-trial success probability p. Small n is handled by
// literally flipping coins; large n uses the standard Lgamma-based
// rejection method so a draw stays O(1) even when n is millions of
// photons.
func (gen *Generator) Binomial(n int, p float64) int {
	if n < 0 {
		panic("Binomial requires n >= 0.")
	}
	if p <= 0 || n == 0 {
		return 0
	}
	if p >= 1 {
		return n
	}

	pp := p
	if pp > 0.5 {
		pp = 1 - pp
	}
	mean := float64(n) * pp

	var bnl int
	switch {
	case n < 25:
		for i := 0; i < n; i++ {
			if gen.backend.Next() < pp {
				bnl++
			}
		}
	case mean < 1.0:
		// Rare events: the distribution is essentially Poisson.
		g := math.Exp(-mean)
		t := 1.0
		j := 0
		for ; j <= n; j++ {
			t *= gen.backend.Next()
			if t < g {
				break
			}
		}
		if j > n {
			j = n
		}
		bnl = j
	default:
		bnl = gen.binomialReject(n, pp, mean)
	}

	if pp != p {
		bnl = n - bnl
	}
	return bnl
}

// binomialReject draws from Binomial(n, pp) with pp <= 1/2 and
// n*pp >= 1 by rejection from a Lorentzian envelope.
func (gen *Generator) binomialReject(n int, pp, mean float64) int {
	en := float64(n)
	oldg, _ := math.Lgamma(en + 1)
	pc := 1 - pp
	plog := math.Log(pp)
	pclog := math.Log(pc)
	sq := math.Sqrt(2 * mean * pc)

	for {
		var em, y float64
		for {
			y = math.Tan(math.Pi * gen.backend.Next())
			em = sq*y + mean
			if em >= 0 && em < en+1 {
				break
			}
		}
		em = math.Floor(em)
		lg1, _ := math.Lgamma(em + 1)
		lg2, _ := math.Lgamma(en - em + 1)
		t := 1.2 * sq * (1 + y*y) *
			math.Exp(oldg-lg1-lg2+em*plog+(en-em)*pclog)
		if gen.backend.Next() <= t {
			return int(em)
		}
	}
}
