package rng

import (
	"hash/fnv"
	"math/rand/v2"
)

// Subsystem names for the random streams used by a simulation run.
const (
	SubsystemThermostat = "thermostat"
	SubsystemVelocities = "velocities"
	SubsystemLiquid     = "liquid"
)

// Partitioned provides deterministic, isolated random streams per subsystem.
//
// Each subsystem stream is a PCG generator seeded with the master seed and
// masterSeed XOR fnv1a64(name), so drawing from one subsystem never shifts
// the sequence of another.
//
// Not safe for concurrent use.
type Partitioned struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

func New(seed int64) *Partitioned {
	return &Partitioned{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the cached stream for name, creating it on first use.
// Never returns nil.
func (p *Partitioned) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.subsystems[name]; ok {
		return r
	}
	r := NewStream(p.seed, name)
	p.subsystems[name] = r
	return r
}

func (p *Partitioned) Seed() int64 { return p.seed }

// NewStream returns a fresh stream for (seed, name) without caching it.
func NewStream(seed int64, name string) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed^fnv1a64(name))))
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
