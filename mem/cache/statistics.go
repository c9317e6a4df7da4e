package cache

import (
	"errors"
	"math"
)

// ErrUndefinedHitRate is returned when the hit rate is asked for before any
// access is made.
var ErrUndefinedHitRate = errors.New("hit rate is undefined with zero accesses")

// KindStatistics counts the accesses of one access kind.
type KindStatistics struct {
	Accesses uint64 `json:"accesses"`
	Hits     uint64 `json:"hits"`
}

// HitRate returns Hits/Accesses. It returns NaN and ErrUndefinedHitRate
// when there is no access.
func (s KindStatistics) HitRate() (float64, error) {
	return hitRate(s.Hits, s.Accesses)
}

// Statistics are the counters of a simulation run. All counters only grow.
type Statistics struct {
	Accesses          uint64         `json:"accesses"`
	Hits              uint64         `json:"hits"`
	ColdMisses        uint64         `json:"cold_misses"`
	ReplacementMisses uint64         `json:"replacement_misses"`
	Instruction       KindStatistics `json:"instruction"`
	Data              KindStatistics `json:"data"`
}

// Misses returns the number of accesses that did not hit.
func (s Statistics) Misses() uint64 {
	return s.Accesses - s.Hits
}

// HitRate returns Hits/Accesses. It returns NaN and ErrUndefinedHitRate
// when there is no access.
func (s Statistics) HitRate() (float64, error) {
	return hitRate(s.Hits, s.Accesses)
}

// Kind returns the counters of one access kind.
func (s Statistics) Kind(kind AccessKind) KindStatistics {
	if kind == Instruction {
		return s.Instruction
	}

	return s.Data
}

func (s *Statistics) record(kind AccessKind, outcome Outcome) {
	perKind := &s.Data
	if kind == Instruction {
		perKind = &s.Instruction
	}

	s.Accesses++
	perKind.Accesses++

	switch outcome {
	case Hit:
		s.Hits++
		perKind.Hits++
	case ColdMiss:
		s.ColdMisses++
	case ReplacementMiss:
		s.ReplacementMisses++
	}
}

func hitRate(hits, accesses uint64) (float64, error) {
	if accesses == 0 {
		return math.NaN(), ErrUndefinedHitRate
	}

	return float64(hits) / float64(accesses), nil
}
