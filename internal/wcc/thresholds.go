package wcc

import (
	"fmt"
	"strconv"
	"strings"
)

// baselineCoverage is the fixed coverage ratio the CRAP and Skunk
// thresholds are derived at.
const baselineCoverage = 0.60

// Thresholds is the user-supplied triple: a minimum acceptable Wcc
// percentage and a maximum tolerable complexity per kind.
type Thresholds struct {
	Wcc        float64
	Cyclomatic float64
	Cognitive  float64
}

// DefaultThresholds returns the standard triple 60,10,10.
func DefaultThresholds() Thresholds {
	return Thresholds{Wcc: 60.0, Cyclomatic: 10.0, Cognitive: 10.0}
}

// ParseThresholds reads a "wcc,cyclomatic,cognitive" triple such as
// "60,10,10".
func ParseThresholds(s string) (Thresholds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Thresholds{}, fmt.Errorf("thresholds must be wcc,cyclomatic,cognitive (e.g. 60,10,10), got %q", s)
	}
	values := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Thresholds{}, fmt.Errorf("invalid threshold %q: %w", part, err)
		}
		values[i] = v
	}
	return Thresholds{Wcc: values[0], Cyclomatic: values[1], Cognitive: values[2]}, nil
}

// Derived is the full threshold set classification runs against. The
// CRAP and Skunk limits are computed from the complexity inputs at
// the baseline coverage, never entered directly.
type Derived struct {
	Wcc             float64 `json:"wcc"`
	CrapCyclomatic  float64 `json:"crapCyclomatic"`
	CrapCognitive   float64 `json:"crapCognitive"`
	SkunkCyclomatic float64 `json:"skunkCyclomatic"`
	SkunkCognitive  float64 `json:"skunkCognitive"`
}

// Derive validates the triple and computes the classification
// thresholds. With the defaults this yields crap 16.4 and skunk
// 16.666 for both kinds. Runs once at startup; invalid input is a
// fatal configuration error.
func (t Thresholds) Derive() (Derived, error) {
	if t.Wcc < 0 || t.Wcc > 100 {
		return Derived{}, fmt.Errorf("wcc threshold must be within [0,100], got %g", t.Wcc)
	}
	if t.Cyclomatic < 0 {
		return Derived{}, fmt.Errorf("cyclomatic complexity threshold must not be negative, got %g", t.Cyclomatic)
	}
	if t.Cognitive < 0 {
		return Derived{}, fmt.Errorf("cognitive complexity threshold must not be negative, got %g", t.Cognitive)
	}

	return Derived{
		Wcc:             t.Wcc,
		CrapCyclomatic:  Crap(t.Cyclomatic, baselineCoverage),
		CrapCognitive:   Crap(t.Cognitive, baselineCoverage),
		SkunkCyclomatic: Skunk(t.Cyclomatic, baselineCoverage),
		SkunkCognitive:  Skunk(t.Cognitive, baselineCoverage),
	}, nil
}

// IsComplex classifies a score bundle: an entity is complex when its
// Wcc falls below the minimum or either risk score exceeds its limit.
// Pure; safe to re-run for either kind independently.
func (d Derived) IsComplex(kind Kind, wcc, crap, skunk float64) bool {
	crapLimit, skunkLimit := d.CrapCyclomatic, d.SkunkCyclomatic
	if kind == Cognitive {
		crapLimit, skunkLimit = d.CrapCognitive, d.SkunkCognitive
	}
	return wcc < d.Wcc || crap > crapLimit || skunk > skunkLimit
}
