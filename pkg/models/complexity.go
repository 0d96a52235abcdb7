// Package models defines the result types shared by the analyzer and the
// output layer. The types are plain data; all derivation logic lives in
// internal/analyzer.
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// GoldenRatio is the growth base of the naive Fibonacci recursion.
const GoldenRatio = 1.6180339887498949

// Measure is an asymptotic growth class of the form base^n * n^degree *
// log^power n. ExpBase is zero for sub-exponential measures.
type Measure struct {
	Degree   float64
	LogPower int
	ExpBase  float64
}

// Common measures.
var (
	Constant     = Measure{}
	Logarithmic  = Measure{LogPower: 1}
	Linear       = Measure{Degree: 1}
	Linearithmic = Measure{Degree: 1, LogPower: 1}
	Quadratic    = Measure{Degree: 2}
	Cubic        = Measure{Degree: 3}
)

// Exponential returns the base^n class.
func Exponential(base float64) Measure {
	return Measure{ExpBase: base}
}

// Polynomial returns the n^degree class.
func Polynomial(degree float64) Measure {
	return Measure{Degree: degree}
}

// Dominates reports whether m grows strictly faster than other.
func (m Measure) Dominates(other Measure) bool {
	if m.ExpBase != other.ExpBase {
		return m.ExpBase > other.ExpBase
	}
	if m.Degree != other.Degree {
		return m.Degree > other.Degree
	}
	return m.LogPower > other.LogPower
}

// Equal reports whether two measures are the same growth class, comparing
// degrees with a small tolerance because they come from log ratios.
func (m Measure) Equal(other Measure) bool {
	return m.ExpBase == other.ExpBase &&
		math.Abs(m.Degree-other.Degree) < 1e-9 &&
		m.LogPower == other.LogPower
}

// Max returns the faster-growing of the two measures.
func (m Measure) Max(other Measure) Measure {
	if other.Dominates(m) {
		return other
	}
	return m
}

// Min returns the slower-growing of the two measures.
func (m Measure) Min(other Measure) Measure {
	if m.Dominates(other) {
		return other
	}
	return m
}

// Times multiplies two growth classes.
func (m Measure) Times(other Measure) Measure {
	out := Measure{
		Degree:   m.Degree + other.Degree,
		LogPower: m.LogPower + other.LogPower,
	}
	switch {
	case m.ExpBase > 0 && other.ExpBase > 0:
		out.ExpBase = m.ExpBase * other.ExpBase
	case m.ExpBase > 0:
		out.ExpBase = m.ExpBase
	case other.ExpBase > 0:
		out.ExpBase = other.ExpBase
	}
	return out
}

// AddDegree raises the polynomial degree, as when a loop multiplies a body.
func (m Measure) AddDegree(d float64) Measure {
	m.Degree += d
	return m
}

// AddLog multiplies by a logarithmic factor.
func (m Measure) AddLog() Measure {
	m.LogPower++
	return m
}

// IsConstant reports whether m is the constant class.
func (m Measure) IsConstant() bool {
	return m.ExpBase == 0 && m.Degree == 0 && m.LogPower == 0
}

// Notation renders the measure in conventional form, e.g. "n log n",
// "n^2", "2^n", "1.618^n".
func (m Measure) Notation() string {
	var parts []string
	if m.ExpBase > 0 {
		if m.ExpBase == math.Trunc(m.ExpBase) {
			parts = append(parts, fmt.Sprintf("%d^n", int(m.ExpBase)))
		} else {
			parts = append(parts, fmt.Sprintf("%.3f^n", m.ExpBase))
		}
	}
	switch {
	case m.Degree == 1:
		parts = append(parts, "n")
	case m.Degree > 0 && m.Degree == math.Trunc(m.Degree):
		parts = append(parts, fmt.Sprintf("n^%d", int(m.Degree)))
	case m.Degree > 0:
		parts = append(parts, fmt.Sprintf("n^%.3f", m.Degree))
	}
	switch {
	case m.LogPower == 1:
		parts = append(parts, "log n")
	case m.LogPower > 1:
		parts = append(parts, fmt.Sprintf("log^%d n", m.LogPower))
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " ")
}

func (m Measure) String() string { return m.Notation() }

// MarshalJSON renders the conventional notation, which is what reports
// serialize.
func (m Measure) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Notation())
}

// Cases carries the three-way best/average/worst reading of a construct.
type Cases struct {
	Best    Measure `json:"best"`
	Average Measure `json:"average"`
	Worst   Measure `json:"worst"`
}

// Uniform builds a Cases with the same measure in every case.
func Uniform(m Measure) Cases {
	return Cases{Best: m, Average: m, Worst: m}
}

// Sequence combines two constructs executed one after the other: the larger
// cost dominates in every case.
func (c Cases) Sequence(other Cases) Cases {
	return Cases{
		Best:    c.Best.Max(other.Best),
		Average: c.Average.Max(other.Average),
		Worst:   c.Worst.Max(other.Worst),
	}
}

// Branch combines two alternatives of a conditional. The best case takes
// the cheaper branch, the worst the costlier; the average keeps the
// dominating branch, a deliberate upper-bound approximation.
func (c Cases) Branch(other Cases) Cases {
	return Cases{
		Best:    c.Best.Min(other.Best),
		Average: c.Average.Max(other.Average),
		Worst:   c.Worst.Max(other.Worst),
	}
}

// Scale multiplies every case by an iteration measure.
func (c Cases) Scale(by Measure) Cases {
	return Cases{
		Best:    c.Best.Times(by),
		Average: c.Average.Times(by),
		Worst:   c.Worst.Times(by),
	}
}

// Spread reports whether best and worst differ.
func (c Cases) Spread() bool {
	return !c.Best.Equal(c.Worst)
}

// Bound renders the conventional bound string: Θ when the cases agree,
// otherwise an O/Ω pair.
func (c Cases) Bound() string {
	if !c.Spread() {
		return fmt.Sprintf("Θ(%s)", c.Worst.Notation())
	}
	return fmt.Sprintf("O(%s), Ω(%s)", c.Worst.Notation(), c.Best.Notation())
}
