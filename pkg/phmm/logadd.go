// 3 Mar 2024

// Package phmm is the pair hidden Markov model. Everything is kept as
// natural logs of probabilities. There are five states, a match and
// short and long gaps in each sequence.
package phmm

import (
	"math"
)

// LogZero is log(0).
var LogZero = math.Inf(-1)

const logUnderflowThreshold = 7.5

// lookup approximates log(1 + exp(x)) for x in [0, 7.5] with a cubic
// in each of four pieces.
func lookup(x float64) float64 {
	switch {
	case x <= 1.0:
		return ((-0.009350833524763*x+0.130659527668286)*x+0.498799810682272)*x + 0.693203116424741
	case x <= 2.5:
		return ((-0.014532321752540*x+0.139942324101744)*x+0.495635523139337)*x + 0.692140569840976
	case x <= 4.5:
		return ((-0.004605031767994*x+0.063427417320019)*x+0.695956496475118)*x + 0.514272634594009
	}
	return ((-0.000458661602210*x+0.009695946122598)*x+0.930734667215156)*x + 0.168037164329057
}

// LogAdd returns approximately log(exp(x) + exp(y)). If the two are
// far apart the smaller one is dropped.
func LogAdd(x, y float64) float64 {
	if x < y {
		if x == LogZero || y-x >= logUnderflowThreshold {
			return y
		}
		return lookup(y-x) + x
	}
	if y == LogZero || x-y >= logUnderflowThreshold {
		return x
	}
	return lookup(x-y) + y
}

// LogSum adds up a slice of logs.
func LogSum(v []float64) float64 {
	s := LogZero
	for _, x := range v {
		s = LogAdd(s, x)
	}
	return s
}
