// Package scoring implements the weighted-cap quality score formula shared
// by every platform verifier. Each platform contributes a list of terms;
// a term's contribution is ratio*weight clamped to the weight, so a term
// can never exceed its allotted share. Weights per platform sum to 100,
// guaranteeing scores in [0,100].
package scoring

import "math"

// Term is one component of a platform's quality formula.
type Term struct {
	// Name labels the signal (e.g. "followers") for breakdowns.
	Name string
	// Weight is the maximum points this term can contribute.
	Weight float64
	// Ratio is the achieved fraction of the weight; values above 1 are
	// clamped, negatives count as zero.
	Ratio float64
}

// Contribution returns the clamped points this term adds to the score.
func (t Term) Contribution() float64 {
	if t.Ratio <= 0 {
		return 0
	}
	points := t.Ratio * t.Weight
	if points > t.Weight {
		return t.Weight
	}
	return points
}

// Fraction builds a ratio of value per unit (e.g. followers per 1000).
func Fraction(value, per float64) float64 {
	if per == 0 {
		return 0
	}
	return value / per
}

// Flag converts a boolean signal to a full-or-nothing ratio.
func Flag(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// Score sums the clamped contributions and rounds to the nearest integer,
// clamped to [0,100].
func Score(terms []Term) int {
	var total float64
	for _, t := range terms {
		total += t.Contribution()
	}
	score := int(math.Round(total))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
