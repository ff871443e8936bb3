package analytics

import (
	"encoding/json"
	"math"

	"github.com/akyro/liftlog/internal/models"
)

// Side names one of the two workouts in a comparison.
type Side int

const (
	SideNone Side = iota
	SideA
	SideB
)

func (s Side) String() string {
	switch s {
	case SideA:
		return "a"
	case SideB:
		return "b"
	default:
		return "none"
	}
}

// Comparison is the result of diffing two workouts. It is immutable once
// built by Compare.
type Comparison struct {
	NameA            string
	NameB            string
	VolumeA          float64
	VolumeB          float64
	VolumeDifference float64
	CommonExercises  []string
	UniqueToA        []string
	UniqueToB        []string
}

// Compare diffs the exercise names and total volumes of a and b.
// Name matching is exact and case-sensitive. Swapping the arguments swaps
// UniqueToA/UniqueToB and Larger, and keeps VolumeDifference.
func Compare(a, b *models.Workout) Comparison {
	va, vb := a.TotalVolume(), b.TotalVolume()

	namesA := uniqueNames(a)
	namesB := uniqueNames(b)
	inA := make(map[string]bool, len(namesA))
	for _, n := range namesA {
		inA[n] = true
	}
	inB := make(map[string]bool, len(namesB))
	for _, n := range namesB {
		inB[n] = true
	}

	c := Comparison{
		NameA:            a.Name,
		NameB:            b.Name,
		VolumeA:          va,
		VolumeB:          vb,
		VolumeDifference: math.Abs(va - vb),
		CommonExercises:  []string{},
		UniqueToA:        []string{},
		UniqueToB:        []string{},
	}
	for _, n := range namesA {
		if inB[n] {
			c.CommonExercises = append(c.CommonExercises, n)
		} else {
			c.UniqueToA = append(c.UniqueToA, n)
		}
	}
	for _, n := range namesB {
		if !inA[n] {
			c.UniqueToB = append(c.UniqueToB, n)
		}
	}
	return c
}

// Larger reports which workout has more total volume.
func (c Comparison) Larger() Side {
	switch {
	case c.VolumeA > c.VolumeB:
		return SideA
	case c.VolumeB > c.VolumeA:
		return SideB
	default:
		return SideNone
	}
}

// VolumeDifferencePercent returns the volume difference as a fraction of the
// smaller total. When both totals are zero the difference is 0 and ok is
// true. When only the smaller total is zero the percentage is undefined:
// it returns NaN and ok=false.
func (c Comparison) VolumeDifferencePercent() (pct float64, ok bool) {
	smaller := math.Min(c.VolumeA, c.VolumeB)
	if smaller == 0 {
		if c.VolumeDifference == 0 {
			return 0, true
		}
		return math.NaN(), false
	}
	return c.VolumeDifference / smaller, true
}

// MarshalJSON renders the comparison with the derived fields. An undefined
// percentage is written as null.
func (c Comparison) MarshalJSON() ([]byte, error) {
	var pct *float64
	if p, ok := c.VolumeDifferencePercent(); ok {
		pct = &p
	}
	return json.Marshal(struct {
		NameA            string   `json:"name_a"`
		NameB            string   `json:"name_b"`
		VolumeA          float64  `json:"volume_a"`
		VolumeB          float64  `json:"volume_b"`
		VolumeDifference float64  `json:"volume_difference"`
		VolumeDiffPct    *float64 `json:"volume_difference_pct"`
		Larger           string   `json:"larger"`
		CommonExercises  []string `json:"common_exercises"`
		UniqueToA        []string `json:"unique_to_a"`
		UniqueToB        []string `json:"unique_to_b"`
	}{
		NameA:            c.NameA,
		NameB:            c.NameB,
		VolumeA:          c.VolumeA,
		VolumeB:          c.VolumeB,
		VolumeDifference: c.VolumeDifference,
		VolumeDiffPct:    pct,
		Larger:           c.Larger().String(),
		CommonExercises:  c.CommonExercises,
		UniqueToA:        c.UniqueToA,
		UniqueToB:        c.UniqueToB,
	})
}

// uniqueNames returns exercise names in first-appearance order without
// duplicates.
func uniqueNames(w *models.Workout) []string {
	seen := make(map[string]bool, w.Size())
	var names []string
	for _, e := range w.Exercises {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}
