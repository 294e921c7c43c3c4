// Package generator derives the normalized LED grid and display names that
// feed the plugin template.
package generator

import (
	"sort"

	"github.com/Polyhaze/qmk2srgb/internal/models"
)

// axisSets computes the distinct, ascending-sorted X-domain and Y-domain
// values used by the LEDs. The cardinality of each set is the grid dimension
// on that axis, and the rank of a value within its set is the normalized
// grid coordinate. The sort must be numeric: ranks are assigned by position.
func axisSets(leds []models.LayoutEntry, matrixSizing bool) (xs, ys []float64) {
	seenX := make(map[float64]bool)
	seenY := make(map[float64]bool)

	for _, led := range leds {
		x, y := selectCoords(led, matrixSizing)
		if !seenX[x] {
			seenX[x] = true
			xs = append(xs, x)
		}
		if !seenY[y] {
			seenY[y] = true
			ys = append(ys, y)
		}
	}

	sort.Float64s(xs)
	sort.Float64s(ys)
	return xs, ys
}

// selectCoords applies the shared coordinate-selection rule: with matrix
// sizing enabled, an LED carrying a key matrix position contributes its
// matrix column as X and matrix row as Y. LEDs without one fall back to
// their raw device-space coordinates, so mixed documents are tolerated.
func selectCoords(led models.LayoutEntry, matrixSizing bool) (x, y float64) {
	if matrixSizing && led.Matrix != nil {
		return float64(led.Matrix.Col), float64(led.Matrix.Row)
	}
	return led.X, led.Y
}

// rank returns the 0-based position of v in an ascending-sorted axis set.
func rank(axis []float64, v float64) (int, bool) {
	i := sort.SearchFloat64s(axis, v)
	if i < len(axis) && axis[i] == v {
		return i, true
	}
	return 0, false
}
