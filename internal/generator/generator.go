package generator

import (
	"fmt"

	"github.com/Polyhaze/qmk2srgb/internal/models"
)

// Options controls the normalization strategy.
type Options struct {
	// MatrixSizing sizes the grid from key matrix columns/rows instead of
	// raw LED coordinates and collapses LEDs sharing a physical row or
	// column onto a single grid line. Produces a smaller grid at the cost
	// of positional accuracy.
	MatrixSizing bool
}

// Generate derives the plugin value tables from a parsed keyboard
// description: the grid dimensions and the three parallel per-LED arrays
// (indices, display names, normalized positions), all in LED declaration
// order. The transform is pure and deterministic; identical input yields
// identical output.
func Generate(doc *models.InfoDoc, opts Options) (*models.PluginData, error) {
	xs, ys := axisSets(doc.Leds, opts.MatrixSizing)
	res := newResolver(doc.Keys)

	data := &models.PluginData{
		BoardName:    doc.BoardName(),
		VendorID:     doc.VendorID,
		ProductID:    doc.ProductID,
		Width:        len(xs),
		Height:       len(ys),
		LedIndices:   make([]int, 0, len(doc.Leds)),
		LedNames:     make([]string, 0, len(doc.Leds)),
		LedPositions: make([][2]int, 0, len(doc.Leds)),
	}

	for i, led := range doc.Leds {
		gridX, gridY, err := res.position(led, xs, ys, opts.MatrixSizing)
		if err != nil {
			return nil, fmt.Errorf("led %d: %w", i, err)
		}
		data.LedIndices = append(data.LedIndices, i)
		data.LedNames = append(data.LedNames, res.name(led))
		data.LedPositions = append(data.LedPositions, [2]int{gridX, gridY})
	}

	return data, nil
}
