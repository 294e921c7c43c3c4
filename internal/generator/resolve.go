package generator

import (
	"fmt"
	"strings"

	"github.com/Polyhaze/qmk2srgb/internal/models"
	"golang.org/x/text/unicode/runenames"
)

// resolver carries the mutable state of one generation run: the
// fallback-name counter and the row/column collapse memos. A fresh resolver
// is created per document, so batch runs never leak state across files.
type resolver struct {
	keys    []models.KeyDef
	unnamed int
	rowY    map[int]int
	colX    map[int]int
}

func newResolver(keys []models.KeyDef) *resolver {
	return &resolver{
		keys: keys,
		rowY: make(map[int]int),
		colX: make(map[int]int),
	}
}

// position resolves the grid cell for one LED by ranking its selected
// coordinates in the axis sets. In matrix-sizing mode the first LED seen for
// a matrix row fixes gridY for every later LED in that row, and likewise per
// column for gridX, collapsing a physical row or column onto one grid line.
// A rank miss means the axis sets were not derived from these entries and is
// reported as an error rather than masked.
func (r *resolver) position(led models.LayoutEntry, xs, ys []float64, matrixSizing bool) (gridX, gridY int, err error) {
	x, y := selectCoords(led, matrixSizing)

	gridX, ok := rank(xs, x)
	if !ok {
		return 0, 0, fmt.Errorf("x coordinate %v not present in axis set", x)
	}
	gridY, ok = rank(ys, y)
	if !ok {
		return 0, 0, fmt.Errorf("y coordinate %v not present in axis set", y)
	}

	if matrixSizing && led.Matrix != nil && len(r.keys) > 0 {
		if prev, seen := r.colX[led.Matrix.Col]; seen {
			gridX = prev
		} else {
			r.colX[led.Matrix.Col] = gridX
		}
		if prev, seen := r.rowY[led.Matrix.Row]; seen {
			gridY = prev
		} else {
			r.rowY[led.Matrix.Row] = gridY
		}
	}

	return gridX, gridY, nil
}

// name resolves the display name for one LED. Key definitions are matched on
// exact (row, col) equality, first match wins. A miss, an LED without a
// matrix position, or an empty label falls back to "Light N", where N counts
// fallback assignments in encounter order.
func (r *resolver) name(led models.LayoutEntry) string {
	if led.Matrix != nil {
		if key, found := r.lookup(*led.Matrix); found && key.Label != "" {
			return sanitizeLabel(key.Label)
		}
	}
	r.unnamed++
	return fmt.Sprintf("Light %d", r.unnamed)
}

func (r *resolver) lookup(pos models.MatrixPos) (models.KeyDef, bool) {
	for _, key := range r.keys {
		if key.Matrix == pos {
			return key, true
		}
	}
	return models.KeyDef{}, false
}

// sanitizeLabel prepares a key legend for embedding in the generated script.
// A label containing anything outside printable ASCII is replaced wholesale
// by the Unicode name of the first offending rune, so a legend like "É" or
// "↑" becomes its textual description. The wholesale replacement (rather
// than per-character) matches the established plugin output. Backslashes and
// double quotes are escaped afterwards.
func sanitizeLabel(label string) string {
	if r, found := firstNonPrintable(label); found {
		label = runenames.Name(r)
	}
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	return label
}

func firstNonPrintable(s string) (rune, bool) {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return r, true
		}
	}
	return 0, false
}
