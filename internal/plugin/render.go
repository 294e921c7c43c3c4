// Package plugin renders generated value tables into the SignalRGB plugin
// boilerplate and derives output file names.
package plugin

import (
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/Polyhaze/qmk2srgb/internal/models"
	"github.com/valyala/fasttemplate"
)

// templateJS is the fixed plugin body. Everything in it besides the $NAME$
// substitution points is opaque boilerplate for the lighting host and must
// reach the output byte-identical.
//
//go:embed template.js
var templateJS string

// Render substitutes device identity, grid size and the three LED arrays
// into the plugin template. The embedded script itself contains dollar signs
// (template literals, a regex anchor); anything between dollar signs that is
// not a known placeholder is written back untouched.
func Render(data *models.PluginData) string {
	vals := map[string]string{
		"KNAME":   data.BoardName,
		"VID":     data.VendorID,
		"PID":     data.ProductID,
		"NX":      strconv.Itoa(data.Width),
		"NY":      strconv.Itoa(data.Height),
		"VK":      formatIndices(data.LedIndices),
		"VKNAMES": formatNames(data.LedNames),
		"VKPOS":   formatPositions(data.LedPositions),
	}

	return fasttemplate.ExecuteFuncString(templateJS, "$", "$",
		func(w io.Writer, tag string) (int, error) {
			if v, ok := vals[tag]; ok {
				return io.WriteString(w, v)
			}
			return fmt.Fprintf(w, "$%s$", tag)
		})
}

// FileName derives the output file name from the board name: alphanumerics
// and spaces survive, lowercased, spaces become underscores.
func FileName(boardName string) string {
	var b strings.Builder
	for _, r := range boardName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	name := strings.ToLower(b.String())
	return strings.ReplaceAll(name, " ", "_") + ".js"
}

func formatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, v := range indices {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func formatNames(names []string) string {
	parts := make([]string, len(names))
	for i, v := range names {
		parts[i] = `"` + v + `"`
	}
	return strings.Join(parts, ", ")
}

func formatPositions(positions [][2]int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("[%d, %d]", p[0], p[1])
	}
	return strings.Join(parts, ", ")
}
