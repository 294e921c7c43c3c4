// Package parser reads QMK info.json keyboard descriptions.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Polyhaze/qmk2srgb/internal/models"
	"github.com/tailscale/hujson"
)

// infoJSON mirrors the raw document structure. QMK ships info.json as JWCC
// (JSON with comments and trailing commas), so the bytes are standardized to
// plain JSON before decoding.
type infoJSON struct {
	Manufacturer string      `json:"manufacturer"`
	KeyboardName string      `json:"keyboard_name"`
	USB          usbJSON     `json:"usb"`
	RGBMatrix    rgbJSON     `json:"rgb_matrix"`
	Layouts      layoutsJSON `json:"layouts"`
}

type usbJSON struct {
	VID string `json:"vid"`
	PID string `json:"pid"`
}

type rgbJSON struct {
	Layout []ledJSON `json:"layout"`
}

type ledJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Matrix []int   `json:"matrix"`
}

type keyJSON struct {
	Matrix []int  `json:"matrix"`
	Label  string `json:"label"`
}

// layoutsJSON keeps only the first declared member of the "layouts" object.
// Declaration order is significant (the first physical layout provides the
// key labels) and Go maps do not preserve it, so the object is walked with a
// token decoder instead of being unmarshaled into a map.
type layoutsJSON struct {
	Keys []keyJSON
}

func (l *layoutsJSON) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("layouts: expected object, got %v", tok)
	}
	if !dec.More() {
		return nil
	}
	// First member name, then its value. Remaining members are skipped.
	if _, err := dec.Token(); err != nil {
		return err
	}
	var first struct {
		Layout []keyJSON `json:"layout"`
	}
	if err := dec.Decode(&first); err != nil {
		return err
	}
	l.Keys = first.Layout
	return nil
}

// ParseInfo parses a QMK info.json file.
func ParseInfo(filePath string) (*models.InfoDoc, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseInfoFromReader(f)
}

// ParseInfoFromReader parses a keyboard description from an io.Reader.
func ParseInfoFromReader(r io.Reader) (*models.InfoDoc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardizing JWCC: %w", err)
	}

	var raw infoJSON
	if err := json.Unmarshal(std, &raw); err != nil {
		return nil, fmt.Errorf("decoding info.json: %w", err)
	}

	return buildDoc(&raw)
}

func buildDoc(raw *infoJSON) (*models.InfoDoc, error) {
	if raw.Manufacturer == "" {
		return nil, fmt.Errorf("missing required field %q", "manufacturer")
	}
	if raw.KeyboardName == "" {
		return nil, fmt.Errorf("missing required field %q", "keyboard_name")
	}
	if raw.USB.VID == "" {
		return nil, fmt.Errorf("missing required field %q", "usb.vid")
	}
	if raw.USB.PID == "" {
		return nil, fmt.Errorf("missing required field %q", "usb.pid")
	}
	if len(raw.RGBMatrix.Layout) == 0 {
		return nil, fmt.Errorf("missing required field %q", "rgb_matrix.layout")
	}

	doc := &models.InfoDoc{
		Manufacturer: raw.Manufacturer,
		KeyboardName: raw.KeyboardName,
		VendorID:     raw.USB.VID,
		ProductID:    raw.USB.PID,
		Leds:         make([]models.LayoutEntry, 0, len(raw.RGBMatrix.Layout)),
	}

	for i, led := range raw.RGBMatrix.Layout {
		entry := models.LayoutEntry{X: led.X, Y: led.Y}
		if led.Matrix != nil {
			if len(led.Matrix) != 2 {
				return nil, fmt.Errorf("rgb_matrix.layout[%d]: matrix must be a [row, col] pair, got %v", i, led.Matrix)
			}
			entry.Matrix = &models.MatrixPos{Row: led.Matrix[0], Col: led.Matrix[1]}
		}
		doc.Leds = append(doc.Leds, entry)
	}

	for _, key := range raw.Layouts.Keys {
		// Decorative entries without a matrix position cannot be matched
		// against any LED.
		if len(key.Matrix) != 2 {
			continue
		}
		doc.Keys = append(doc.Keys, models.KeyDef{
			Matrix: models.MatrixPos{Row: key.Matrix[0], Col: key.Matrix[1]},
			Label:  key.Label,
		})
	}

	return doc, nil
}
