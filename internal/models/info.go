package models

// MatrixPos identifies a key's electrical position in the key matrix.
type MatrixPos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// LayoutEntry is one LED of the RGB matrix, in firmware declaration order.
// X/Y are device-space coordinates as declared by the firmware (QMK uses a
// 224x64 canvas, but nothing here depends on that). Matrix is nil for LEDs
// that are not tied to a key switch (underglow, edge lighting).
type LayoutEntry struct {
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Matrix *MatrixPos `json:"matrix,omitempty"`
}

// KeyDef is one key of a physical layout: its matrix position and the
// human-readable legend printed on the cap. Label may be empty and may
// contain non-ASCII glyphs or characters that need escaping.
type KeyDef struct {
	Matrix MatrixPos `json:"matrix"`
	Label  string    `json:"label"`
}

// InfoDoc is the parsed keyboard description consumed by the generator.
// Keys holds the key definitions of the first physical layout declared in
// the source document, or nil when the document declares no layouts.
type InfoDoc struct {
	Manufacturer string        `json:"manufacturer"`
	KeyboardName string        `json:"keyboardName"`
	VendorID     string        `json:"vendorId"`
	ProductID    string        `json:"productId"`
	Leds         []LayoutEntry `json:"leds"`
	Keys         []KeyDef      `json:"keys,omitempty"`
}

// BoardName returns the display name used for the generated plugin,
// "<manufacturer> <keyboard_name>".
func (d *InfoDoc) BoardName() string {
	return d.Manufacturer + " " + d.KeyboardName
}
