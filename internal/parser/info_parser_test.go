package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleInfo = `{
	// demo board description
	"manufacturer": "Acme",
	"keyboard_name": "Frobboard",
	"usb": {
		"vid": "0xFEED",
		"pid": "0x6060"
	},
	"rgb_matrix": {
		"layout": [
			{"matrix": [0, 0], "x": 0, "y": 0},
			{"matrix": [0, 1], "x": 18.5, "y": 0},
			{"x": 112, "y": 32}, /* underglow */
		]
	},
	"layouts": {
		"LAYOUT_ansi": {
			"layout": [
				{"matrix": [0, 0], "label": "Esc", "x": 0, "y": 0},
				{"matrix": [0, 1], "label": "1", "x": 1, "y": 0},
				{"label": "decorative", "x": 2, "y": 0},
			]
		},
		"LAYOUT_all": {
			"layout": [
				{"matrix": [0, 0], "label": "WRONG", "x": 0, "y": 0}
			]
		}
	}
}`

func TestParseInfoFromReader(t *testing.T) {
	doc, err := ParseInfoFromReader(strings.NewReader(sampleInfo))
	if err != nil {
		t.Fatalf("ParseInfoFromReader failed: %v", err)
	}

	if doc.Manufacturer != "Acme" || doc.KeyboardName != "Frobboard" {
		t.Errorf("unexpected identity: %q %q", doc.Manufacturer, doc.KeyboardName)
	}
	if doc.VendorID != "0xFEED" || doc.ProductID != "0x6060" {
		t.Errorf("unexpected usb ids: %q %q", doc.VendorID, doc.ProductID)
	}
	if doc.BoardName() != "Acme Frobboard" {
		t.Errorf("unexpected board name: %q", doc.BoardName())
	}

	if len(doc.Leds) != 3 {
		t.Fatalf("expected 3 leds, got %d", len(doc.Leds))
	}
	if doc.Leds[1].X != 18.5 || doc.Leds[1].Matrix == nil || doc.Leds[1].Matrix.Col != 1 {
		t.Errorf("unexpected led[1]: %+v", doc.Leds[1])
	}
	if doc.Leds[2].Matrix != nil {
		t.Errorf("underglow led should have no matrix: %+v", doc.Leds[2])
	}

	// Only the first declared layout contributes keys, and entries without
	// a matrix position are dropped.
	if len(doc.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %+v", len(doc.Keys), doc.Keys)
	}
	if doc.Keys[0].Label != "Esc" {
		t.Errorf("expected first-declared layout labels, got %q", doc.Keys[0].Label)
	}
}

func TestParseInfoFirstLayoutWins(t *testing.T) {
	// Same document with the layout members swapped: declaration order, not
	// name order, decides which layout provides the labels.
	swapped := `{
		"manufacturer": "Acme",
		"keyboard_name": "Frobboard",
		"usb": {"vid": "0xFEED", "pid": "0x6060"},
		"rgb_matrix": {"layout": [{"matrix": [0, 0], "x": 0, "y": 0}]},
		"layouts": {
			"z_last_alphabetically": {"layout": [{"matrix": [0, 0], "label": "First"}]},
			"a_first_alphabetically": {"layout": [{"matrix": [0, 0], "label": "Second"}]}
		}
	}`

	doc, err := ParseInfoFromReader(strings.NewReader(swapped))
	if err != nil {
		t.Fatalf("ParseInfoFromReader failed: %v", err)
	}
	if len(doc.Keys) != 1 || doc.Keys[0].Label != "First" {
		t.Errorf("expected label from first declared layout, got %+v", doc.Keys)
	}
}

func TestParseInfoNoLayouts(t *testing.T) {
	minimal := `{
		"manufacturer": "Acme",
		"keyboard_name": "Barebones",
		"usb": {"vid": "0x1234", "pid": "0x5678"},
		"rgb_matrix": {"layout": [{"x": 0, "y": 0}]}
	}`

	doc, err := ParseInfoFromReader(strings.NewReader(minimal))
	if err != nil {
		t.Fatalf("ParseInfoFromReader failed: %v", err)
	}
	if doc.Keys != nil {
		t.Errorf("expected nil keys, got %+v", doc.Keys)
	}
}

func TestParseInfoMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			"no manufacturer",
			`{"keyboard_name": "X", "usb": {"vid": "1", "pid": "2"}, "rgb_matrix": {"layout": [{"x": 0, "y": 0}]}}`,
			"manufacturer",
		},
		{
			"no keyboard name",
			`{"manufacturer": "X", "usb": {"vid": "1", "pid": "2"}, "rgb_matrix": {"layout": [{"x": 0, "y": 0}]}}`,
			"keyboard_name",
		},
		{
			"no vid",
			`{"manufacturer": "X", "keyboard_name": "Y", "usb": {"pid": "2"}, "rgb_matrix": {"layout": [{"x": 0, "y": 0}]}}`,
			"usb.vid",
		},
		{
			"no pid",
			`{"manufacturer": "X", "keyboard_name": "Y", "usb": {"vid": "1"}, "rgb_matrix": {"layout": [{"x": 0, "y": 0}]}}`,
			"usb.pid",
		},
		{
			"empty rgb matrix",
			`{"manufacturer": "X", "keyboard_name": "Y", "usb": {"vid": "1", "pid": "2"}, "rgb_matrix": {"layout": []}}`,
			"rgb_matrix.layout",
		},
		{
			"malformed matrix pair",
			`{"manufacturer": "X", "keyboard_name": "Y", "usb": {"vid": "1", "pid": "2"}, "rgb_matrix": {"layout": [{"matrix": [0], "x": 0, "y": 0}]}}`,
			"matrix",
		},
		{
			"not json at all",
			`keyboard: yes`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInfoFromReader(strings.NewReader(tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseInfoFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "info.json")
	if err := os.WriteFile(path, []byte(sampleInfo), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseInfo(path)
	if err != nil {
		t.Fatalf("ParseInfo failed: %v", err)
	}
	if doc.KeyboardName != "Frobboard" {
		t.Errorf("unexpected keyboard name: %q", doc.KeyboardName)
	}

	if _, err := ParseInfo(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseInfoDegenerateLayouts(t *testing.T) {
	// An empty layouts object and an explicit null both mean "no key
	// metadata", not a parse failure.
	for _, layouts := range []string{"{}", "null"} {
		t.Run("layouts="+layouts, func(t *testing.T) {
			body := `{
				"manufacturer": "Acme",
				"keyboard_name": "Frobboard",
				"usb": {"vid": "0xFEED", "pid": "0x6060"},
				"rgb_matrix": {"layout": [{"x": 0, "y": 0}]},
				"layouts": ` + layouts + `
			}`

			doc, err := ParseInfoFromReader(strings.NewReader(body))
			if err != nil {
				t.Fatalf("ParseInfoFromReader failed: %v", err)
			}
			if len(doc.Keys) != 0 {
				t.Errorf("expected no keys, got %+v", doc.Keys)
			}
		})
	}
}
