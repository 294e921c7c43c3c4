package models

import "time"

// PluginData holds the generated value tables for one keyboard, ready to be
// rendered into the plugin template. The three slices are parallel: index i
// describes LED i of the input layout, in declaration order.
type PluginData struct {
	BoardName string `json:"boardName"`
	VendorID  string `json:"vendorId"`
	ProductID string `json:"productId"`

	// Width and Height are the normalized grid dimensions: the number of
	// distinct X and Y values used by the LEDs.
	Width  int `json:"width"`
	Height int `json:"height"`

	LedIndices   []int    `json:"ledIndices"`
	LedNames     []string `json:"ledNames"`
	LedPositions [][2]int `json:"ledPositions"`
}

// PluginInfo represents metadata about a plugin written to the store.
type PluginInfo struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	BoardName string    `json:"boardName"`
	Size      int64     `json:"size"`
	WrittenAt time.Time `json:"writtenAt"`
}
