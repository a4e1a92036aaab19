// Package persist reads and writes the ".bbd" document format (spec §6): a
// structured, hierarchical record of a board's components and cables.
//
// No library anywhere in the retrieval pack offers a structured-document
// serializer (no JSON/YAML/TOML/protobuf dependency appears in any
// example's go.mod), so this package is built directly on the standard
// library's encoding/xml rather than reaching for an ungrounded
// third-party choice.
package persist

import (
	"encoding/xml"
	"fmt"

	"github.com/solderline/breadboard"
)

type document struct {
	XMLName    xml.Name        `xml:"Board"`
	Width      int             `xml:"Width,attr"`
	Height     int             `xml:"Height,attr"`
	Components []componentDoc  `xml:"Components>Component"`
	Cables     []cableDoc      `xml:"Cables>Cable"`
}

type busDoc struct {
	Address   string `xml:"Address,attr"`
	X         int    `xml:"X,attr"`
	Y         int    `xml:"Y,attr"`
	Direction string `xml:"Direction,attr"`
}

type registerDoc struct {
	Address string `xml:"Address,attr"`
	Value   int64  `xml:"Value,attr"`
}

type componentDoc struct {
	Kind string `xml:"Kind,attr"`
	X    int    `xml:"X,attr"`
	Y    int    `xml:"Y,attr"`
	W    int    `xml:"W,attr"`
	H    int    `xml:"H,attr"`

	// PressButton / ToggleButton
	Pressed bool `xml:"Pressed,attr,omitempty"`

	// LED
	Color string `xml:"Color,attr,omitempty"`

	// NumericDisplay
	Base int   `xml:"Base,attr,omitempty"`
	Min  int64 `xml:"Min,attr,omitempty"`
	Max  int64 `xml:"Max,attr,omitempty"`

	// TextDisplay
	MaxLen int `xml:"MaxLen,attr,omitempty"`

	// BitmapDisplay
	BitmapWidth   int    `xml:"BitmapWidth,attr,omitempty"`
	BitmapHeight  int    `xml:"BitmapHeight,attr,omitempty"`
	DefaultColor  string `xml:"DefaultColor,attr,omitempty"`
	InactiveColor string `xml:"InactiveColor,attr,omitempty"`

	// Memory
	Capacity int `xml:"Capacity,attr,omitempty"`

	// MicroController
	Source    string        `xml:"Source,omitempty"`
	Registers []registerDoc `xml:"Registers>Register,omitempty"`

	SBuses []busDoc `xml:"SBuses>Bus,omitempty"`
	XBuses []busDoc `xml:"XBuses>Bus,omitempty"`
}

type cableDoc struct {
	Kind string `xml:"Kind,attr"`
	Ax   int    `xml:"Ax,attr"`
	Ay   int    `xml:"Ay,attr"`
	Bx   int    `xml:"Bx,attr"`
	By   int    `xml:"By,attr"`
}

func colorString(c breadboard.Color) string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

func parseColor(s string) breadboard.Color {
	var r, g, b int
	fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b)
	return breadboard.Color{R: uint8(r), G: uint8(g), B: uint8(b)}
}

func directionString(d breadboard.Direction) string { return d.String() }

func parseDirection(s string) breadboard.Direction {
	switch s {
	case "Up":
		return breadboard.Up
	case "Down":
		return breadboard.Down
	case "Left":
		return breadboard.Left
	case "Right":
		return breadboard.Right
	default:
		return breadboard.Up
	}
}

func kindString(k breadboard.ComponentKind) string { return k.String() }

func parseKind(s string) (breadboard.ComponentKind, bool) {
	switch s {
	case "PressButton":
		return breadboard.KindPressButton, true
	case "ToggleButton":
		return breadboard.KindToggleButton, true
	case "LED":
		return breadboard.KindLED, true
	case "NumericDisplay":
		return breadboard.KindNumericDisplay, true
	case "TextDisplay":
		return breadboard.KindTextDisplay, true
	case "BitmapDisplay":
		return breadboard.KindBitmapDisplay, true
	case "Memory":
		return breadboard.KindMemory, true
	case "MicroController":
		return breadboard.KindMicroController, true
	default:
		return 0, false
	}
}

func cableKindString(k breadboard.CableKind) string { return k.String() }

func parseCableKind(s string) (breadboard.CableKind, bool) {
	switch s {
	case "Solder":
		return breadboard.Solder, true
	case "Bridge":
		return breadboard.Bridge, true
	default:
		return 0, false
	}
}
