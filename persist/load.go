package persist

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/solderline/breadboard"
)

// Load reads a ".bbd" document from r and replays it into a fresh board
// (spec §6 load semantics): components first in document order, then
// cables bridges-before-solders, dropping any add that violates a
// placement rule. The returned bool is false ("non-perfect") if any drop
// occurred.
func Load(r io.Reader) (*breadboard.Board, bool, error) {
	board, dropped, err := Diff(r)
	return board, len(dropped) == 0, err
}

// LoadFile reads and replays the named ".bbd" file.
func LoadFile(path string) (*breadboard.Board, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()
	return Load(f)
}

func decodeDocument(r io.Reader) (document, error) {
	var doc document
	err := xml.NewDecoder(r).Decode(&doc)
	return doc, err
}

func replayCable(board *breadboard.Board, cd cableDoc) bool {
	kind, ok := parseCableKind(cd.Kind)
	if !ok {
		return false
	}
	cable, ok := breadboard.NewCable(
		breadboard.Position{X: cd.Ax, Y: cd.Ay},
		breadboard.Position{X: cd.Bx, Y: cd.By},
		kind,
	)
	if !ok {
		return false
	}
	return board.AddCable(cable)
}

func docToBus(bd busDoc, kind breadboard.BusKind) breadboard.Bus {
	return breadboard.Bus{
		Address: bd.Address,
		Pos:     breadboard.Position{X: bd.X, Y: bd.Y},
		Dir:     parseDirection(bd.Direction),
		Kind:    kind,
	}
}

func docToComponent(d componentDoc) (*breadboard.Component, bool) {
	kind, ok := parseKind(d.Kind)
	if !ok {
		return nil, false
	}

	c := &breadboard.Component{
		Kind:     kind,
		Position: breadboard.Position{X: d.X, Y: d.Y},
		Width:    d.W, Height: d.H,
	}
	for _, bd := range d.SBuses {
		c.SBuses = append(c.SBuses, docToBus(bd, breadboard.SBus))
	}
	for _, bd := range d.XBuses {
		c.XBuses = append(c.XBuses, docToBus(bd, breadboard.XBus))
	}

	switch kind {
	case breadboard.KindPressButton, breadboard.KindToggleButton:
		c.Pressed = d.Pressed
	case breadboard.KindLED:
		c.LEDColor = d.Color
	case breadboard.KindNumericDisplay:
		c.NumericBase, c.NumericMin, c.NumericMax = d.Base, d.Min, d.Max
	case breadboard.KindTextDisplay:
		c.MaxLen = d.MaxLen
		c.DisplayText = make([]rune, d.MaxLen)
		for i := range c.DisplayText {
			c.DisplayText[i] = ' '
		}
	case breadboard.KindBitmapDisplay:
		c.BitmapWidth, c.BitmapHeight = clampDim(d.BitmapWidth), clampDim(d.BitmapHeight)
		c.DefaultColor = parseColor(d.DefaultColor)
		c.InactiveColor = parseColor(d.InactiveColor)
		c.Pixels = make([]breadboard.Color, c.BitmapWidth*c.BitmapHeight)
		for i := range c.Pixels {
			c.Pixels[i] = c.InactiveColor
		}
	case breadboard.KindMemory:
		c.Capacity = clampCapacity(d.Capacity)
		c.Cells = make([]int64, c.Capacity)
	case breadboard.KindMicroController:
		c.Source = d.Source
		for _, r := range d.Registers {
			c.Registers = append(c.Registers, breadboard.Register{Address: r.Address, Value: r.Value})
		}
	}
	return c, true
}

func clampDim(n int) int {
	if n < 0 {
		return 0
	}
	if n > 1024 {
		return 1024
	}
	return n
}

func clampCapacity(n int) int {
	if n < 0 {
		return 0
	}
	if n > 2048 {
		return 2048
	}
	return n
}
