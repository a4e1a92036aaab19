package persist

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/solderline/breadboard"
)

// Save writes b's full placement-relevant state to w in the ".bbd" format
// (spec §6).
func Save(b *breadboard.Board, w io.Writer) error {
	doc := toDocument(b)
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

// SaveFile writes b to the named file, truncating it if it already exists.
func SaveFile(b *breadboard.Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Save(b, f)
}

func toDocument(b *breadboard.Board) document {
	doc := document{Width: b.Width, Height: b.Height}
	for _, c := range b.Components() {
		doc.Components = append(doc.Components, componentToDoc(c))
	}
	for _, cable := range b.Cables() {
		doc.Cables = append(doc.Cables, cableToDoc(cable))
	}
	return doc
}

func busToDoc(bus *breadboard.Bus) busDoc {
	return busDoc{
		Address:   bus.Address,
		X:         bus.Pos.X,
		Y:         bus.Pos.Y,
		Direction: directionString(bus.Dir),
	}
}

func componentToDoc(c *breadboard.Component) componentDoc {
	d := componentDoc{
		Kind: kindString(c.Kind),
		X:    c.Position.X, Y: c.Position.Y,
		W: c.Width, H: c.Height,
	}
	switch c.Kind {
	case breadboard.KindPressButton, breadboard.KindToggleButton:
		d.Pressed = c.Pressed
	case breadboard.KindLED:
		d.Color = c.LEDColor
	case breadboard.KindNumericDisplay:
		d.Base, d.Min, d.Max = c.NumericBase, c.NumericMin, c.NumericMax
	case breadboard.KindTextDisplay:
		d.MaxLen = c.MaxLen
	case breadboard.KindBitmapDisplay:
		d.BitmapWidth, d.BitmapHeight = c.BitmapWidth, c.BitmapHeight
		d.DefaultColor = colorString(c.DefaultColor)
		d.InactiveColor = colorString(c.InactiveColor)
	case breadboard.KindMemory:
		d.Capacity = c.Capacity
	case breadboard.KindMicroController:
		d.Source = c.Source
		for _, r := range c.Registers {
			d.Registers = append(d.Registers, registerDoc{Address: r.Address, Value: r.Value})
		}
	}
	for i := range c.SBuses {
		d.SBuses = append(d.SBuses, busToDoc(&c.SBuses[i]))
	}
	for i := range c.XBuses {
		d.XBuses = append(d.XBuses, busToDoc(&c.XBuses[i]))
	}
	return d
}

func cableToDoc(c breadboard.Cable) cableDoc {
	return cableDoc{
		Kind: cableKindString(c.Kind),
		Ax:   c.A.X, Ay: c.A.Y,
		Bx: c.B.X, By: c.B.Y,
	}
}
