package breadboard

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// tickPeripheral advances a non-microcontroller component by one step
// (spec §4.6). Grounded on hwlib's Mount closures, which read and write
// pins on every circuit step with no hidden state of their own — these
// functions do the same, dispatched by Kind instead of by a stored
// closure (spec §9's tagged-variant Design Note).
func (b *Board) tickPeripheral(c *Component) error {
	switch c.Kind {
	case KindPressButton, KindToggleButton:
		b.tickButton(c)
	case KindLED:
		b.tickLED(c)
	case KindNumericDisplay:
		b.tickNumericDisplay(c)
	case KindTextDisplay:
		b.tickTextDisplay(c)
	case KindBitmapDisplay:
		b.tickBitmapDisplay(c)
	case KindMemory:
		return b.tickMemory(c)
	}
	return nil
}

func (b *Board) tickButton(c *Component) {
	v := int64(0)
	if c.Pressed {
		v = 255
	}
	for i := range c.SBuses {
		c.SBuses[i].Value = v
	}
}

func (b *Board) tickLED(c *Component) {
	var max int64
	for i := range c.SBuses {
		if v := b.maxSignal(c, &c.SBuses[i]); v > max {
			max = v
		}
	}
	c.LEDValue = clampSignal(max)
}

// clampRange clamps v to [lo, hi].
func clampRange(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (b *Board) tickNumericDisplay(c *Component) {
	for i := range c.XBuses {
		pin := &c.XBuses[i]
		if pin.State != ReadComplete {
			pin.State = Reading
			continue
		}
		v := clampRange(pin.Value, c.NumericMin, c.NumericMax)
		base := c.NumericBase
		if base != 2 && base != 8 && base != 10 && base != 16 {
			base = 10
		}
		c.NumericText = strconv.FormatInt(v, base)
		pin.State = Reading
	}
}

func (b *Board) tickTextDisplay(c *Component) {
	for i := range c.XBuses {
		pin := &c.XBuses[i]
		if pin.State != ReadComplete {
			pin.State = Reading
			continue
		}
		payload := pin.Value
		ch := rune(payload & 0xFFFF)
		pos := int((payload >> 16) & 0xFFFF)
		if pos >= 0 && pos < c.MaxLen {
			if len(c.DisplayText) != c.MaxLen {
				c.DisplayText = padOrTruncate(c.DisplayText, c.MaxLen)
			}
			c.DisplayText[pos] = ch
		}
		pin.State = Reading
	}
}

func padOrTruncate(text []rune, n int) []rune {
	if len(text) >= n {
		return text[:n]
	}
	padded := make([]rune, n)
	copy(padded, text)
	for i := len(text); i < n; i++ {
		padded[i] = ' '
	}
	return padded
}

func (b *Board) tickBitmapDisplay(c *Component) {
	for i := range c.XBuses {
		pin := &c.XBuses[i]
		if pin.State != ReadComplete {
			pin.State = Reading
			continue
		}
		payload := uint64(pin.Value)
		blue := uint8(payload & 0xFF)
		green := uint8((payload >> 8) & 0xFF)
		red := uint8((payload >> 16) & 0xFF)
		y := int((payload >> 24) & 0xFFFF)
		x := int((payload >> 40) & 0xFFFF)
		if x >= 0 && x < c.BitmapWidth && y >= 0 && y < c.BitmapHeight {
			c.Pixels[y*c.BitmapWidth+x] = Color{R: red, G: green, B: blue}
		}
		pin.State = Reading
	}
}

// pairMemoryBuses pairs up a Memory component's "xp"/"xd" buses by shared
// address suffix (spec §4.6), failing fatally if a pointer pin has zero or
// more than one matching data pin.
func pairMemoryBuses(c *Component) error {
	c.pairs = nil
	for pi := range c.XBuses {
		if !strings.HasPrefix(c.XBuses[pi].Address, "xp") {
			continue
		}
		suffix := c.XBuses[pi].Address[len("xp"):]
		match := -1
		for di := range c.XBuses {
			if strings.HasPrefix(c.XBuses[di].Address, "xd") && c.XBuses[di].Address[len("xd"):] == suffix {
				if match >= 0 {
					return errors.New("memory pointer " + c.XBuses[pi].Address + " has more than one matching data pin")
				}
				match = di
			}
		}
		if match < 0 {
			return errors.New("memory pointer " + c.XBuses[pi].Address + " has no matching data pin")
		}
		c.pairs = append(c.pairs, memoryPair{ptr: pi, data: match})
	}
	return nil
}

func (b *Board) tickMemory(c *Component) error {
	for _, pair := range c.pairs {
		ptr := &c.XBuses[pair.ptr]
		data := &c.XBuses[pair.data]

		p := ptr.Value
		if p < 0 || int(p) >= c.Capacity {
			cause := errors.Errorf("pointer pin %s value %d", ptr.Address, p)
			return errors.Wrap(cause, "memory cell access out of range")
		}
		ptr.State = ReadingWriting
		if data.State == ReadComplete {
			c.Cells[p] = data.Value
		}
		data.State = ReadingWriting
		data.Value = c.Cells[p]
	}
	return nil
}
