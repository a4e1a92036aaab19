package breadboard_test

import (
	"testing"

	bb "github.com/solderline/breadboard"
)

func TestNewMemoryClampsCapacity(t *testing.T) {
	c := bb.NewMemory(bb.Position{}, 1, 1, 4096, nil)
	if c.Capacity != 2048 {
		t.Errorf("Capacity = %d, want clamped to 2048", c.Capacity)
	}
	if len(c.Cells) != 2048 {
		t.Errorf("len(Cells) = %d, want 2048", len(c.Cells))
	}

	neg := bb.NewMemory(bb.Position{}, 1, 1, -3, nil)
	if neg.Capacity != 0 {
		t.Errorf("Capacity = %d, want clamped to 0", neg.Capacity)
	}
}

func TestNewBitmapDisplayClampsDimensions(t *testing.T) {
	c := bb.NewBitmapDisplay(bb.Position{}, 1, 1, 4096, 4096, bb.Color{}, bb.Color{R: 1}, nil)
	if c.BitmapWidth != 1024 || c.BitmapHeight != 1024 {
		t.Errorf("bitmap dims = %dx%d, want clamped to 1024x1024", c.BitmapWidth, c.BitmapHeight)
	}
	for i, px := range c.Pixels {
		if px != c.InactiveColor {
			t.Fatalf("pixel %d = %v, want inactive color %v", i, px, c.InactiveColor)
		}
	}
}

func TestComponentBoundsAndContains(t *testing.T) {
	c := bb.NewLED(bb.Position{X: 2, Y: 2}, 3, 2, "red", "s0", bb.Position{}, bb.Left)
	min, max := c.Bounds()
	if min != (bb.Position{X: 2, Y: 2}) || max != (bb.Position{X: 4, Y: 3}) {
		t.Errorf("Bounds() = %v,%v", min, max)
	}
	if !c.Contains(bb.Position{X: 4, Y: 3}) {
		t.Error("expected footprint to contain its bottom-right corner")
	}
	if c.Contains(bb.Position{X: 5, Y: 3}) {
		t.Error("expected footprint not to contain a cell just outside it")
	}
}

func TestComponentBusLookup(t *testing.T) {
	c := bb.NewLED(bb.Position{}, 1, 1, "red", "in", bb.Position{}, bb.Left)
	bus, ok := c.Bus("in")
	if !ok || bus.Kind != bb.SBus {
		t.Fatalf("Bus(%q) = %v, %v", "in", bus, ok)
	}
	if _, ok := c.Bus("nope"); ok {
		t.Error("expected lookup of unknown address to fail")
	}
}
