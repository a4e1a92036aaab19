package breadboard_test

import (
	"strings"
	"testing"

	bb "github.com/solderline/breadboard"
	"github.com/solderline/breadboard/boardtest"
)

// Push-button lights an LED (spec §8 scenario 1).
func TestPushButtonLightsLED(t *testing.T) {
	button := bb.NewPressButton(bb.Position{X: 0, Y: 0}, 1, 1, "s", bb.Position{}, bb.Right)
	led := bb.NewLED(bb.Position{X: 1, Y: 0}, 1, 1, "red", "s", bb.Position{}, bb.Left)
	board := boardtest.New(t, 2, 1).
		Place(button).
		Place(led).
		Solder(bb.Position{X: 0, Y: 0}, bb.Position{X: 1, Y: 0}).
		Initialised()

	button.Pressed = true
	if err := board.Tick(1); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if led.LEDValue != 255 {
		t.Errorf("LEDValue = %d, want 255 while pressed", led.LEDValue)
	}

	button.Pressed = false
	if err := board.Tick(1); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if led.LEDValue != 0 {
		t.Errorf("LEDValue = %d, want 0 while released", led.LEDValue)
	}
}

// The connectivity cache is symmetric after Initialise (spec §8 invariants).
func TestConnectivityCacheSymmetric(t *testing.T) {
	button := bb.NewPressButton(bb.Position{X: 0, Y: 0}, 1, 1, "s", bb.Position{}, bb.Right)
	led := bb.NewLED(bb.Position{X: 1, Y: 0}, 1, 1, "red", "s", bb.Position{}, bb.Left)
	board := boardtest.New(t, 2, 1).
		Place(button).
		Place(led).
		Solder(bb.Position{X: 0, Y: 0}, bb.Position{X: 1, Y: 0}).
		Initialised()

	buttonRef := bb.BusRef{Component: 0, Kind: bb.SBus, Index: 0}
	ledRef := bb.BusRef{Component: 1, Kind: bb.SBus, Index: 0}

	found := false
	for _, ref := range board.Peers(buttonRef) {
		if ref == ledRef {
			found = true
		}
	}
	if !found {
		t.Error("led ref missing from button's peers")
	}
	found = false
	for _, ref := range board.Peers(ledRef) {
		if ref == buttonRef {
			found = true
		}
	}
	if !found {
		t.Error("button ref missing from led's peers")
	}
}

// A bridge crosses two parallel solder chains without joining their nets
// (spec §8 scenario 4, "crosses without joining" half).
func TestBridgeCrossesWithoutJoining(t *testing.T) {
	buttonA := bb.NewPressButton(bb.Position{X: 0, Y: 0}, 1, 1, "s", bb.Position{}, bb.Right)
	ledA := bb.NewLED(bb.Position{X: 2, Y: 0}, 1, 1, "red", "s", bb.Position{}, bb.Left)
	buttonB := bb.NewPressButton(bb.Position{X: 0, Y: 1}, 1, 1, "s", bb.Position{}, bb.Right)
	ledB := bb.NewLED(bb.Position{X: 2, Y: 1}, 1, 1, "red", "s", bb.Position{}, bb.Left)

	board := boardtest.New(t, 3, 2).
		Place(buttonA).
		Place(ledA).
		Place(buttonB).
		Place(ledB).
		Solder(bb.Position{X: 0, Y: 0}, bb.Position{X: 1, Y: 0}, bb.Position{X: 2, Y: 0}).
		Solder(bb.Position{X: 0, Y: 1}, bb.Position{X: 1, Y: 1}, bb.Position{X: 2, Y: 1}).
		Bridge(bb.Position{X: 1, Y: 0}, bb.Position{X: 1, Y: 1}).
		Initialised()

	buttonA.Pressed = true
	buttonB.Pressed = false
	if err := board.Tick(1); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if ledA.LEDValue != 255 {
		t.Errorf("LEDA = %d, want 255", ledA.LEDValue)
	}
	if ledB.LEDValue != 0 {
		t.Errorf("LEDB = %d, want 0 (net crossed by a lone bridge stays isolated)", ledB.LEDValue)
	}
}

// A net may never mix SBuses and XBuses (spec §4.1 rule 6, §8 invariant).
func TestAddCableRejectsMixedNet(t *testing.T) {
	board := bb.NewBoard(2, 2)
	sOwner := bb.NewLED(bb.Position{X: 0, Y: 0}, 1, 1, "red", "s", bb.Position{}, bb.Right)
	xOwner := bb.NewNumericDisplay(bb.Position{X: 1, Y: 0}, 1, 1, 10, 0, 255,
		[]bb.Bus{{Address: "x", Pos: bb.Position{}, Dir: bb.Left, Kind: bb.XBus}})
	board.AddComponent(sOwner)
	board.AddComponent(xOwner)

	cable, ok := bb.NewCable(bb.Position{X: 0, Y: 0}, bb.Position{X: 1, Y: 0}, bb.Solder)
	if !ok {
		t.Fatal("expected adjacent endpoints")
	}
	if board.AddCable(cable) {
		t.Error("expected AddCable to reject a cable joining an SBus to an XBus")
	}
}

func mcuComponent(pos bb.Position, source string, xbuses []bb.Bus) *bb.Component {
	return bb.NewMicroController(pos, 1, 1, source, []bb.Register{{Address: "acc"}}, nil, xbuses)
}

func accValue(c *bb.Component) int64 {
	for _, r := range c.Registers {
		if r.Address == "acc" {
			return r.Value
		}
	}
	return 0
}

// XBus handshake between two microcontrollers (spec §8 scenario 2).
func TestXBusHandshake(t *testing.T) {
	a := mcuComponent(bb.Position{X: 0, Y: 0}, "mov 42 x0\nstop", []bb.Bus{
		{Address: "x0", Pos: bb.Position{}, Dir: bb.Down, Kind: bb.XBus},
	})
	b := mcuComponent(bb.Position{X: 0, Y: 1}, "mov x0 acc\nstop", []bb.Bus{
		{Address: "x0", Pos: bb.Position{}, Dir: bb.Up, Kind: bb.XBus},
	})
	board := boardtest.New(t, 1, 2).
		Place(a).
		Place(b).
		Solder(bb.Position{X: 0, Y: 0}, bb.Position{X: 0, Y: 1}).
		Initialised()

	for i := 0; i < 10 && b.Line != 1; i++ {
		if err := board.Tick(1); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if a.Line != 1 {
		t.Errorf("A.Line = %d, want 1", a.Line)
	}
	if b.Line != 1 {
		t.Errorf("B.Line = %d, want 1", b.Line)
	}
	if got := accValue(b); got != 42 {
		t.Errorf("B.acc = %d, want 42", got)
	}
}

// Memory store/load (spec §8 scenario 3).
func TestMemoryStoreLoad(t *testing.T) {
	mcu := bb.NewMicroController(bb.Position{X: 0, Y: 0}, 1, 2,
		"mov 0 mp\nmov 7 md\nmov 1 mp\nmov md acc\nstop",
		[]bb.Register{{Address: "acc"}}, nil,
		[]bb.Bus{
			{Address: "mp", Pos: bb.Position{X: 0, Y: 0}, Dir: bb.Right, Kind: bb.XBus},
			{Address: "md", Pos: bb.Position{X: 0, Y: 1}, Dir: bb.Right, Kind: bb.XBus},
		})
	mem := bb.NewMemory(bb.Position{X: 1, Y: 0}, 1, 2, 8, []bb.Bus{
		{Address: "xp0", Pos: bb.Position{X: 0, Y: 0}, Dir: bb.Left, Kind: bb.XBus},
		{Address: "xd0", Pos: bb.Position{X: 0, Y: 1}, Dir: bb.Left, Kind: bb.XBus},
	})
	board := boardtest.New(t, 2, 2).
		Place(mcu).
		Place(mem).
		Solder(bb.Position{X: 0, Y: 0}, bb.Position{X: 1, Y: 0}).
		Solder(bb.Position{X: 0, Y: 1}, bb.Position{X: 1, Y: 1}).
		Initialised()

	for i := 0; i < 40 && mcu.Ops < 4; i++ {
		if err := board.Tick(1); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if mcu.Ops != 4 {
		t.Fatalf("Ops = %d, want 4 instructions completed", mcu.Ops)
	}
	if got := accValue(mcu); got != 0 {
		t.Errorf("acc = %d, want 0 (cell 1 was never written)", got)
	}
	if mem.Cells[0] != 7 {
		t.Errorf("cell 0 = %d, want 7", mem.Cells[0])
	}
}

// Compile errors cite the correct 1-based source line (spec §8 scenario 5).
func TestCompileErrorCitesLine(t *testing.T) {
	board := bb.NewBoard(1, 1)
	mcu := bb.NewMicroController(bb.Position{X: 0, Y: 0}, 1, 1,
		"acc:\nstop", []bb.Register{{Address: "acc"}}, nil, nil)
	board.AddComponent(mcu)

	err := board.Initialise()
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !strings.HasPrefix(err.Error(), "Line 1 - ") {
		t.Errorf("error = %q, want it to cite line 1", err.Error())
	}
}

// Divide by zero is a fatal simulation error (spec §8 scenario 6).
func TestDivideByZeroIsFatal(t *testing.T) {
	mcu := bb.NewMicroController(bb.Position{X: 0, Y: 0}, 1, 1,
		"mov 0 r0\ndiv r0", []bb.Register{{Address: "acc"}, {Address: "r0"}}, nil, nil)
	board := boardtest.New(t, 1, 1).Place(mcu).Initialised()

	if err := board.Tick(1); err != nil {
		t.Fatalf("first tick should succeed: %v", err)
	}
	err := board.Tick(1)
	if err == nil {
		t.Fatal("expected a fatal division-by-zero error")
	}
	if err.Error() != "Line 2 - division by zero" {
		t.Errorf("error = %q, want %q", err.Error(), "Line 2 - division by zero")
	}
	if mcu.Running {
		t.Error("expected Running to be false after a fatal error")
	}
}

// Reset returns every component to its default state (spec §8 invariants).
func TestReset(t *testing.T) {
	mcu := bb.NewMicroController(bb.Position{X: 0, Y: 0}, 1, 1,
		"mov 1 acc\nstop", []bb.Register{{Address: "acc"}}, nil, nil)
	board := boardtest.New(t, 1, 1).Place(mcu).Initialised()

	for i := 0; i < 2; i++ {
		if err := board.Tick(1); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if accValue(mcu) == 0 {
		t.Fatal("expected acc to be non-zero before reset")
	}

	board.Reset()
	if accValue(mcu) != 0 {
		t.Errorf("acc = %d after reset, want 0", accValue(mcu))
	}
	if mcu.Line != 0 || mcu.SleepCycles != 0 || mcu.Ops != 0 || mcu.Err != nil {
		t.Errorf("microcontroller state not fully reset: %+v", mcu)
	}
}
