package boardtest_test

import (
	"testing"

	bb "github.com/solderline/breadboard"
	"github.com/solderline/breadboard/boardtest"
)

func TestBuilderPlaceAndWire(t *testing.T) {
	button := bb.NewPressButton(bb.Position{X: 0, Y: 0}, 1, 1, "s0", bb.Position{}, bb.Right)
	led := bb.NewLED(bb.Position{X: 1, Y: 0}, 1, 1, "red", "s0", bb.Position{}, bb.Left)

	board := boardtest.New(t, 4, 4).
		Place(button).
		Place(led).
		Solder(bb.Position{X: 0, Y: 0}, bb.Position{X: 1, Y: 0}).
		Initialised()

	if len(board.Components()) != 2 {
		t.Fatalf("len(Components()) = %d, want 2", len(board.Components()))
	}
}
