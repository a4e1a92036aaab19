package persist

import (
	"fmt"
	"io"

	"github.com/solderline/breadboard"
)

// Diff replays r the same way Load does, but instead of collapsing the
// result to a single "non-perfect" bool it names every component or cable
// add that was rejected by a placement rule — a document's declared
// components/cables aren't identified by any stable id, so drops are
// described by their position in the document plus the fields that would
// have identified them on the board.
func Diff(r io.Reader) (*breadboard.Board, []string, error) {
	doc, err := decodeDocument(r)
	if err != nil {
		return nil, nil, err
	}

	board := breadboard.NewBoard(doc.Width, doc.Height)
	var dropped []string

	for i, cd := range doc.Components {
		c, ok := docToComponent(cd)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("component[%d]: unknown kind %q", i, cd.Kind))
			continue
		}
		if !board.AddComponent(c) {
			dropped = append(dropped, fmt.Sprintf("component[%d]: %s at (%d,%d) size %dx%d violates a placement rule",
				i, cd.Kind, cd.X, cd.Y, cd.W, cd.H))
		}
	}

	var bridges, solders []cableDoc
	for _, cd := range doc.Cables {
		if cd.Kind == "Bridge" {
			bridges = append(bridges, cd)
		} else {
			solders = append(solders, cd)
		}
	}
	for _, cd := range append(bridges, solders...) {
		if !replayCable(board, cd) {
			dropped = append(dropped, fmt.Sprintf("cable: %s (%d,%d)-(%d,%d) violates a placement rule",
				cd.Kind, cd.Ax, cd.Ay, cd.Bx, cd.By))
		}
	}

	return board, dropped, nil
}
