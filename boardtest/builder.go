// Package boardtest provides a fluent builder for wiring up test boards,
// the same role hwtest/compare.go plays for the teacher lineage's gate
// circuits: give test files a way to build a fixture and assert on it
// instead of hand-rolling Board/Component/Cable literals in every test.
package boardtest

import (
	"testing"

	"github.com/solderline/breadboard"
)

// Builder accumulates components and cables onto a Board, failing the
// test immediately (via t.Fatalf) the moment any add is rejected — most
// tests want a board that is known-good by construction, not a bool they
// have to check after every call.
type Builder struct {
	t     testing.TB
	board *breadboard.Board
}

// New starts a builder for a fresh w x h board.
func New(t testing.TB, w, h int) *Builder {
	t.Helper()
	return &Builder{t: t, board: breadboard.NewBoard(w, h)}
}

// Place adds c to the board, failing the test if any placement rule is
// violated.
func (b *Builder) Place(c *breadboard.Component) *Builder {
	b.t.Helper()
	if !b.board.AddComponent(c) {
		b.t.Fatalf("boardtest: could not place %s at %v", c.Kind, c.Position)
	}
	return b
}

// Wire adds cable to the board, failing the test if any placement rule is
// violated.
func (b *Builder) Wire(cable breadboard.Cable) *Builder {
	b.t.Helper()
	if !b.board.AddCable(cable) {
		b.t.Fatalf("boardtest: could not wire %s %v-%v", cable.Kind, cable.A, cable.B)
	}
	return b
}

// Solder chains solder wire between each consecutive pair of positions.
func (b *Builder) Solder(path ...breadboard.Position) *Builder {
	b.t.Helper()
	return b.chain(breadboard.Solder, path)
}

// Bridge chains bridge wire between each consecutive pair of positions.
func (b *Builder) Bridge(path ...breadboard.Position) *Builder {
	b.t.Helper()
	return b.chain(breadboard.Bridge, path)
}

func (b *Builder) chain(kind breadboard.CableKind, path []breadboard.Position) *Builder {
	b.t.Helper()
	for i := 1; i < len(path); i++ {
		cable, ok := breadboard.NewCable(path[i-1], path[i], kind)
		if !ok {
			b.t.Fatalf("boardtest: %v and %v are not adjacent", path[i-1], path[i])
		}
		b.Wire(cable)
	}
	return b
}

// Board returns the board built so far, without initialising it.
func (b *Builder) Board() *breadboard.Board { return b.board }

// Initialised returns the board built so far, after a successful
// Initialise call (failing the test otherwise).
func (b *Builder) Initialised() *breadboard.Board {
	b.t.Helper()
	if err := b.board.Initialise(); err != nil {
		b.t.Fatalf("boardtest: initialise: %v", err)
	}
	return b.board
}
