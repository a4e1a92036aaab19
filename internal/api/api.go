// Package api exposes a minimal read-only HTTP view of a running board's
// status. The interactive editor/canvas itself is out of scope (spec §1
// names it an external collaborator); this is the seam such a collaborator
// would poll.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/cors"

	"github.com/solderline/breadboard"
)

type status struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Components int    `json:"components"`
	Cables     int    `json:"cables"`
	Steps      uint64 `json:"steps"`
	Ops        uint64 `json:"ops"`
}

// Handler returns an http.Handler serving b's status as JSON on /status,
// wrapped with permissive CORS so a browser-based collaborator on a
// different origin can poll it.
func Handler(b *breadboard.Board) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		st := status{
			Width:      b.Width,
			Height:     b.Height,
			Components: len(b.Components()),
			Cables:     len(b.Cables()),
			Steps:      b.Steps(),
			Ops:        b.Ops(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st)
	})
	return cors.Default().Handler(mux)
}
