//go:build statsview
// +build statsview

// Package statsview is an optional package, built only when the
// "statsview" build constraint is present, that exposes a live runtime
// metrics dashboard backed by github.com/go-echarts/statsview.
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address is where the dashboard listens.
const Address = "localhost:12601"
const url = "/debug/statsview"

// Launch starts the dashboard in a new goroutine.
func Launch(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)
}

// Available reports whether a statsview is available to launch.
func Available() bool {
	return true
}
