package breadboard

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// WriteGraph dumps b's internal structure — components, cables, and the
// connectivity cache — as Graphviz dot. The connectivity cache is modeled
// as index pairs rather than pointers (spec §9), which makes it opaque to
// read directly; this gives a debugging seam onto the same structure a
// debugger would otherwise have to walk by hand.
func (b *Board) WriteGraph(w io.Writer) {
	memviz.Map(w, b)
}
