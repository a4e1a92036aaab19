package breadboard

import "strconv"

// deliverXBus runs the once-per-tick XBus delivery sweep (spec §4.5),
// after every component has executed its own per-tick step. Writer order,
// and the tie-break among eligible peers, both follow the connectivity
// cache's iteration order (spec §5, §9 Open Question 2) — the order in
// which Board.Initialise discovered buses: component placement order,
// then bus declaration order within each component.
func (b *Board) deliverXBus() {
	for _, ref := range b.busOrder {
		if ref.Kind != XBus {
			continue
		}
		_, writer := b.Bus(ref)
		if !writer.State.isWriter() {
			continue
		}
		for _, peerRef := range b.cache[ref] {
			if peerRef.Kind != XBus {
				continue
			}
			_, peer := b.Bus(peerRef)
			if !peer.State.isReader() {
				continue
			}
			peer.Value = writer.Value
			peer.State = ReadComplete
			writer.State = WriteComplete
			b.traceHandshake(ref, peerRef)
			break
		}
	}
}

func (b *Board) traceHandshake(writer, reader BusRef) {
	if b.Trace == nil {
		return
	}
	b.Trace.Write([]byte("xbus: " + busRefString(writer) + " -> " + busRefString(reader) + "\n"))
}

func busRefString(ref BusRef) string {
	return strconv.Itoa(ref.Component) + "." + ref.Kind.String() + "[" + strconv.Itoa(ref.Index) + "]"
}
