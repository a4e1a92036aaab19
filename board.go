package breadboard

import (
	"io"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// BusRef identifies a single bus as an index pair into a Board's component
// table, never as a raw pointer — the connectivity cache is the only place
// peers are referenced from outside their owning component, and it is kept
// as indices so no cyclic ownership structure can arise (spec §9).
type BusRef struct {
	Component int
	Kind      BusKind
	Index     int
}

// Board owns every component and cable placed on a fixed-size grid, and
// drives the tick scheduler.
type Board struct {
	Width, Height int

	components []*Component
	Solders    []Cable
	Bridges    []Cable

	cache       map[BusRef][]BusRef
	busOrder    []BusRef
	initialised bool
	steps       uint64

	// Trace, if non-nil, receives one line per executed microcontroller
	// instruction and per XBus handshake. Nil by default; a debugging
	// seam, not a simulation dependency (SPEC_FULL.md §A).
	Trace io.Writer
}

// NewBoard returns an empty board of the given fixed size.
func NewBoard(w, h int) *Board {
	return &Board{Width: w, Height: h, cache: make(map[BusRef][]BusRef)}
}

// Components returns every placed component, in placement order.
func (b *Board) Components() []*Component { return b.components }

// Microcontrollers returns every placed microcontroller, in placement
// order.
func (b *Board) Microcontrollers() []*Component {
	var out []*Component
	for _, c := range b.components {
		if c.Kind == KindMicroController {
			out = append(out, c)
		}
	}
	return out
}

// Cables returns every cable on the board, bridges then solders (Board's
// own storage order).
func (b *Board) Cables() []Cable { return b.allCables() }

// Ops returns the total number of instructions executed across every
// microcontroller (spec §6).
func (b *Board) Ops() uint64 {
	var total uint64
	for _, c := range b.components {
		if c.Kind == KindMicroController {
			total += c.Ops
		}
	}
	return total
}

// Steps returns how many times Tick has completed successfully.
func (b *Board) Steps() uint64 { return b.steps }

func rectsOverlap(min1, max1, min2, max2 Position) bool {
	return min1.X <= max2.X && max1.X >= min2.X && min1.Y <= max2.Y && max1.Y >= min2.Y
}

// AddComponent places c on the board if every placement rule (spec §3) is
// satisfied, returning false (board unchanged) otherwise.
func (b *Board) AddComponent(c *Component) bool {
	if c.Width < 1 || c.Height < 1 {
		return false
	}
	min, max := c.Bounds()
	if !min.InBounds(b.Width, b.Height) || !max.InBounds(b.Width, b.Height) {
		return false
	}
	for _, other := range b.components {
		omin, omax := other.Bounds()
		if rectsOverlap(min, max, omin, omax) {
			return false
		}
	}
	// Any cable already attached to one of this component's cells must
	// land on one of its bus ports, aligned toward the cable's other
	// endpoint.
	for _, cable := range b.allCables() {
		for _, p := range [2]Position{cable.A, cable.B} {
			if !c.Contains(p) {
				continue
			}
			if !componentAcceptsEndpoint(c, p, cable.other(p)) {
				return false
			}
		}
	}
	b.components = append(b.components, c)
	b.initialised = false
	return true
}

// componentAcceptsEndpoint reports whether component c has a bus port at
// position p facing towards other.
func componentAcceptsEndpoint(c *Component, p, other Position) bool {
	for _, bus := range c.AllBuses() {
		if bus.Port(c.Position) == p && p.Neighbor(bus.Dir) == other {
			return true
		}
	}
	return false
}

// RemoveComponent removes c from the board, returning false if c was not
// present.
func (b *Board) RemoveComponent(c *Component) bool {
	for i, other := range b.components {
		if other == c {
			b.components = append(b.components[:i], b.components[i+1:]...)
			b.initialised = false
			return true
		}
	}
	return false
}

// AddCable places cable between two adjacent grid cells if every placement
// rule (spec §4.1) is satisfied, returning false (board unchanged)
// otherwise.
func (b *Board) AddCable(cable Cable) bool {
	if !cable.A.InBounds(b.Width, b.Height) || !cable.B.InBounds(b.Width, b.Height) {
		return false
	}
	if !cable.A.Adjacent(cable.B) {
		return false
	}
	for _, existing := range b.allCables() {
		if existing.sameEndpoints(cable) {
			return false
		}
	}
	for _, k := range b.components {
		insideCount := 0
		for _, p := range [2]Position{cable.A, cable.B} {
			if !k.Contains(p) {
				continue
			}
			insideCount++
			if insideCount > 1 {
				return false
			}
			if !componentAcceptsEndpoint(k, p, cable.other(p)) {
				return false
			}
		}
	}
	if cable.Kind == Bridge {
		for _, p := range [2]Position{cable.A, cable.B} {
			if _, inside := b.insideAnyComponent(p); inside {
				return false
			}
		}
	}

	b.appendCable(cable)
	if !b.netIsHomogeneous(cable) {
		b.removeCableValue(cable)
		return false
	}
	b.initialised = false
	return true
}

func (b *Board) appendCable(cable Cable) {
	if cable.Kind == Bridge {
		b.Bridges = append(b.Bridges, cable)
	} else {
		b.Solders = append(b.Solders, cable)
	}
}

func (b *Board) removeCableValue(cable Cable) {
	if cable.Kind == Bridge {
		for i, c := range b.Bridges {
			if c == cable {
				b.Bridges = append(b.Bridges[:i], b.Bridges[i+1:]...)
				return
			}
		}
	}
	for i, c := range b.Solders {
		if c == cable {
			b.Solders = append(b.Solders[:i], b.Solders[i+1:]...)
			return
		}
	}
}

// netIsHomogeneous reports whether the net that cable belongs to connects
// only SBuses or only XBuses, never both (spec §4.1 rule 6).
func (b *Board) netIsHomogeneous(cable Cable) bool {
	net := cableSet(b.netFrom(cable))
	sawS, sawX := false, false
	for _, comp := range b.components {
		for _, bus := range comp.AllBuses() {
			wired, ok := b.wiredCable(comp, bus)
			if !ok || !net[wired] {
				continue
			}
			if bus.Kind == SBus {
				sawS = true
			} else {
				sawX = true
			}
		}
	}
	return !(sawS && sawX)
}

// RemoveCable removes cable from the board, returning false if it was not
// present.
func (b *Board) RemoveCable(cable Cable) bool {
	for _, existing := range b.allCables() {
		if existing.sameEndpoints(cable) {
			b.removeCableValue(existing)
			b.initialised = false
			return true
		}
	}
	return false
}

// Initialise (re)compiles every microcontroller, validates address
// uniqueness, and (re)builds the connectivity cache. It must be called
// before Tick, and again after any placement change.
func (b *Board) Initialise() error {
	for _, c := range b.components {
		switch c.Kind {
		case KindMicroController:
			if err := compileMCU(c); err != nil {
				return err
			}
		case KindMemory:
			if err := pairMemoryBuses(c); err != nil {
				return err
			}
		}
	}
	b.buildCache()
	b.initialised = true
	return nil
}

// buildCache populates the connectivity cache. Net resolution per distinct
// wired cable is independent of every other, so — the same way
// hwsim.NewCircuit partitions its Updaters across worker goroutines
// coordinated by a sync.WaitGroup — this partitions the set of wired
// cables across GOMAXPROCS goroutines. Board.Tick is never parallelized
// this way: that loop must stay deterministic and single-threaded per
// spec §5, so the concurrency here is confined to this one-time,
// order-independent build step.
func (b *Board) buildCache() {
	refs, wired := b.collectBusRefs()

	distinct := make([]Cable, 0, len(wired))
	seen := make(map[Cable]bool)
	for _, c := range wired {
		if c != (Cable{}) && !seen[c] {
			seen[c] = true
			distinct = append(distinct, c)
		}
	}

	nets := make([]map[Cable]bool, len(distinct))
	workers := runtime.GOMAXPROCS(-1)
	if workers < 1 {
		workers = 1
	}
	if workers > len(distinct) {
		workers = len(distinct)
	}
	if workers > 0 {
		var wg sync.WaitGroup
		chunk := (len(distinct) + workers - 1) / workers
		for start := 0; start < len(distinct); start += chunk {
			end := start + chunk
			if end > len(distinct) {
				end = len(distinct)
			}
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				for i := start; i < end; i++ {
					nets[i] = cableSet(b.netFrom(distinct[i]))
				}
			}(start, end)
		}
		wg.Wait()
	}

	netByCable := make(map[Cable]map[Cable]bool, len(distinct))
	for i, c := range distinct {
		netByCable[c] = nets[i]
	}

	cache := make(map[BusRef][]BusRef, len(refs))
	for i, ref := range refs {
		c := wired[i]
		if c == (Cable{}) {
			cache[ref] = nil
			continue
		}
		net := netByCable[c]
		var peers []BusRef
		for j, other := range refs {
			if j == i {
				continue
			}
			oc := wired[j]
			if oc != (Cable{}) && net[oc] {
				peers = append(peers, other)
			}
		}
		cache[ref] = peers
	}
	b.cache = cache
	b.busOrder = refs
}

// collectBusRefs returns, in component/bus declaration order, every bus's
// BusRef alongside the cable it is wired to (the zero Cable if
// unconnected).
func (b *Board) collectBusRefs() (refs []BusRef, wired []Cable) {
	for ci, comp := range b.components {
		for i := range comp.SBuses {
			ref := BusRef{Component: ci, Kind: SBus, Index: i}
			c, ok := b.wiredCable(comp, &comp.SBuses[i])
			refs = append(refs, ref)
			if ok {
				wired = append(wired, c)
			} else {
				wired = append(wired, Cable{})
			}
		}
		for i := range comp.XBuses {
			ref := BusRef{Component: ci, Kind: XBus, Index: i}
			c, ok := b.wiredCable(comp, &comp.XBuses[i])
			refs = append(refs, ref)
			if ok {
				wired = append(wired, c)
			} else {
				wired = append(wired, Cable{})
			}
		}
	}
	return refs, wired
}

// Bus resolves ref to its owning component and bus.
func (b *Board) Bus(ref BusRef) (*Component, *Bus) {
	comp := b.components[ref.Component]
	if ref.Kind == SBus {
		return comp, &comp.SBuses[ref.Index]
	}
	return comp, &comp.XBuses[ref.Index]
}

// Peers returns the peer buses wired to ref by the connectivity cache.
func (b *Board) Peers(ref BusRef) []BusRef { return b.cache[ref] }

// refOf returns the BusRef for bus within comp, or false if bus does not
// belong to comp.
func (b *Board) refOf(comp *Component, bus *Bus) (BusRef, bool) {
	ci := -1
	for i, c := range b.components {
		if c == comp {
			ci = i
			break
		}
	}
	if ci < 0 {
		return BusRef{}, false
	}
	for i := range comp.SBuses {
		if &comp.SBuses[i] == bus {
			return BusRef{Component: ci, Kind: SBus, Index: i}, true
		}
	}
	for i := range comp.XBuses {
		if &comp.XBuses[i] == bus {
			return BusRef{Component: ci, Kind: XBus, Index: i}, true
		}
	}
	return BusRef{}, false
}

// maxSignal returns the maximum raw signal value on bus's net, bus's own
// value included (spec §4.4).
func (b *Board) maxSignal(comp *Component, bus *Bus) int64 {
	max := bus.Value
	ref, ok := b.refOf(comp, bus)
	if !ok {
		return max
	}
	for _, peer := range b.cache[ref] {
		_, pb := b.Bus(peer)
		if pb.Value > max {
			max = pb.Value
		}
	}
	return max
}

// Reset returns every component to its default state (spec §3, §5).
func (b *Board) Reset() {
	for _, c := range b.components {
		for _, bus := range c.AllBuses() {
			bus.reset()
		}
		switch c.Kind {
		case KindPressButton, KindToggleButton:
			c.Pressed = false
		case KindLED:
			c.LEDValue = 0
		case KindNumericDisplay:
			c.NumericText = ""
		case KindTextDisplay:
			c.DisplayText = blankText(c.MaxLen)
		case KindBitmapDisplay:
			for i := range c.Pixels {
				c.Pixels[i] = c.InactiveColor
			}
		case KindMemory:
			for i := range c.Cells {
				c.Cells[i] = 0
			}
		case KindMicroController:
			for i := range c.Registers {
				c.Registers[i].Value = 0
			}
			c.Line = 0
			c.SleepCycles = 0
			c.Ops = 0
			c.Err = nil
			c.Running = len(c.Compiled) > 0
		}
	}
	b.steps = 0
}

// Tick advances every component by one simulation step, then runs the
// XBus delivery sweep (spec §5). dt is accepted for interface parity with
// a real-time framing collaborator; the deterministic core does not
// interpret its magnitude.
func (b *Board) Tick(dt float64) error {
	if !b.initialised {
		return errors.New("board not initialised")
	}
	for _, c := range b.components {
		if err := b.tickComponent(c); err != nil {
			return err
		}
	}
	b.deliverXBus()
	b.steps++
	return nil
}

func (b *Board) tickComponent(c *Component) error {
	switch c.Kind {
	case KindMicroController:
		return b.stepMCU(c)
	default:
		return b.tickPeripheral(c)
	}
}
