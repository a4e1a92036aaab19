package breadboard

import (
	"strconv"
	"strings"

	"github.com/solderline/breadboard/internal/lex"
)

// read resolves a single instruction operand (spec §4.8). It returns
// (value, true, nil) when the value is available this tick, (0, false, nil)
// when the controller must stall (an XBus handshake is still in progress),
// or a non-nil *SimError when the operand cannot be resolved at all.
func (b *Board) read(c *Component, arg string, sourceLine int) (int64, bool, error) {
	if idx, ok := c.registerIndex(arg); ok {
		return c.Registers[idx].Value, true, nil
	}

	if bus, ok := c.Bus(arg); ok {
		if bus.Kind == SBus {
			return b.maxSignal(c, bus), true, nil
		}
		switch bus.State {
		case Idle:
			bus.State = Reading
			return 0, false, nil
		case ReadComplete:
			v := bus.Value
			bus.State = Idle
			return v, true, nil
		default:
			return 0, false, nil
		}
	}

	if arg == "%" {
		return int64(c.Line), true, nil
	}

	if idx, ok := c.Labels[arg]; ok {
		return int64(idx), true, nil
	}

	// 'c' style character literal, same three-rune shape the scanner's
	// lexChar produces.
	if len(arg) == 3 && arg[0] == '\'' {
		item := lex.New(arg).Lex()
		if item.Type == lex.Char && len(item.Value) == 3 {
			return int64(item.Value[1]), true, nil
		}
	}

	if len(arg) > 1 {
		base := baseSuffix(arg[len(arg)-1])
		if base != 0 {
			digits := strings.ReplaceAll(arg[:len(arg)-1], "_", "")
			if v, err := strconv.ParseInt(digits, base, 64); err == nil {
				return v, true, nil
			}
		}
	}

	stripped := strings.ReplaceAll(arg, "_", "")
	v, err := strconv.ParseInt(stripped, 10, 64)
	if err == nil {
		return v, true, nil
	}

	return 0, false, simErrWrap(sourceLine, err, "failed to convert "+arg+" to value")
}

func baseSuffix(c byte) int {
	switch c {
	case 'b':
		return 2
	case 'o':
		return 8
	case 'd':
		return 10
	case 'x':
		return 16
	default:
		return 0
	}
}

// write implements the mov destination rules (spec §4.10).
func (b *Board) write(c *Component, dst string, value int64) (stepOutcome, error) {
	if idx, ok := c.registerIndex(dst); ok {
		c.Registers[idx].Value = value
		return outcomeAdvance, nil
	}
	if bus, ok := c.Bus(dst); ok {
		if bus.Kind == SBus {
			bus.Value = clampSignal(value)
			return outcomeAdvance, nil
		}
		switch bus.State {
		case Idle:
			bus.Value = value
			bus.State = Writing
			return outcomeStall, nil
		case WriteComplete:
			bus.State = Idle
			return outcomeAdvance, nil
		default:
			return outcomeStall, nil
		}
	}
	return outcomeFatal, simErr(c.SourceLines[c.Line], "failed to convert "+dst+" to value")
}
