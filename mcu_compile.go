package breadboard

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/solderline/breadboard/internal/lex"
)

// compileMCU implements the microcontroller compile step (spec §4.7).
func compileMCU(c *Component) error {
	if err := checkDisjointAddresses(c); err != nil {
		return err
	}

	c.Compiled = nil
	c.Labels = make(map[string]int)
	c.SourceLines = nil

	lines := strings.Split(c.Source, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.Trim(raw, " \t\r")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if label, ok := labelName(trimmed); ok {
			if !isIdent(label) {
				return simErr(lineNo, "invalid label name "+label)
			}
			if _, isReg := c.registerIndex(label); isReg {
				return simErr(lineNo, "label "+label+" conflicts with register address")
			}
			if _, isBus := c.Bus(label); isBus {
				return simErr(lineNo, "label "+label+" conflicts with bus address")
			}
			c.Labels[label] = len(c.Compiled)
			continue
		}
		tokens := lex.Fields(trimmed)
		c.Compiled = append(c.Compiled, tokens)
		c.SourceLines = append(c.SourceLines, lineNo)
	}

	c.accIndex = -1
	for i, r := range c.Registers {
		if r.Address == AccumulatorAddress {
			c.accIndex = i
			break
		}
	}

	c.Running = len(c.Compiled) > 0
	c.Line = 0
	c.SleepCycles = 0
	c.Ops = 0
	c.Err = nil
	return nil
}

// labelName reports whether trimmed is a single token ending in ':', the
// label-declaration form (spec §4.7 step 3).
func labelName(trimmed string) (string, bool) {
	if strings.ContainsAny(trimmed, " \t") {
		return "", false
	}
	if !strings.HasSuffix(trimmed, ":") {
		return "", false
	}
	return strings.TrimSuffix(trimmed, ":"), true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

// checkDisjointAddresses implements spec §4.7 step 1.
func checkDisjointAddresses(c *Component) error {
	seen := make(map[string]bool)
	for _, r := range c.Registers {
		if seen[r.Address] {
			return errors.New("duplicate data-location address " + r.Address)
		}
		seen[r.Address] = true
	}
	for _, bus := range c.AllBuses() {
		if seen[bus.Address] {
			return errors.New("duplicate data-location address " + bus.Address)
		}
		seen[bus.Address] = true
	}
	return nil
}

// registerIndex looks up a register by address.
func (c *Component) registerIndex(address string) (int, bool) {
	for i, r := range c.Registers {
		if r.Address == address {
			return i, true
		}
	}
	return -1, false
}
