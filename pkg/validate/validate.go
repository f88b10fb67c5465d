// Package validate cross-checks a decoded listing against an
// independent reference table, producing discrepancies and enhancement
// hints. The validator never mutates analyzed state.
package validate

import (
	"fmt"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/inst"
	"github.com/oisee/snes65816/pkg/listing"
	"github.com/oisee/snes65816/pkg/symbol"
)

// Severity classifies a Discrepancy.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// Discrepancy is one mismatch found between the decoded stream and the
// reference table.
type Discrepancy struct {
	Addr     addr.Logical
	Severity Severity
	Message  string
}

// Enhancement is a proposed comment or context addition. Applying
// enhancements must never remove existing information from a line's
// comment, only append to it.
type Enhancement struct {
	Addr    addr.Logical
	Comment string
}

// Result is the validator's aggregate output.
type Result struct {
	Discrepancies   []Discrepancy
	Enhancements    []Enhancement
	LinesChecked    int
	AccuracyPercent float64
}

// Run validates lines against the Reference table and, if
// enhanceComments is true, also proposes register-name comments.
func Run(lines []listing.Line, enhanceComments bool) Result {
	var res Result
	errorCount := 0

	for _, l := range lines {
		res.LinesChecked++
		ref, ok := Reference[l.Op]
		if !ok {
			continue // opcode not in the (necessarily partial) reference set
		}
		if ref.Mnemonic != l.Info.Mnemonic {
			res.Discrepancies = append(res.Discrepancies, Discrepancy{
				Addr: l.Addr, Severity: Error,
				Message: fmt.Sprintf("opcode %#02x: decoded as %s, reference says %s", l.Op, l.Info.Mnemonic, ref.Mnemonic),
			})
			errorCount++
			continue
		}
		if l.Length() < ref.MinBytes || l.Length() > ref.MaxBytes {
			res.Discrepancies = append(res.Discrepancies, Discrepancy{
				Addr: l.Addr, Severity: Error,
				Message: fmt.Sprintf("%s at %s: decoded length %d outside reference range [%d,%d]", l.Info.Mnemonic, l.Addr, l.Length(), ref.MinBytes, ref.MaxBytes),
			})
			errorCount++
		}

		if dir, ok := registerDirection(l); ok {
			if !directionConsistent(l.Info.Mnemonic, dir) {
				res.Discrepancies = append(res.Discrepancies, Discrepancy{
					Addr: l.Addr, Severity: Warning,
					Message: fmt.Sprintf("%s at %s accesses a register whose documented direction is %s", l.Info.Mnemonic, l.Addr, dir),
				})
			}
		}

		if enhanceComments {
			if name, ok := registerName(l); ok {
				res.Enhancements = append(res.Enhancements, Enhancement{Addr: l.Addr, Comment: name})
			}
		}
	}

	if res.LinesChecked > 0 {
		res.AccuracyPercent = 100.0 * float64(res.LinesChecked-errorCount) / float64(res.LinesChecked)
	}
	return res
}

// registerName returns the canonical name for a hardware register
// operand, if the line's operand resolves to one.
func registerName(l listing.Line) (string, bool) {
	target, ok := operandTarget(l)
	if !ok {
		return "", false
	}
	name, ok := symbol.HardwareRegisters[target.Off()]
	return name, ok
}

func registerDirection(l listing.Line) (string, bool) {
	target, ok := operandTarget(l)
	if !ok {
		return "", false
	}
	dir, ok := registerAccess[target.Off()]
	return dir, ok
}

func directionConsistent(mnemonic, dir string) bool {
	isWrite := mnemonic == "STA" || mnemonic == "STX" || mnemonic == "STY" || mnemonic == "STZ"
	isRead := !isWrite
	switch dir {
	case "W":
		return isWrite
	case "R":
		return isRead
	default:
		return true
	}
}

func operandTarget(l listing.Line) (addr.Logical, bool) {
	switch l.Operand.Kind {
	case inst.OperandAddress:
		switch l.Info.Mode {
		case inst.AbsoluteLong, inst.AbsoluteLongX:
			return addr.Logical(uint32(l.Operand.Value)), true
		default:
			return addr.New(l.Addr.Bank(), uint16(l.Operand.Value)), true
		}
	default:
		return 0, false
	}
}

// AppendComment implements the enhance-comments merge rule: it only
// ever appends, never replaces or removes existing text.
func AppendComment(existing, addition string) string {
	if existing == "" {
		return addition
	}
	if addition == "" {
		return existing
	}
	return existing + "; " + addition
}
