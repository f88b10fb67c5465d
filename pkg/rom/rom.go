// Package rom normalizes a raw ROM file into a canonical byte image: it
// strips a copier header, joins split dump parts, and undoes interleaving
// or overdumping. It never fails on a malformed image — anomalies are
// recorded in LoadFlags and downgrade downstream confidence instead.
package rom

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/golang/glog"

	"github.com/oisee/snes65816/pkg/header"
)

const copierHeaderSize = 512

// LoadFlags records every anomaly the loader corrected for or gave up
// correcting.
type LoadFlags struct {
	HadCopierHeader bool
	WasInterleaved  bool
	WasOverdumped   bool
	PartsJoined     int
	Warnings        []string
}

func (f *LoadFlags) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	f.Warnings = append(f.Warnings, msg)
	glog.V(1).Infof("rom: %s", msg)
}

// splitPartPattern matches the four documented split-dump filename
// conventions and captures the base name and the part number.
var splitPartPattern = regexp.MustCompile(`^(.*?)[._-](?:part)?(\d+)\.(smc|sfc)$`)

// Part describes one fragment of a split ROM dump discovered on disk.
type Part struct {
	Name   string
	Number int
	Data   []byte
}

// JoinParts orders parts by their captured part number and concatenates
// them. The caller is responsible for having matched filenames against
// splitPartPattern (see MatchSplitName) before constructing Part values.
func JoinParts(parts []Part) []byte {
	sorted := make([]Part, len(parts))
	copy(sorted, parts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	var buf bytes.Buffer
	for _, p := range sorted {
		buf.Write(p.Data)
	}
	return buf.Bytes()
}

// MatchSplitName reports whether name matches a split-dump convention
// and, if so, returns the part number it encodes.
func MatchSplitName(name string) (part int, ok bool) {
	part, _, ok = matchSplit(name)
	return part, ok
}

// matchSplit is the shared regexp match behind MatchSplitName: it also
// returns the captured base name, used by ReadImage to group sibling
// parts belonging to the same dump.
func matchSplit(name string) (part int, base string, ok bool) {
	m := splitPartPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	n := 0
	for _, c := range m[2] {
		n = n*10 + int(c-'0')
	}
	return n, m[1], true
}

// ReadImage reads path and, when its filename matches the split-dump
// naming convention (see MatchSplitName), looks for sibling parts in the
// same directory sharing its base name, joins them in part-number order,
// and returns the joined image along with the number of parts joined.
// When path does not look like a split dump, or fewer than two sibling
// parts are found, ReadImage returns the file's contents unchanged and
// a count of 0.
func ReadImage(path string) ([]byte, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	_, base, ok := matchSplit(filepath.Base(path))
	if !ok {
		return data, 0, nil
	}

	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return data, 0, nil
	}

	var parts []Part
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		n, b, ok := matchSplit(ent.Name())
		if !ok || b != base {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, ent.Name()))
		if err != nil {
			glog.Warningf("rom: reading split-dump part %s: %v", ent.Name(), err)
			continue
		}
		parts = append(parts, Part{Name: ent.Name(), Number: n, Data: raw})
	}
	if len(parts) < 2 {
		return data, 0, nil
	}
	return JoinParts(parts), len(parts), nil
}

// stripCopierHeader removes a 512-byte SMC copier header when the file
// size is congruent to 512 modulo 1024.
func stripCopierHeader(raw []byte, flags *LoadFlags) []byte {
	if len(raw)%1024 == copierHeaderSize && len(raw) > copierHeaderSize {
		flags.HadCopierHeader = true
		flags.warn("stripped %d-byte copier header", copierHeaderSize)
		return raw[copierHeaderSize:]
	}
	return raw
}

// deinterleave swaps even/odd bytes globally, undoing a common
// interleaved-dump transformation.
func deinterleave(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	for i := 0; i+1 < len(data); i += 2 {
		out[i], out[i+1] = data[i+1], data[i]
	}
	return out
}

// detectInterleave compares the best header score of data against its
// de-interleaved form; if de-interleaving raises the score by more than
// 2, the de-interleaved form is returned.
func detectInterleave(data []byte, flags *LoadFlags) []byte {
	if len(data) < 2 || len(data)%2 != 0 {
		return data
	}
	rawScore := bestScore(data)
	flat := deinterleave(data)
	flatScore := bestScore(flat)
	if flatScore > rawScore+2 {
		flags.WasInterleaved = true
		flags.warn("de-interleaved image (score %d -> %d)", rawScore, flatScore)
		return flat
	}
	return data
}

func bestScore(data []byte) int {
	best := 0
	for _, cand := range header.Best(data) {
		if cand.Score > best {
			best = cand.Score
		}
	}
	return best
}

// detectOverdump truncates trailing bytes when the file is larger than
// the header's declared ROM size and the trailing region is uniform
// 0x00, uniform 0xFF, or a repeating 4-byte pattern.
func detectOverdump(data []byte, declaredSize int, flags *LoadFlags) []byte {
	if declaredSize <= 0 || declaredSize >= len(data) {
		return data
	}
	trailing := data[declaredSize:]
	if isUniform(trailing, 0x00) || isUniform(trailing, 0xFF) || isRepeating4(trailing) {
		flags.WasOverdumped = true
		flags.warn("truncated %d overdumped trailing bytes", len(trailing))
		return data[:declaredSize]
	}
	return data
}

func isUniform(b []byte, v byte) bool {
	for _, x := range b {
		if x != v {
			return false
		}
	}
	return true
}

func isRepeating4(b []byte) bool {
	if len(b) < 8 {
		return false
	}
	pattern := b[:4]
	for i := 4; i+4 <= len(b); i += 4 {
		if !bytes.Equal(b[i:i+4], pattern) {
			return false
		}
	}
	return true
}

// DeclaredRomSize computes the ROM size in bytes a header's RomSizeCode
// implies: 1 << code KB.
func DeclaredRomSize(romSizeCode byte) int {
	return (1 << romSizeCode) * 1024
}

// Load normalizes raw into a canonical image plus a LoadFlags record of
// every correction applied. Load never returns an error; BadRomFile is
// reserved for callers that cannot even read the file.
func Load(raw []byte) ([]byte, LoadFlags) {
	var flags LoadFlags
	data := stripCopierHeader(raw, &flags)
	data = detectInterleave(data, &flags)

	best := header.Best(data)
	if len(best) > 0 && best[0].Offset+0x40 <= len(data) {
		h := header.Extract(data, best[0].Offset)
		// A declared size that would cut off the winning header itself is
		// not trusted for overdump truncation.
		if declared := DeclaredRomSize(h.RomSizeCode); declared >= best[0].Offset+0x40 {
			data = detectOverdump(data, declared, &flags)
		}
	}
	return data, flags
}
