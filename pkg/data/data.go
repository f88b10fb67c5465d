// Package data runs nine data-structure detector families concurrently
// over an immutable decoded-line stream and merges their findings into
// a single DataStructure map. The merge is deterministic regardless of
// detector completion order: highest confidence wins, ties break by the
// fixed declaration order of the families.
package data

import (
	"sync"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/inst"
	"github.com/oisee/snes65816/pkg/listing"
)

// Kind classifies a detected DataStructure.
type Kind int

const (
	PointerTable Kind = iota
	JumpTable
	StringTable
	GraphicsData
	TileData
	SpriteData
	MusicData
	LevelData
	PaletteData
	MapData
)

// DataStructure is one detector's finding.
type DataStructure struct {
	Address    addr.Logical
	Kind       Kind
	Size       int
	Entries    int
	Confidence float64
	FormatHint string
}

// declarationOrder gives each detector family's tie-break rank; on
// equal confidence the lower rank wins.
var declarationOrder = map[string]int{
	"pointer_table": 0,
	"jump_table":    1,
	"graphics_blob": 2,
	"music_blob":    3,
	"string_blob":   4,
	"palette":       5,
	"tile":          6,
	"sprite":        7,
	"level":         8,
}

// detectorFunc is one detector family's entry point: it scans lines and
// returns every DataStructure it found; Run tags each finding with the
// family name for tie-breaking.
type detectorFunc func(lines []listing.Line) []DataStructure

var detectors = map[string]detectorFunc{
	"pointer_table": detectPointerTable,
	"jump_table":    detectJumpTable,
	"graphics_blob": detectGraphicsBlob,
	"music_blob":    detectMusicBlob,
	"string_blob":   detectStringBlob,
	"palette":       detectPalette,
	"tile":          detectTile,
	"sprite":        detectSprite,
	"level":         detectLevel,
}

// finding pairs a DataStructure with the family that produced it, so
// the merge step can apply the declaration-order tie-break.
type finding struct {
	family string
	ds     DataStructure
}

// Pool collects findings from the concurrently-running detector
// families: one goroutine per family, results gathered under a mutex.
type Pool struct {
	mu       sync.Mutex
	findings []finding
}

// Run executes every detector family over lines concurrently and
// returns the deterministically merged DataStructure map, keyed by
// address.
func Run(lines []listing.Line) map[addr.Logical]DataStructure {
	p := &Pool{}

	type task struct {
		family string
		fn     detectorFunc
	}
	ch := make(chan task, len(detectors))
	for family, fn := range detectors {
		ch <- task{family: family, fn: fn}
	}
	close(ch)

	var wg sync.WaitGroup
	for i := 0; i < len(detectors); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range ch {
				results := t.fn(lines)
				p.mu.Lock()
				for _, ds := range results {
					p.findings = append(p.findings, finding{family: t.family, ds: ds})
				}
				p.mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return merge(p.findings)
}

// merge applies the "highest confidence wins, ties by declaration order"
// policy deterministically regardless of the order detectors finished in.
func merge(findings []finding) map[addr.Logical]DataStructure {
	best := map[addr.Logical]finding{}
	for _, f := range findings {
		cur, ok := best[f.ds.Address]
		if !ok || wins(f, cur) {
			best[f.ds.Address] = f
		}
	}
	out := make(map[addr.Logical]DataStructure, len(best))
	for a, f := range best {
		out[a] = f.ds
	}
	return out
}

func wins(candidate, current finding) bool {
	if candidate.ds.Confidence != current.ds.Confidence {
		return candidate.ds.Confidence > current.ds.Confidence
	}
	return declarationOrder[candidate.family] < declarationOrder[current.family]
}

func targetOf(l listing.Line) (addr.Logical, bool) {
	switch l.Operand.Kind {
	case inst.OperandAddress:
		switch l.Info.Mode {
		case inst.AbsoluteLong, inst.AbsoluteLongX:
			return addr.Logical(uint32(l.Operand.Value)), true
		default:
			return addr.New(l.Addr.Bank(), uint16(l.Operand.Value)), true
		}
	case inst.OperandPointer:
		return addr.Logical(uint32(l.Operand.Value)), true
	default:
		return 0, false
	}
}
