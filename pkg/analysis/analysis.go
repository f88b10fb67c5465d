// Package analysis orchestrates the full pipeline over a raw ROM image:
// header scoring, loading, cartridge modeling, address translation,
// instruction decoding, control-flow recovery, function and
// data-structure discovery, cross-referencing, symbol synthesis, and
// validation, all behind a single Config and a single entry point.
package analysis

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/cache"
	"github.com/oisee/snes65816/pkg/cart"
	"github.com/oisee/snes65816/pkg/cfg"
	"github.com/oisee/snes65816/pkg/cpu"
	"github.com/oisee/snes65816/pkg/data"
	"github.com/oisee/snes65816/pkg/function"
	"github.com/oisee/snes65816/pkg/header"
	"github.com/oisee/snes65816/pkg/listing"
	"github.com/oisee/snes65816/pkg/rom"
	"github.com/oisee/snes65816/pkg/symbol"
	"github.com/oisee/snes65816/pkg/validate"
	"github.com/oisee/snes65816/pkg/xref"
)

// ErrorKind closes the set of ways analysis can fail outright.
// Recoverable anomalies never use it; they surface on the Result as
// warnings instead.
type ErrorKind int

const (
	_ ErrorKind = iota
	BadRomFile
	AmbiguousHeader
	UnmappedAddress
	TruncatedInstruction
	UnknownOpcode
	InvalidSymbolName
)

func (k ErrorKind) String() string {
	switch k {
	case BadRomFile:
		return "BadRomFile"
	case AmbiguousHeader:
		return "AmbiguousHeader"
	case UnmappedAddress:
		return "UnmappedAddress"
	case TruncatedInstruction:
		return "TruncatedInstruction"
	case UnknownOpcode:
		return "UnknownOpcode"
	case InvalidSymbolName:
		return "InvalidSymbolName"
	default:
		return "Unknown"
	}
}

// Error wraps an ErrorKind with context, satisfying the error interface.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// Config is the explicit analysis configuration. Every behavioral knob
// lives here; there is no functional-options surface.
type Config struct {
	EnableValidation bool
	EnhanceComments  bool
	InitialFlags     cpu.FlagState
	UserLabels       map[addr.Logical]string
	UserComments     map[addr.Logical]string
	Cache            *cache.Cache // optional; nil disables caching
	MaxLines         int          // bound on the whole-image sweep; 0 means "use a generous default"
	PartsJoined      int          // number of split-dump parts the caller already joined into raw, if any
}

// Result is everything the pipeline produced for one ROM.
type Result struct {
	HeaderCandidates []header.Candidate
	Header           header.Header
	LoadFlags        rom.LoadFlags
	Cartridge        cart.Cartridge
	Lines            []listing.Line
	CFG              *cfg.Arena
	Functions        map[addr.Logical]*function.Function
	DataStructures   map[addr.Logical]data.DataStructure
	XRefs            *xref.Index
	Symbols          *symbol.Table
	Validation       validate.Result
	AmbiguousHeader  bool
}

// Deadline is a cooperative-cancellation wrapper checked at block
// boundaries (once per batch of decoded lines), rather than per
// instruction, to keep the check's overhead negligible relative to
// decode cost.
type Deadline struct {
	ctx context.Context
}

// NewDeadline wraps ctx for use as an analysis Deadline.
func NewDeadline(ctx context.Context) Deadline { return Deadline{ctx: ctx} }

// Done reports whether the wrapped context has been canceled or its
// deadline exceeded.
func (d Deadline) Done() bool {
	if d.ctx == nil {
		return false
	}
	select {
	case <-d.ctx.Done():
		return true
	default:
		return false
	}
}

const defaultMaxLines = 1 << 20

// Run executes the full pipeline against raw ROM bytes and returns the
// aggregated Result. It reports an *Error (never panics) only for hard
// failures such as an unreadable or headerless image; lesser issues
// surface as Result.LoadFlags.Warnings or Result.AmbiguousHeader
// instead of failing the run outright.
func Run(ctx context.Context, raw []byte, opt Config) (*Result, error) {
	deadline := NewDeadline(ctx)
	if len(raw) == 0 {
		return nil, &Error{Kind: BadRomFile, Msg: "empty ROM image"}
	}

	romHash := cache.HashROM(raw)

	image, loadFlags := rom.Load(raw)
	loadFlags.PartsJoined = opt.PartsJoined

	if len(image) < header.OffsetLoROM+0x40 {
		return nil, &Error{Kind: BadRomFile, Msg: fmt.Sprintf("image of %d bytes is shorter than the smallest header region", len(image))}
	}

	// Weak or contested header evidence is never fatal: the best-scoring
	// candidate is used and the ambiguity is flagged on the Result.
	candidates := header.Best(image)
	best := candidates[0]
	ambiguous := best.Score == 0 ||
		(len(candidates) > 1 && candidates[0].Score-candidates[1].Score <= 5)
	if ambiguous {
		glog.Warningf("header: weak or contested header evidence (best score %d), proceeding with offset %#x",
			best.Score, best.Offset)
	}
	h := header.Extract(image, best.Offset)

	c := cart.New(h)
	translator := addr.NewTranslator(c.Family, uint32(len(image)))

	resetVec := addr.Logical(uint32(h.NativeVecs.RESET))
	maxLines := opt.MaxLines
	if maxLines <= 0 {
		maxLines = defaultMaxLines
	}

	var lines []listing.Line
	cacheParams := fmt.Sprintf("maxLines=%d,M=%v,X=%v,E=%v", maxLines, opt.InitialFlags.M, opt.InitialFlags.X, opt.InitialFlags.E)
	if !tryCache(opt.Cache, romHash, "listing", cacheParams, &lines) {
		lines = sweepWholeImage(image, translator, resetVec, opt.InitialFlags, maxLines, deadline)
		putCache(opt.Cache, romHash, "listing", cacheParams, lines)
	}

	vectors := []addr.Logical{
		resetVec,
		addr.Logical(uint32(h.NativeVecs.NMI)),
		addr.Logical(uint32(h.NativeVecs.IRQ)),
		addr.Logical(uint32(h.NativeVecs.COP)),
		addr.Logical(uint32(h.NativeVecs.BRK)),
		addr.Logical(uint32(h.NativeVecs.ABORT)),
	}
	blockArena := cfg.Split(lines, vectors)
	functions := function.Discover(lines, h.NativeVecs)
	assignBlocksToFunctions(blockArena, functions)

	dataStructs := data.Run(lines)
	xrefs := xref.Build(lines)
	symbols := synthesizeSymbols(functions, dataStructs, xrefs, opt.UserLabels, c)

	var validation validate.Result
	if opt.EnableValidation {
		validation = validate.Run(lines, opt.EnhanceComments)
	}

	return &Result{
		HeaderCandidates: candidates,
		Header:           h,
		LoadFlags:        loadFlags,
		Cartridge:        c,
		Lines:            lines,
		CFG:              blockArena,
		Functions:        functions,
		DataStructures:   dataStructs,
		XRefs:            xrefs,
		Symbols:          symbols,
		Validation:       validation,
		AmbiguousHeader:  ambiguous,
	}, nil
}

// sweepWholeImage runs a linear sweep from start until the first address
// the translator cannot map, the end of the image, maxLines, or the
// Deadline, checking the Deadline periodically rather than on every
// decoded instruction.
func sweepWholeImage(image []byte, t addr.Translator, start addr.Logical, initial cpu.FlagState, maxLines int, deadline Deadline) []listing.Line {
	var lines []listing.Line
	const checkEvery = 256
	listing.Sweep(image, t, start, initial, func(l listing.Line) bool {
		lines = append(lines, l)
		if len(lines)%checkEvery == 0 && deadline.Done() {
			return false
		}
		return len(lines) < maxLines
	})
	return lines
}

// assignBlocksToFunctions records, for each basic block, the nearest
// function whose start address is at or before the block's start — a
// best-effort membership test, since exact function extents are only
// known for functions that end in an observed return.
func assignBlocksToFunctions(arena *cfg.Arena, functions map[addr.Logical]*function.Function) {
	if arena == nil {
		return
	}
	for _, b := range arena.Blocks() {
		var owner *function.Function
		for a, f := range functions {
			if a > b.Start {
				continue
			}
			if f.HasEnd && b.Start >= f.End {
				continue
			}
			if owner == nil || a > owner.Start {
				owner = f
			}
		}
		if owner != nil {
			owner.Blocks[int(b.ID)] = true
		}
	}
}

func synthesizeSymbols(functions map[addr.Logical]*function.Function, structs map[addr.Logical]data.DataStructure, xrefs *xref.Index, userLabels map[addr.Logical]string, cartridge cart.Cartridge) *symbol.Table {
	table := symbol.NewTable()

	for a, name := range userLabels {
		table.Insert(symbol.Symbol{Address: a, Name: name, Kind: symbol.Constant, Confidence: 1.0})
	}
	for a, f := range functions {
		table.Insert(symbol.FunctionSymbol(a, f.IsInterrupt, f.Confidence))
	}
	for a, ds := range structs {
		table.Insert(symbol.DataSymbol(a, dataKindName(ds.Kind)))
	}
	for _, target := range xrefs.Targets() {
		if sym, ok := symbol.RegisterSymbol(target); ok {
			table.Insert(sym)
			continue
		}
		if _, exists := table.Get(target); exists {
			continue
		}
		refs := xrefs.At(target)
		isCall, hasExecute := false, false
		for _, r := range refs {
			if r.Kind == xref.Call {
				isCall = true
			}
			if r.Kind == xref.Jump || r.Kind == xref.Call {
				hasExecute = true
			}
		}
		switch {
		case isCall:
			table.Insert(symbol.CodeSymbol(target, true))
		case hasExecute:
			table.Insert(symbol.CodeSymbol(target, false))
		default:
			// Rule 5 scopes VARIABLE names to the RAM window; a target
			// this xref only reads or writes but that lands in ROM (a
			// lookup table none of the data.Run detectors classified)
			// gets a data_ name instead of a misleading ram_ one.
			if rgn, ok := cartridge.RegionAt(target); ok && rgn.Kind != cart.RegionRAM && rgn.Kind != cart.RegionSRAM {
				table.Insert(symbol.UnclassifiedSymbol(target))
			} else {
				table.Insert(symbol.VariableSymbol(target))
			}
		}
	}
	return table
}

func dataKindName(k data.Kind) string {
	switch k {
	case data.PointerTable:
		return "ptrtab"
	case data.JumpTable:
		return "jumptab"
	case data.StringTable:
		return "string"
	case data.GraphicsData:
		return "gfx"
	case data.TileData:
		return "tile"
	case data.SpriteData:
		return "sprite"
	case data.MusicData:
		return "music"
	case data.LevelData:
		return "level"
	case data.PaletteData:
		return "pal"
	case data.MapData:
		return "map"
	default:
		return "data"
	}
}

func tryCache(c *cache.Cache, romHash [32]byte, phase, params string, out any) bool {
	if c == nil {
		return false
	}
	ok, err := c.Get(cache.Key{ROMHash: romHash, Phase: phase, Params: params}, out)
	if err != nil {
		glog.Warningf("cache: get %s: %v", phase, err)
		return false
	}
	return ok
}

func putCache(c *cache.Cache, romHash [32]byte, phase, params string, value any) {
	if c == nil {
		return
	}
	if err := c.Put(cache.Key{ROMHash: romHash, Phase: phase, Params: params}, value); err != nil {
		glog.Warningf("cache: put %s: %v", phase, err)
	}
}
