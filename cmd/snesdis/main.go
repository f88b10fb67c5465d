// Command snesdis is the CLI front-end over the analysis core: it reads
// a ROM file, runs the pipeline, and prints the requested view (a raw
// listing, the discovered symbol table, or a validation report). One
// cobra.Command per operation; all the real work lives in pkg/analysis.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/analysis"
	"github.com/oisee/snes65816/pkg/cpu"
	"github.com/oisee/snes65816/pkg/rom"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "snesdis",
		Short: "Static disassembler and analyzer for 65816 SNES ROM images",
	}

	var (
		startAddr string
		endAddr   string
		initialM  bool
		initialX  bool
		initialE  bool
		enhance   bool
	)

	disasmCmd := &cobra.Command{
		Use:   "disasm [rom]",
		Short: "Print the decoded instruction listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runAnalysis(args[0], false, false, initialM, initialX, initialE)
			if err != nil {
				return err
			}
			start, hasStart, err := parseHexAddr(startAddr)
			if err != nil {
				return err
			}
			end, hasEnd, err := parseHexAddr(endAddr)
			if err != nil {
				return err
			}
			printListing(res, start, hasStart, end, hasEnd)
			return nil
		},
	}
	disasmCmd.Flags().StringVar(&startAddr, "start", "", "logical start address, hex (e.g. 8000)")
	disasmCmd.Flags().StringVar(&endAddr, "end", "", "logical end address, hex (exclusive)")
	disasmCmd.Flags().BoolVar(&initialM, "m8", true, "initial M flag (8-bit accumulator)")
	disasmCmd.Flags().BoolVar(&initialX, "x8", true, "initial X flag (8-bit index registers)")
	disasmCmd.Flags().BoolVar(&initialE, "emulation", true, "initial E flag (emulation mode)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [rom]",
		Short: "Run the full pipeline and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runAnalysis(args[0], true, enhance, initialM, initialX, initialE)
			if err != nil {
				return err
			}
			printSummary(res)
			return nil
		},
	}
	analyzeCmd.Flags().BoolVar(&enhance, "enhance-comments", false, "propose register-name comments")
	analyzeCmd.Flags().BoolVar(&initialM, "m8", true, "initial M flag (8-bit accumulator)")
	analyzeCmd.Flags().BoolVar(&initialX, "x8", true, "initial X flag (8-bit index registers)")
	analyzeCmd.Flags().BoolVar(&initialE, "emulation", true, "initial E flag (emulation mode)")

	var symbolFormat string
	symbolsCmd := &cobra.Command{
		Use:   "symbols [rom]",
		Short: "Print the synthesized symbol table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runAnalysis(args[0], false, false, initialM, initialX, initialE)
			if err != nil {
				return err
			}
			return printSymbols(res, symbolFormat)
		},
	}
	symbolsCmd.Flags().StringVar(&symbolFormat, "format", "sym", "output format: sym, json, or csv")
	symbolsCmd.Flags().BoolVar(&initialM, "m8", true, "initial M flag (8-bit accumulator)")
	symbolsCmd.Flags().BoolVar(&initialX, "x8", true, "initial X flag (8-bit index registers)")
	symbolsCmd.Flags().BoolVar(&initialE, "emulation", true, "initial E flag (emulation mode)")

	validateCmd := &cobra.Command{
		Use:   "validate [rom]",
		Short: "Cross-check the listing against the reference table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runAnalysis(args[0], true, enhance, initialM, initialX, initialE)
			if err != nil {
				return err
			}
			printValidation(res)
			return nil
		},
	}
	validateCmd.Flags().BoolVar(&enhance, "enhance-comments", false, "propose register-name comments")
	validateCmd.Flags().BoolVar(&initialM, "m8", true, "initial M flag (8-bit accumulator)")
	validateCmd.Flags().BoolVar(&initialX, "x8", true, "initial X flag (8-bit index registers)")
	validateCmd.Flags().BoolVar(&initialE, "emulation", true, "initial E flag (emulation mode)")

	rootCmd.AddCommand(disasmCmd, analyzeCmd, symbolsCmd, validateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalysis(path string, validate, enhance, m, x, e bool) (*analysis.Result, error) {
	raw, partsJoined, err := rom.ReadImage(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if partsJoined > 0 {
		fmt.Fprintf(os.Stderr, "joined %d split-dump parts for %s\n", partsJoined, path)
	}

	cfg := analysis.Config{
		EnableValidation: validate,
		EnhanceComments:  enhance,
		InitialFlags:     cpu.FlagState{M: m, X: x, E: e},
		PartsJoined:      partsJoined,
	}
	return analysis.Run(context.Background(), raw, cfg)
}

// parseHexAddr parses a bare-hex logical address (e.g. "8000" or
// "00:8000"), returning ok=false when s is empty (meaning "unbounded").
func parseHexAddr(s string) (addr.Logical, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(strings.Replace(s, ":", "", 1), 16, 32)
	if err != nil {
		return 0, false, fmt.Errorf("invalid hex address %q: %w", s, err)
	}
	return addr.Logical(v), true, nil
}

func printListing(res *analysis.Result, start addr.Logical, hasStart bool, end addr.Logical, hasEnd bool) {
	for _, l := range res.Lines {
		if hasStart && l.Addr < start {
			continue
		}
		if hasEnd && l.Addr >= end {
			continue
		}
		fmt.Println(l.String())
	}
}

func printSummary(res *analysis.Result) {
	fmt.Printf("cartridge: %s  rom=%dKB sram=%dKB speed=%s\n",
		res.Cartridge.Family, res.Cartridge.RomSize/1024, res.Cartridge.SramSize/1024, res.Cartridge.Speed)
	if res.AmbiguousHeader {
		fmt.Println("warning: header selection was weak or ambiguous (best score 0, or top two candidates within 5 points)")
	}
	for _, w := range res.LoadFlags.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("lines decoded: %d\n", len(res.Lines))
	fmt.Printf("basic blocks: %d\n", res.CFG.Len())
	fmt.Printf("functions discovered: %d\n", len(res.Functions))
	fmt.Printf("data structures: %d\n", len(res.DataStructures))
	fmt.Printf("symbols: %d\n", len(res.Symbols.All()))
}

// printSymbols serializes the synthesized table: one record per symbol
// with address, name, kind, optional size, and optional description, in
// the format selected by --format.
func printSymbols(res *analysis.Result, format string) error {
	syms := res.Symbols.All()
	sort.Slice(syms, func(i, j int) bool { return syms[i].Address < syms[j].Address })

	switch format {
	case "sym":
		for _, s := range syms {
			fmt.Printf("%s %-24s %-9s conf=%.2f\n", s.Address, s.Name, s.Kind, s.Confidence)
		}
		return nil

	case "csv":
		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		if err := w.Write([]string{"address", "name", "kind", "size", "description"}); err != nil {
			return err
		}
		for _, s := range syms {
			size := ""
			if s.HasSize {
				size = strconv.Itoa(s.Size)
			}
			if err := w.Write([]string{fmt.Sprintf("%06X", uint32(s.Address)), s.Name, s.Kind.String(), size, s.Description}); err != nil {
				return err
			}
		}
		return nil

	case "json":
		type record struct {
			Address     string  `json:"address"`
			Name        string  `json:"name"`
			Kind        string  `json:"kind"`
			Size        int     `json:"size,omitempty"`
			Description string  `json:"description,omitempty"`
			Confidence  float64 `json:"confidence"`
		}
		out := make([]record, 0, len(syms))
		for _, s := range syms {
			out = append(out, record{
				Address:     fmt.Sprintf("%06X", uint32(s.Address)),
				Name:        s.Name,
				Kind:        s.Kind.String(),
				Size:        s.Size,
				Description: s.Description,
				Confidence:  s.Confidence,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	default:
		return fmt.Errorf("unknown --format %q: use sym, json, or csv", format)
	}
}

func printValidation(res *analysis.Result) {
	v := res.Validation
	fmt.Printf("checked %d lines, accuracy %.1f%%\n", v.LinesChecked, v.AccuracyPercent)
	for _, d := range v.Discrepancies {
		fmt.Printf("  [%s] %s: %s\n", d.Severity, d.Addr, d.Message)
	}
	if len(v.Enhancements) > 0 {
		fmt.Printf("%d enhancement(s) proposed\n", len(v.Enhancements))
	}
}
