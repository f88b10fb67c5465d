package rom

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStripCopierHeader(t *testing.T) {
	raw := make([]byte, copierHeaderSize+1024)
	for i := range raw[copierHeaderSize:] {
		raw[copierHeaderSize+i] = byte(i)
	}
	var flags LoadFlags
	out := stripCopierHeader(raw, &flags)
	if !flags.HadCopierHeader {
		t.Fatalf("expected HadCopierHeader to be set")
	}
	if len(out) != 1024 {
		t.Fatalf("got length %d, want 1024", len(out))
	}
}

func TestStripCopierHeaderAbsentWhenAligned(t *testing.T) {
	raw := make([]byte, 1024*1024)
	var flags LoadFlags
	out := stripCopierHeader(raw, &flags)
	if flags.HadCopierHeader {
		t.Fatalf("did not expect a copier header to be detected")
	}
	if len(out) != len(raw) {
		t.Fatalf("length changed without a copier header present")
	}
}

func TestMatchSplitName(t *testing.T) {
	cases := []struct {
		name    string
		wantNum int
		wantOK  bool
	}{
		{"game.part1.smc", 1, true},
		{"game.2.smc", 2, true},
		{"game_3.smc", 3, true},
		{"game-4.smc", 4, true},
		{"game.smc", 0, false},
	}
	for _, c := range cases {
		n, ok := MatchSplitName(c.name)
		if ok != c.wantOK || (ok && n != c.wantNum) {
			t.Errorf("MatchSplitName(%q) = (%d, %v), want (%d, %v)", c.name, n, ok, c.wantNum, c.wantOK)
		}
	}
}

func TestJoinPartsOrdersByNumber(t *testing.T) {
	parts := []Part{
		{Number: 2, Data: []byte{0xBB}},
		{Number: 1, Data: []byte{0xAA}},
	}
	got := JoinParts(parts)
	want := []byte{0xAA, 0xBB}
	if string(got) != string(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDetectOverdumpTruncatesUniformTrailer(t *testing.T) {
	data := make([]byte, 2048)
	for i := 1024; i < len(data); i++ {
		data[i] = 0xFF
	}
	var flags LoadFlags
	out := detectOverdump(data, 1024, &flags)
	if !flags.WasOverdumped {
		t.Fatalf("expected WasOverdumped to be set")
	}
	if len(out) != 1024 {
		t.Fatalf("got length %d, want 1024", len(out))
	}
}

func TestDetectOverdumpLeavesNonUniformTrailerAlone(t *testing.T) {
	data := make([]byte, 2048)
	for i := 1024; i < len(data); i++ {
		data[i] = byte(i) // not uniform, not a 4-byte repeat
	}
	var flags LoadFlags
	out := detectOverdump(data, 1024, &flags)
	if flags.WasOverdumped {
		t.Fatalf("did not expect overdump detection on structured trailing data")
	}
	if len(out) != len(data) {
		t.Fatalf("data should be unchanged")
	}
}

func TestDeclaredRomSize(t *testing.T) {
	if got := DeclaredRomSize(9); got != 512*1024 {
		t.Fatalf("got %d, want %d", got, 512*1024)
	}
}

func TestReadImageJoinsSplitParts(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, b byte) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{b, b, b}, 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	write("game.part2.smc", 0xBB)
	write("game.part1.smc", 0xAA)

	data, n, err := ReadImage(filepath.Join(dir, "game.part1.smc"))
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d parts joined, want 2", n)
	}
	want := []byte{0xAA, 0xAA, 0xAA, 0xBB, 0xBB, 0xBB}
	if string(data) != string(want) {
		t.Fatalf("got %v, want %v", data, want)
	}
}

func TestReadImageLeavesSingleFileAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.smc")
	if err := os.WriteFile(path, []byte{0x01, 0x02}, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}

	data, n, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d parts joined, want 0", n)
	}
	if string(data) != "\x01\x02" {
		t.Fatalf("got %v, want unchanged file contents", data)
	}
}
