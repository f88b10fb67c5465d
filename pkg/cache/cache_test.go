package cache

import (
	"os"
	"path/filepath"
	"testing"
)

type fakePhaseResult struct {
	FunctionCount int
	Notes         []string
}

func TestPutGetRoundTrip(t *testing.T) {
	c := New()
	key := Key{ROMHash: HashROM([]byte("rom bytes")), Phase: "function", Params: "v1"}
	want := fakePhaseResult{FunctionCount: 3, Notes: []string{"a", "b"}}

	if err := c.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got fakePhaseResult
	ok, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if got.FunctionCount != want.FunctionCount || len(got.Notes) != len(want.Notes) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	c := New()
	var out fakePhaseResult
	ok, err := c.Get(Key{Phase: "missing"}, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected a cache miss")
	}
}

func TestDifferentParamsAreDistinctKeys(t *testing.T) {
	c := New()
	hash := HashROM([]byte("rom bytes"))
	k1 := Key{ROMHash: hash, Phase: "function", Params: "strict"}
	k2 := Key{ROMHash: hash, Phase: "function", Params: "lenient"}

	if err := c.Put(k1, fakePhaseResult{FunctionCount: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out fakePhaseResult
	if ok, _ := c.Get(k2, &out); ok {
		t.Fatalf("expected no hit for a different Params value under the same ROM hash and phase")
	}
}

func TestSaveLoadFileRoundTrip(t *testing.T) {
	c := New()
	key := Key{ROMHash: HashROM([]byte("rom bytes")), Phase: "symbol", Params: ""}
	want := fakePhaseResult{FunctionCount: 7, Notes: []string{"persisted"}}
	if err := c.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	path := filepath.Join(t.TempDir(), "cache.gob")
	if err := c.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	var got fakePhaseResult
	ok, err := loaded.Get(key, &got)
	if err != nil {
		t.Fatalf("Get after load: %v", err)
	}
	if !ok {
		t.Fatalf("expected a hit after reloading from disk")
	}
	if got.FunctionCount != want.FunctionCount {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLoadFromFileMissingPath(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(os.TempDir(), "does-not-exist-snesdis-cache.gob"))
	if err == nil {
		t.Fatalf("expected an error loading a nonexistent cache file")
	}
}
