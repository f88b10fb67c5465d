package cpu

import "testing"

// TestRepSep: REP #$30 clears M and X, SEP #$30 sets them back.
func TestRepSep(t *testing.T) {
	s := FlagState{M: true, X: true, E: false}

	s = s.REP(BitM | BitX)
	want := FlagState{M: false, X: false, E: false}
	if s != want {
		t.Fatalf("after REP #$30: got %+v, want %+v", s, want)
	}

	s = s.SEP(BitM | BitX)
	want = FlagState{M: true, X: true, E: false}
	if s != want {
		t.Fatalf("after SEP #$30: got %+v, want %+v", s, want)
	}
}

func TestEmulationForcesMX(t *testing.T) {
	s := FlagState{M: true, X: true, E: true}
	s = s.REP(BitM | BitX)
	if !s.M || !s.X {
		t.Fatalf("REP under emulation mode must leave M/X true, got %+v", s)
	}
}

func TestXCE(t *testing.T) {
	s := Reset() // E: true
	s = s.XCE(false)
	if s.E {
		t.Fatalf("XCE with carry=false should clear E, got %+v", s)
	}
	if !s.M || !s.X {
		t.Fatalf("leaving emulation mode does not itself widen M/X: %+v", s)
	}
}
