package collectlogic

import (
	"errors"
	"reflect"
	"testing"
)

func TestScenarioRoundTrip(t *testing.T) {
	for _, seed := range []uint64{0, 1, 2} {
		s, err := Generate(seed)
		if err != nil {
			t.Fatalf("generate %d: %v", seed, err)
		}
		parsed, err := ParseScenario(s.String())
		if err != nil {
			t.Fatalf("parse %d: %v", seed, err)
		}
		if !reflect.DeepEqual(s, parsed) {
			t.Fatalf("seed %d: round trip changed the scenario", seed)
		}
	}
}

func TestParseScenarioAssignsBlocks(t *testing.T) {
	s, err := ParseScenario("1 1 1\n10 10\n5000 5000\n9000 9000\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Category{Burn, NonBurn, Recycle}
	for i, g := range s.Garbage {
		if g.Category != want[i] {
			t.Fatalf("point %d is %s", i, g.Category)
		}
	}
}

func TestParseScenarioRejects(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrMalformedScenario},
		{"short header", "1 0", ErrMalformedScenario},
		{"negative", "-1 0 0", ErrMalformedScenario},
		{"missing point", "2 0 0\n10 10\n", ErrMalformedScenario},
		{"huge count", "4611686018427387904 0 0\n1 1\n", ErrMalformedScenario},
		{"later count too large", "0 1 9223372036854775807\n1 1\n", ErrMalformedScenario},
		{"not a number", "1 0 0\n10 x\n", ErrMalformedScenario},
		{"trailing", "1 0 0\n10 10\n20 20\n", ErrMalformedScenario},
		{"out of field", "1 0 0\n0 10\n", ErrInvalidScenario},
		{"too close", "2 0 0\n10 10\n500 500\n", ErrInvalidScenario},
		{"duplicate", "1 1 0\n10 10\n10 10\n", ErrInvalidScenario},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseScenario(tc.text); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("0 0 0 0 0 0 0 0\n1 2 3 4 5 6 7 8\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if MaxTurn(p) != 1 {
		t.Fatalf("max turn = %d", MaxTurn(p))
	}
	if p.Frames[1] != (Frame{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("frame 1 = %v", p.Frames[1])
	}
	seg := p.Frames[1].Segment(AgentB)
	if seg.P[0] != 5 || seg.P[1] != 6 || seg.Q[0] != 7 || seg.Q[1] != 8 {
		t.Fatalf("agent B segment = %+v", seg)
	}

	again, err := ParsePath(p.String())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(p, again) {
		t.Fatal("path round trip changed frames")
	}
}

func TestParsePathRejects(t *testing.T) {
	for _, text := range []string{
		"",
		"1 2 3 4 5 6 7",
		"1 2 3 4 5 6 7 8 9",
		"1 2 3 4 5 6 7 x",
	} {
		if _, err := ParsePath(text); !errors.Is(err, ErrMalformedPath) {
			t.Fatalf("ParsePath(%q) = %v", text, err)
		}
	}
}
