package collectlogic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors. Both are wrapped with the offending detail.
var (
	ErrMalformedScenario = errors.New("malformed scenario")
	ErrMalformedPath     = errors.New("malformed path")
)

// ParseScenario reads the "X Y Z" header and X+Y+Z coordinate lines.
// Categories are assigned by block position.
func ParseScenario(text string) (Scenario, error) {
	tokens := strings.Fields(text)
	next := 0
	read := func(what string) (int, error) {
		if next >= len(tokens) {
			return 0, fmt.Errorf("%w: missing %s", ErrMalformedScenario, what)
		}
		v, err := strconv.Atoi(tokens[next])
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrMalformedScenario, what, tokens[next])
		}
		next++
		return v, nil
	}

	// every point needs two tokens, so no count may exceed what is left
	// after the header; checking before summing keeps the arithmetic in range
	available := max(0, len(tokens)-len(Categories)) / 2
	var counts [3]int
	total := 0
	for i, c := range Categories {
		v, err := read(c.String() + " count")
		if err != nil {
			return Scenario{}, err
		}
		if v < 0 {
			return Scenario{}, fmt.Errorf("%w: negative %s count %d", ErrMalformedScenario, c, v)
		}
		if v > available-total {
			return Scenario{}, fmt.Errorf("%w: %s count %d exceeds the %d points present", ErrMalformedScenario, c, v, available)
		}
		counts[i] = v
		total += v
	}

	s := Scenario{Burn: counts[0], NonBurn: counts[1], Recycle: counts[2]}
	s.Garbage = make([]Garbage, 0, total)
	for i := 0; i < total; i++ {
		x, err := read(fmt.Sprintf("x of point %d", i))
		if err != nil {
			return Scenario{}, err
		}
		y, err := read(fmt.Sprintf("y of point %d", i))
		if err != nil {
			return Scenario{}, err
		}
		s.Garbage = append(s.Garbage, Garbage{X: x, Y: y, Category: s.categoryAt(i)})
	}
	if next != len(tokens) {
		return Scenario{}, fmt.Errorf("%w: %d trailing tokens", ErrMalformedScenario, len(tokens)-next)
	}

	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// ParsePath reads a flat list of integers, eight per frame.
func ParsePath(text string) (AgentPath, error) {
	tokens := strings.Fields(text)
	if len(tokens) < len(Frame{}) {
		return AgentPath{}, fmt.Errorf("%w: need at least %d integers, got %d", ErrMalformedPath, len(Frame{}), len(tokens))
	}
	if len(tokens)%len(Frame{}) != 0 {
		return AgentPath{}, fmt.Errorf("%w: %d integers is not a multiple of %d", ErrMalformedPath, len(tokens), len(Frame{}))
	}

	path := AgentPath{Frames: make([]Frame, len(tokens)/len(Frame{}))}
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return AgentPath{}, fmt.Errorf("%w: token %d: %q is not an integer", ErrMalformedPath, i, tok)
		}
		path.Frames[i/len(Frame{})][i%len(Frame{})] = v
	}
	return path, nil
}
