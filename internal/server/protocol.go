package server

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	collect "github.com/skovsen/D2D_CollectLogic"
)

// Request asks for one diagram. Either Seed or Input names the scenario;
// an empty Output only draws the scenario. A nil Turn means the last turn.
type Request struct {
	Seed   *uint64 `json:"seed,omitempty"`
	Input  string  `json:"input,omitempty"`
	Output string  `json:"output,omitempty"`
	Turn   *int    `json:"turn,omitempty"`
}

// Response carries the scenario text back when it was generated from a seed.
// Error is set instead of the rest when the request could not be served.
type Response struct {
	Input   string `json:"input,omitempty"`
	MaxTurn int    `json:"max_turn"`
	Turn    int    `json:"turn"`
	Score   int64  `json:"score"`
	Err     string `json:"err,omitempty"`
	SVG     string `json:"svg,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Schema returns the JSON schema of both message types.
func Schema() ([]byte, error) {
	doc := map[string]*jsonschema.Schema{
		"request":  jsonschema.Reflect(&Request{}),
		"response": jsonschema.Reflect(&Response{}),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

func (s *Server) handle(req Request) Response {
	var (
		scenario collect.Scenario
		resp     Response
		err      error
	)
	switch {
	case req.Seed != nil:
		scenario, err = s.generator.Generate(*req.Seed)
		resp.Input = scenario.String()
	case req.Input != "":
		scenario, err = collect.ParseScenario(req.Input)
	default:
		err = fmt.Errorf("request needs a seed or an input")
	}
	if err != nil {
		return Response{Error: err.Error()}
	}

	if req.Output == "" {
		resp.SVG = collect.RenderSVG(scenario.Garbage, collect.Frame{}, s.evaluator.Canvas)
		return resp
	}
	path, err := collect.ParsePath(req.Output)
	if err != nil {
		return Response{Error: err.Error()}
	}

	resp.MaxTurn = collect.MaxTurn(path)
	turn := resp.MaxTurn
	if req.Turn != nil {
		turn = *req.Turn
	}
	res := s.evaluator.Evaluate(scenario, path, turn)
	resp.Turn = res.Turn
	resp.Score = res.Score
	resp.Err = res.Err
	resp.SVG = res.SVG
	return resp
}
