package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/strip-reader-mcp/internal/history"
	"github.com/ironsheep/strip-reader-mcp/internal/imaging"
	"github.com/ironsheep/strip-reader-mcp/internal/report"
	"github.com/ironsheep/strip-reader-mcp/internal/strip"
)

// JSON-RPC error codes returned by tools/call.
const (
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
	codeAnalysisFailed = -32001
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "strip_classify").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// analysisErrorData is the error payload for code -32001.
type analysisErrorData struct {
	Kind    string `json:"kind"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// A photo the pipeline cannot read returns code -32001 with the error kind
// and a retake message. Other tool errors return code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if errors.Is(err, strip.ErrNoStripDetected) || errors.Is(err, strip.ErrNoTemplateMatch) {
			s.log.Info(component, "analysis failed", map[string]interface{}{
				"tool": params.Name, "kind": strip.ErrorKind(err), "error": err.Error(),
			})
			return s.errorResponse(req.ID, codeAnalysisFailed, "Strip analysis failed", analysisErrorData{
				Kind:    strip.ErrorKind(err),
				Error:   err.Error(),
				Message: report.Failure(err).Message,
			})
		}
		s.log.Warning(component, "tool execution failed", map[string]interface{}{
			"tool": params.Name, "error": err.Error(),
		})
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	case "strip_classify":
		return s.handleStripClassify(args)
	case "strip_analyze":
		return s.handleStripAnalyze(args)
	case "strip_locate":
		return s.handleStripLocate(args)
	case "strip_extract_pad":
		return s.handleStripExtractPad(args)
	case "strip_annotate":
		return s.handleStripAnnotate(args)

	case "strip_templates":
		return s.handleStripTemplates()
	case "strip_history":
		return s.handleStripHistory(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pathArgs struct {
	Path string `json:"path"`
}

// loadPath decodes {"path": ...} arguments and loads the image.
func (s *Server) loadPath(args json.RawMessage) (image.Image, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return s.cache.Load(a.Path)
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Strip Handlers ===

type stripClassifyArgs struct {
	Path      string `json:"path"`
	Requester string `json:"requester,omitempty"`
}

type classifyResult struct {
	report.Report
	// Recorded is the history line added for the requester, if any.
	Recorded string `json:"recorded,omitempty"`
}

func (s *Server) handleStripClassify(args json.RawMessage) (interface{}, error) {
	var a stripClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadPath(args)
	if err != nil {
		return nil, err
	}

	res, err := s.analyzer.Analyze(img)
	if err != nil {
		return nil, err
	}

	out := classifyResult{Report: report.Build(res.Match)}
	if a.Requester != "" {
		entry := history.Entry{Time: s.now(), Label: res.Match.Label}
		s.history.Append(a.Requester, entry)
		out.Recorded = entry.String()
	}
	return out, nil
}

type analyzeResult struct {
	*strip.Analysis
	Report report.Report `json:"report"`
}

func (s *Server) handleStripAnalyze(args json.RawMessage) (interface{}, error) {
	img, err := s.loadPath(args)
	if err != nil {
		return nil, err
	}
	res, err := s.analyzer.Analyze(img)
	if err != nil {
		return nil, err
	}
	return analyzeResult{Analysis: res, Report: report.Build(res.Match)}, nil
}

type locateResult struct {
	Box         strip.BoundingBox `json:"bounding_box"`
	ImageWidth  int               `json:"image_width"`
	ImageHeight int               `json:"image_height"`
	Landscape   bool              `json:"landscape"`
}

func (s *Server) handleStripLocate(args json.RawMessage) (interface{}, error) {
	img, err := s.loadPath(args)
	if err != nil {
		return nil, err
	}
	box, err := s.analyzer.Locate(img)
	if err != nil {
		return nil, err
	}
	return locateResult{
		Box:         box,
		ImageWidth:  img.Bounds().Dx(),
		ImageHeight: img.Bounds().Dy(),
		Landscape:   box.Width > box.Height,
	}, nil
}

type stripExtractPadArgs struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

type extractPadResult struct {
	*imaging.RenderResult
	Sample strip.ColorSample `json:"sample"`
}

func (s *Server) handleStripExtractPad(args json.RawMessage) (interface{}, error) {
	var a stripExtractPadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.loadPath(args)
	if err != nil {
		return nil, err
	}

	// The pad is available even when no template is close enough.
	res, err := s.analyzer.Analyze(img)
	if res == nil {
		return nil, err
	}
	rendered, err := imaging.EncodePNG(res.Pad, a.Scale)
	if err != nil {
		return nil, err
	}
	return extractPadResult{RenderResult: rendered, Sample: res.Sample}, nil
}

type annotateResult struct {
	*imaging.RenderResult
	Box   strip.BoundingBox `json:"bounding_box"`
	Label string            `json:"label,omitempty"`
}

func (s *Server) handleStripAnnotate(args json.RawMessage) (interface{}, error) {
	img, err := s.loadPath(args)
	if err != nil {
		return nil, err
	}

	res, err := s.analyzer.Analyze(img)
	if res == nil {
		return nil, err
	}
	outline, label := "", ""
	if err == nil {
		rep := report.Build(res.Match)
		outline, label = rep.Color, rep.Label
	}

	b := img.Bounds()
	thickness := min(b.Dx(), b.Dy()) / 200
	if thickness < 2 {
		thickness = 2
	}
	box := res.Box.Rect()
	rendered, err := imaging.Annotate(img, box, outline, thickness)
	if err != nil {
		return nil, err
	}
	return annotateResult{RenderResult: rendered, Box: res.Box, Label: label}, nil
}

type closestPair struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	DeltaE float64 `json:"delta_e"`
}

type templatesResult struct {
	Calibration strip.Calibration `json:"calibration"`
	// Separation[i][j] is the ΔE2000 between templates i and j.
	Separation  [][]float64  `json:"separation"`
	ClosestPair *closestPair `json:"closest_pair,omitempty"`
}

func (s *Server) handleStripTemplates() (interface{}, error) {
	cal := s.analyzer.Calibration()
	out := templatesResult{Calibration: cal}

	if m := cal.SeparationMatrix(); m != nil {
		n := m.SymmetricDim()
		out.Separation = make([][]float64, n)
		for i := 0; i < n; i++ {
			out.Separation[i] = make([]float64, n)
			for j := 0; j < n; j++ {
				out.Separation[i][j] = m.At(i, j)
			}
		}
	}
	if a, b, d, ok := cal.ClosestPair(); ok {
		out.ClosestPair = &closestPair{A: a, B: b, DeltaE: d}
	}
	return out, nil
}

type stripHistoryArgs struct {
	Requester string `json:"requester"`
}

type historyLine struct {
	history.Entry
	Text string `json:"text"`
}

type historyResult struct {
	Requester string        `json:"requester"`
	Entries   []historyLine `json:"entries"`
	Last      string        `json:"last,omitempty"`
}

func (s *Server) handleStripHistory(args json.RawMessage) (interface{}, error) {
	var a stripHistoryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Requester == "" {
		return nil, errors.New("requester is required")
	}

	out := historyResult{Requester: a.Requester, Entries: []historyLine{}}
	for _, e := range s.history.List(a.Requester) {
		out.Entries = append(out.Entries, historyLine{Entry: e, Text: e.String()})
	}
	if last, ok := s.history.Last(a.Requester); ok {
		out.Last = last.String()
	}
	return out, nil
}
