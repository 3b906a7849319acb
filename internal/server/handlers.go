package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/noise-texture/internal/config"
	"github.com/ironsheep/noise-texture/internal/imaging"
	"github.com/ironsheep/noise-texture/internal/noise"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "noise_generate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "noise_generate":
		return s.handleNoiseGenerate(args)
	case "noise_inspect":
		return s.handleNoiseInspect(args)
	case "noise_sample_color":
		return s.handleNoiseSampleColor(args)
	case "noise_tile_preview":
		return s.handleNoiseTilePreview(args)
	case "noise_dimensions":
		return s.handleNoiseDimensions(args)
	case "noise_cache_clear":
		return s.handleNoiseCacheClear()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type noiseGenerateArgs struct {
	Width   *int     `json:"width"`
	Height  *int     `json:"height"`
	Opacity *float64 `json:"opacity"`
	Seed    uint64   `json:"seed"`
	Output  string   `json:"output"`
}

func (s *Server) handleNoiseGenerate(args json.RawMessage) (interface{}, error) {
	var a noiseGenerateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg := *s.cfg
	if a.Width != nil {
		cfg.Width = *a.Width
	}
	if a.Height != nil {
		cfg.Height = *a.Height
	}
	if a.Opacity != nil {
		cfg.Opacity = *a.Opacity
	}
	if a.Seed != 0 {
		cfg.Seed = a.Seed
	}
	if a.Output != "" {
		cfg.Output = a.Output
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !noise.OpacityInRange(cfg.Opacity) {
		log.Printf("Opacity %g is outside [0, 1]; alpha will be clamped", cfg.Opacity)
	}

	res, err := noise.Render(cfg.Output, cfg.Params(), s.source(&cfg))
	if err != nil {
		return nil, err
	}
	s.cache.Evict(cfg.Output)
	return res, nil
}

func (s *Server) source(cfg *config.Config) noise.Source {
	if cfg.Seed != 0 {
		return noise.NewSeededSource(cfg.Seed)
	}
	return s.newSource()
}

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleNoiseInspect(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.Inspect(s.cache, a.Path)
}

type noiseSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleNoiseSampleColor(args json.RawMessage) (interface{}, error) {
	var a noiseSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type noiseTilePreviewArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	Cols   int    `json:"cols"`
	Rows   int    `json:"rows"`
}

// TilePreviewResult describes a written tile preview.
type TilePreviewResult struct {
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cols   int    `json:"cols"`
	Rows   int    `json:"rows"`
}

func (s *Server) handleNoiseTilePreview(args json.RawMessage) (interface{}, error) {
	var a noiseTilePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	if !imaging.IsPNGPath(a.Output) {
		return nil, fmt.Errorf("output %q must have a .png extension", a.Output)
	}
	if a.Cols == 0 {
		a.Cols = 3
	}
	if a.Rows == 0 {
		a.Rows = 3
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	preview, err := imaging.TilePreview(img, a.Cols, a.Rows)
	if err != nil {
		return nil, err
	}
	if err := imaging.SavePNG(preview, a.Output); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Output)

	// Report what landed on disk rather than the in-memory preview.
	dims, err := imaging.GetDimensions(s.cache, a.Output)
	if err != nil {
		return nil, err
	}

	return &TilePreviewResult{
		Output: a.Output,
		Width:  dims.Width,
		Height: dims.Height,
		Cols:   a.Cols,
		Rows:   a.Rows,
	}, nil
}

func (s *Server) handleNoiseDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// CacheClearResult reports how many decoded images were dropped.
type CacheClearResult struct {
	Cleared int `json:"cleared"`
}

// handleNoiseCacheClear drops every decoded image, for textures rewritten on
// disk by something other than this server.
func (s *Server) handleNoiseCacheClear() (interface{}, error) {
	return &CacheClearResult{Cleared: s.cache.Clear()}, nil
}
