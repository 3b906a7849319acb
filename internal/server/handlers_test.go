package server

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/noise-texture/internal/imaging"
	"github.com/ironsheep/noise-texture/internal/noise"
)

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeToolResult unmarshals the JSON text content of a successful tool call.
func decodeToolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %#v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode tool result %q: %v", text, err)
	}
}

func TestNoiseGenerate_Defaults(t *testing.T) {
	s := New(nil)
	s.cfg.Output = filepath.Join(t.TempDir(), "noise.png")

	var res noise.Result
	decodeToolResult(t, callTool(t, s, "noise_generate", map[string]interface{}{}), &res)

	if res.Width != 200 || res.Height != 200 || res.Opacity != 0.15 {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Path != s.cfg.Output {
		t.Errorf("Path: got %s, want %s", res.Path, s.cfg.Output)
	}

	report, err := imaging.Inspect(imaging.NewImageCache(), res.Path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !report.Info.HasAlpha || report.Info.Channels != 4 {
		t.Errorf("texture should carry alpha: %+v", report.Info)
	}
	if !report.Stats.Grayscale {
		t.Error("texture should be grayscale")
	}
	if report.Stats.AlphaMax > 39 {
		t.Errorf("AlphaMax %d exceeds 39", report.Stats.AlphaMax)
	}
}

func TestNoiseGenerate_Arguments(t *testing.T) {
	s := New(nil)
	out := filepath.Join(t.TempDir(), "grain.png")

	var res noise.Result
	decodeToolResult(t, callTool(t, s, "noise_generate", map[string]interface{}{
		"width":   32,
		"height":  16,
		"opacity": 0,
		"seed":    7,
		"output":  out,
	}), &res)

	if res.Width != 32 || res.Height != 16 || res.Opacity != 0 || res.Path != out {
		t.Errorf("unexpected result: %+v", res)
	}

	report, err := imaging.Inspect(imaging.NewImageCache(), out)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if report.Stats.AlphaMax != 0 || report.Stats.TransparentPixels != 32*16 {
		t.Errorf("zero opacity should give alpha 0 everywhere: %+v", report.Stats)
	}
	if s.cfg.Output == out {
		t.Error("tool arguments must not modify the server config")
	}
}

func TestNoiseGenerate_SeedIsReproducible(t *testing.T) {
	s := New(nil)
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")

	for _, out := range []string{a, b} {
		resp := callTool(t, s, "noise_generate", map[string]interface{}{"seed": 1234, "output": out, "width": 20, "height": 20})
		if resp.Error != nil {
			t.Fatalf("Unexpected error: %+v", resp.Error)
		}
	}

	da, err := os.ReadFile(a)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	db, err := os.ReadFile(b)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(da) != string(db) {
		t.Error("same seed should produce identical files")
	}
}

func TestNoiseGenerate_UsesSourceFactory(t *testing.T) {
	s := New(nil)
	calls := 0
	s.newSource = func() noise.Source {
		calls++
		return noise.NewSeededSource(3)
	}

	out := filepath.Join(t.TempDir(), "n.png")
	resp := callTool(t, s, "noise_generate", map[string]interface{}{"output": out, "width": 4, "height": 4})
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	if calls != 1 {
		t.Errorf("unseeded generation should use the source factory once, got %d", calls)
	}
}

func TestNoiseGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		args     map[string]interface{}
		wantData string
	}{
		{"zero width", map[string]interface{}{"width": 0, "output": filepath.Join(dir, "a.png")}, "invalid dimensions"},
		{"negative height", map[string]interface{}{"height": -3, "output": filepath.Join(dir, "b.png")}, "invalid dimensions"},
		{"non-png output", map[string]interface{}{"output": filepath.Join(dir, "c.jpg")}, ".png"},
		{"unwritable output", map[string]interface{}{"output": filepath.Join(dir, "missing", "d.png")}, "io failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, New(nil), "noise_generate", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
			data, _ := resp.Error.Data.(string)
			if !strings.Contains(data, tt.wantData) {
				t.Errorf("error data %q should mention %q", data, tt.wantData)
			}
		})
	}
}

func TestNoiseGenerate_EvictsCachedFile(t *testing.T) {
	s := New(nil)
	out := filepath.Join(t.TempDir(), "n.png")

	callTool(t, s, "noise_generate", map[string]interface{}{"output": out, "width": 8, "height": 8, "seed": 1})
	first, err := s.cache.Load(out)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	callTool(t, s, "noise_generate", map[string]interface{}{"output": out, "width": 12, "height": 6, "seed": 2})
	second, err := s.cache.Load(out)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first == second || second.Bounds().Dx() != 12 {
		t.Error("regenerating a file should evict the stale cached image")
	}
}

func TestNoiseInspect(t *testing.T) {
	s := New(nil)
	out := filepath.Join(t.TempDir(), "n.png")
	callTool(t, s, "noise_generate", map[string]interface{}{"output": out, "width": 50, "height": 40, "seed": 5})

	var report imaging.Report
	decodeToolResult(t, callTool(t, s, "noise_inspect", map[string]interface{}{"path": out}), &report)

	if report.Info == nil || report.Stats == nil {
		t.Fatalf("incomplete report: %+v", report)
	}
	if report.Info.Width != 50 || report.Info.Height != 40 || report.Info.Format != "png" {
		t.Errorf("unexpected info: %+v", report.Info)
	}
	if !report.Stats.Grayscale || report.Stats.Pixels != 2000 {
		t.Errorf("unexpected stats: %+v", report.Stats)
	}
}

func TestNoiseInspect_Errors(t *testing.T) {
	s := New(nil)
	for _, args := range []map[string]interface{}{
		{},
		{"path": "/nonexistent/noise.png"},
	} {
		resp := callTool(t, s, "noise_inspect", args)
		if resp.Error == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestNoiseSampleColor(t *testing.T) {
	s := New(nil)
	out := filepath.Join(t.TempDir(), "n.png")
	callTool(t, s, "noise_generate", map[string]interface{}{"output": out, "width": 10, "height": 10, "seed": 9})

	var c imaging.ColorResult
	decodeToolResult(t, callTool(t, s, "noise_sample_color", map[string]interface{}{"path": out, "x": 3, "y": 4}), &c)

	if !c.Gray {
		t.Errorf("sampled pixel should be gray: %+v", c)
	}
	if c.RGBA.A > 39 {
		t.Errorf("alpha %d exceeds 39", c.RGBA.A)
	}

	resp := callTool(t, s, "noise_sample_color", map[string]interface{}{"path": out, "x": 10, "y": 0})
	if resp.Error == nil {
		t.Error("out-of-bounds sample should fail")
	}
}

func TestNoiseTilePreview(t *testing.T) {
	s := New(nil)
	dir := t.TempDir()
	src := filepath.Join(dir, "patch.png")
	dst := filepath.Join(dir, "preview.png")
	callTool(t, s, "noise_generate", map[string]interface{}{"output": src, "width": 10, "height": 6, "seed": 2})

	var res TilePreviewResult
	decodeToolResult(t, callTool(t, s, "noise_tile_preview", map[string]interface{}{"path": src, "output": dst}), &res)

	if res.Cols != 3 || res.Rows != 3 || res.Width != 30 || res.Height != 18 {
		t.Errorf("unexpected result: %+v", res)
	}
	dims, err := imaging.GetDimensions(imaging.NewImageCache(), dst)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 30 || dims.Height != 18 {
		t.Errorf("preview file is %dx%d, want 30x18", dims.Width, dims.Height)
	}

	decodeToolResult(t, callTool(t, s, "noise_tile_preview", map[string]interface{}{
		"path": src, "output": dst, "cols": 2, "rows": 1,
	}), &res)
	if res.Width != 20 || res.Height != 6 {
		t.Errorf("custom grid: got %dx%d, want 20x6", res.Width, res.Height)
	}
}

func TestNoiseTilePreview_Errors(t *testing.T) {
	s := New(nil)
	dir := t.TempDir()
	src := filepath.Join(dir, "patch.png")
	callTool(t, s, "noise_generate", map[string]interface{}{"output": src, "width": 4, "height": 4, "seed": 2})

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing output", map[string]interface{}{"path": src}},
		{"missing source", map[string]interface{}{"path": filepath.Join(dir, "nope.png"), "output": filepath.Join(dir, "p.png")}},
		{"negative cols", map[string]interface{}{"path": src, "output": filepath.Join(dir, "p.png"), "cols": -1}},
		{"bad extension", map[string]interface{}{"path": src, "output": filepath.Join(dir, "p.xyz")}},
		{"jpeg output", map[string]interface{}{"path": src, "output": filepath.Join(dir, "p.jpg")}},
		{"overflowing grid", map[string]interface{}{"path": src, "output": filepath.Join(dir, "p.png"), "cols": math.MaxInt / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := callTool(t, s, "noise_tile_preview", tt.args); resp.Error == nil {
				t.Error("expected error response")
			}
		})
	}
}

func TestNoiseTilePreview_RejectedOutputNotWritten(t *testing.T) {
	s := New(nil)
	dir := t.TempDir()
	src := filepath.Join(dir, "patch.png")
	dst := filepath.Join(dir, "preview.jpg")
	callTool(t, s, "noise_generate", map[string]interface{}{"output": src, "width": 4, "height": 4, "seed": 2})

	resp := callTool(t, s, "noise_tile_preview", map[string]interface{}{"path": src, "output": dst})
	if resp.Error == nil {
		t.Fatal("expected error for .jpg output")
	}
	if !strings.Contains(resp.Error.Data.(string), ".png") {
		t.Errorf("error should name the required extension: %v", resp.Error.Data)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("rejected preview should not be written")
	}
}

func TestNoiseDimensions(t *testing.T) {
	s := New(nil)
	out := filepath.Join(t.TempDir(), "patch.png")
	callTool(t, s, "noise_generate", map[string]interface{}{"output": out, "width": 12, "height": 5, "seed": 3})

	var dims imaging.DimensionsResult
	decodeToolResult(t, callTool(t, s, "noise_dimensions", map[string]interface{}{"path": out}), &dims)
	if dims.Width != 12 || dims.Height != 5 {
		t.Errorf("got %dx%d, want 12x5", dims.Width, dims.Height)
	}

	for _, args := range []map[string]interface{}{
		{},
		{"path": filepath.Join(t.TempDir(), "nope.png")},
	} {
		if resp := callTool(t, s, "noise_dimensions", args); resp.Error == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestNoiseCacheClear(t *testing.T) {
	s := New(nil)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	for _, p := range []string{a, b} {
		callTool(t, s, "noise_generate", map[string]interface{}{"output": p, "width": 3, "height": 3, "seed": 1})
		decodeToolResult(t, callTool(t, s, "noise_dimensions", map[string]interface{}{"path": p}), &imaging.DimensionsResult{})
	}

	var res CacheClearResult
	decodeToolResult(t, callTool(t, s, "noise_cache_clear", nil), &res)
	if res.Cleared != 2 {
		t.Errorf("Cleared: got %d, want 2", res.Cleared)
	}

	decodeToolResult(t, callTool(t, s, "noise_cache_clear", nil), &res)
	if res.Cleared != 0 {
		t.Errorf("second clear: got %d, want 0", res.Cleared)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	resp := callTool(t, New(nil), "image_crop", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil)
	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`not json`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_InvalidArguments(t *testing.T) {
	s := New(nil)
	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{"name":"noise_generate","arguments":{"width":"wide"}}`),
	})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected -32000, got %+v", resp.Error)
	}
}

func TestMustMarshalJSON(t *testing.T) {
	got := mustMarshalJSON(map[string]int{"a": 1})
	if got != "{\n  \"a\": 1\n}" {
		t.Errorf("unexpected JSON: %q", got)
	}
	if mustMarshalJSON(make(chan int)) != "" {
		t.Error("unmarshalable value should give empty string")
	}
}
