package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "noise_generate",
			Description: "Generate a grayscale noise texture with a random, opacity-scaled alpha channel and write it as PNG. Omitted fields fall back to the server's configured defaults (200x200, opacity 0.15, noise.png).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Texture width in pixels (1-16384)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Texture height in pixels (1-16384)",
					},
					"opacity": map[string]interface{}{
						"type":        "number",
						"description": "Maximum alpha fraction, nominally 0.0-1.0",
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Optional non-zero seed for a reproducible texture",
					},
					"output": pathProperty("Output path; must end in .png"),
				},
			},
		},
		{
			Name:        "noise_inspect",
			Description: "Read a texture file back and report its dimensions, alpha channel, file size and per-channel statistics (grayscale check, gray and alpha ranges).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path to the texture file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "noise_sample_color",
			Description: "Get the exact straight-alpha color at a pixel of a texture.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path to the texture file"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "noise_tile_preview",
			Description: "Repeat a texture patch in a grid and write the result to a .png file, to check how the patch looks when repeated. Other extensions are rejected so the alpha channel is kept.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty("Path to the texture patch"),
					"output": pathProperty("Path for the preview image; must end in .png"),
					"cols": map[string]interface{}{
						"type":        "integer",
						"description": "Number of columns. Default 3",
						"default":     3,
					},
					"rows": map[string]interface{}{
						"type":        "integer",
						"description": "Number of rows. Default 3",
						"default":     3,
					},
				},
				"required": []string{"path", "output"},
			},
		},
		{
			Name:        "noise_dimensions",
			Description: "Get the width and height of a texture file in pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path to the texture file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "noise_cache_clear",
			Description: "Drop every decoded texture the server holds, so files changed on disk by other programs are read again.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the tool definitions
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
