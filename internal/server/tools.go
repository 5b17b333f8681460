package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool that reads an image file.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the photo (PNG, JPEG, GIF, WebP, BMP or TIFF)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Classification
		{
			Name:        "strip_classify",
			Description: "Classify the glucose pad of a urine test strip photo. Returns the result label (Negative, Trace, 1+ to 4+), a severity with its display color, and the ΔE2000 distance to the matched reference. When requester is given the result is added to that requester's history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"requester": map[string]interface{}{
						"type":        "string",
						"description": "Optional id of the person the result belongs to",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "strip_analyze",
			Description: "Run the full strip pipeline and return every intermediate result: bounding box, rotation, pad color sample (median, Lab, per-channel spread) and the distance to every reference template.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Pipeline stages
		{
			Name:        "strip_locate",
			Description: "Find the test strip in a photo and return its axis-aligned bounding box in source pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "strip_extract_pad",
			Description: "Return the sampled glucose pad region as base64-encoded PNG together with its color sample. Use this to check that the pad was found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 4.0 to enlarge the small pad). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "strip_annotate",
			Description: "Return the photo as base64-encoded PNG with the detected strip outlined in the result's severity color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Calibration and history
		{
			Name:        "strip_templates",
			Description: "Return the active calibration profile and the pairwise ΔE2000 distances between its reference colors.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "strip_history",
			Description: "List the results recorded for a requester, oldest first, formatted as \"dd/mm HH:MM | result\".",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"requester": map[string]interface{}{
						"type":        "string",
						"description": "Id passed to strip_classify",
					},
				},
				"required": []string{"requester"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
