package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// pixelateProperties returns the schema properties shared by pixelate and
// pixelate_preview.
func (s *Server) pixelateProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"pixel_size": map[string]interface{}{
			"type":        "integer",
			"description": "Edge length of one pixel-art block in source pixels",
			"minimum":     s.cfg.PixelSizeMin,
			"maximum":     s.cfg.PixelSizeMax,
			"default":     s.cfg.PixelSizeDefault,
		},
		"color_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"full", "64color", "32color", "16color", "8color", "gameboy", "bw", "dave", "diver", "palette"},
			"description": "Color treatment applied to the blocks. Unknown names fall back to full color",
			"default":     "full",
		},
		"num_colors": map[string]interface{}{
			"type":        "integer",
			"description": "Override the color count of the N-color modes",
		},
		"keep_alpha": map[string]interface{}{
			"type":        "boolean",
			"description": "Pixelate the alpha channel on the same grid instead of dropping it",
			"default":     false,
		},
		"remove_background": map[string]interface{}{
			"type":        "boolean",
			"description": "Make the color found in the image corners transparent",
			"default":     false,
		},
		"bg_tolerance": map[string]interface{}{
			"type":        "integer",
			"description": "RGB distance from the background color that still counts as background",
			"default":     s.cfg.BgTolerance,
		},
		"palette": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Hex colors (#rrggbb) for the palette color mode",
		},
		"quantizer": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"mediancut", "kmeans", "dominant"},
			"description": "Palette selection algorithm for the N-color and cartoon modes",
			"default":     "mediancut",
		},
	}
}

// GetToolDefinitions returns all available tools
func (s *Server) GetToolDefinitions() []Tool {
	pixelateProps := s.pixelateProperties()
	pixelateProps["export_format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"png", "svg"},
		"description": "PNG raster or SVG with one square per block",
		"default":     "png",
	}
	pixelateProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional file to write the result to instead of returning base64 data",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, alpha presence and detected background color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Pixel Art
		{
			Name:        "pixelate",
			Description: "Convert an image to pixel art and return it as base64-encoded PNG or SVG. The output keeps only whole blocks, so its size can be smaller than the source.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pixelateProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "pixelate_preview",
			Description: "Quick low-resolution pixel-art preview, shrunk to the configured preview width and returned as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": s.pixelateProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "color_modes",
			Description: "List the supported color modes, quantizers and the accepted pixel size range.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
			"tools": s.GetToolDefinitions(),
		},
	}
}
