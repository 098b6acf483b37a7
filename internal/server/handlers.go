package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ironsheep/pixel-art-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "pixelate").
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

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("%s failed after %v: %v", params.Name, time.Since(start), err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.debugf("%s done in %v", params.Name, time.Since(start))

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
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Pixel Art
	case "pixelate":
		return s.handlePixelate(args)
	case "pixelate_preview":
		return s.handlePixelatePreview(args)
	case "color_modes":
		return s.handleColorModes()

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Pixel Art Handlers ===

type pixelateArgs struct {
	Path             string   `json:"path"`
	PixelSize        int      `json:"pixel_size"`
	ColorMode        string   `json:"color_mode"`
	NumColors        int      `json:"num_colors"`
	ExportFormat     string   `json:"export_format"`
	KeepAlpha        bool     `json:"keep_alpha"`
	RemoveBackground bool     `json:"remove_background"`
	BgTolerance      *int     `json:"bg_tolerance"`
	Palette          []string `json:"palette"`
	Quantizer        string   `json:"quantizer"`
	OutputPath       string   `json:"output_path"`
}

// pixelateResult is the pixelate tool's response. Data is omitted when the
// result was written to OutputPath.
type pixelateResult struct {
	imaging.RenderResult
	PixelSize  int    `json:"pixel_size"`
	ColorMode  string `json:"color_mode"`
	OutputPath string `json:"output_path,omitempty"`
}

// params converts tool arguments into pipeline parameters, applying
// configured defaults and limits.
func (s *Server) params(a pixelateArgs) (imaging.Params, error) {
	if a.PixelSize == 0 {
		a.PixelSize = s.cfg.PixelSizeDefault
	}
	if err := s.cfg.CheckPixelSize(a.PixelSize); err != nil {
		return imaging.Params{}, err
	}

	if a.ColorMode == "" {
		a.ColorMode = "full"
	}
	mode, ok := imaging.ParseColorMode(a.ColorMode)
	if !ok {
		s.logger.Printf("Unknown color mode %q, using full color", a.ColorMode)
	}

	numColors := mode.DefaultColors()
	if a.NumColors > 0 {
		numColors = a.NumColors
	}

	tolerance := s.cfg.BgTolerance
	if a.BgTolerance != nil {
		tolerance = *a.BgTolerance
	}

	var palette imaging.Palette
	if len(a.Palette) > 0 {
		var err error
		if palette, err = imaging.ParsePalette(a.Palette); err != nil {
			return imaging.Params{}, err
		}
	}

	p := imaging.Params{
		PixelSize:        a.PixelSize,
		Mode:             mode,
		NumColors:        numColors,
		KeepAlpha:        a.KeepAlpha,
		RemoveBackground: a.RemoveBackground,
		BgTolerance:      tolerance,
		Palette:          palette,
		Quantizer:        imaging.ParseQuantizerKind(a.Quantizer),
	}
	return p, p.Validate()
}

func (s *Server) handlePixelate(args json.RawMessage) (interface{}, error) {
	var a pixelateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.params(a)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := imaging.Pixelate(img, p)
	if err != nil {
		return nil, err
	}
	rendered, err := imaging.Render(out, a.ExportFormat, p.PixelSize)
	if err != nil {
		return nil, err
	}

	result := &pixelateResult{
		RenderResult: *rendered,
		PixelSize:    p.PixelSize,
		ColorMode:    p.Mode.String(),
	}
	if a.OutputPath != "" {
		data, err := base64.StdEncoding.DecodeString(rendered.DataBase64)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(a.OutputPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", a.OutputPath, err)
		}
		result.OutputPath = a.OutputPath
		result.DataBase64 = ""
	}
	return result, nil
}

func (s *Server) handlePixelatePreview(args json.RawMessage) (interface{}, error) {
	var a pixelateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.params(a)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := imaging.Preview(img, s.cfg.PreviewWidth, p)
	if err != nil {
		return nil, err
	}
	return imaging.Render(out, imaging.FormatPNG, 0)
}

// colorModesResult lists the color modes and the accepted pixel size range.
type colorModesResult struct {
	Modes            []imaging.ModeInfo `json:"modes"`
	Quantizers       []string           `json:"quantizers"`
	PixelSizeMin     int                `json:"pixel_size_min"`
	PixelSizeMax     int                `json:"pixel_size_max"`
	PixelSizeDefault int                `json:"pixel_size_default"`
}

func (s *Server) handleColorModes() (interface{}, error) {
	return &colorModesResult{
		Modes:            imaging.ColorModes(),
		Quantizers:       []string{"mediancut", "kmeans", "dominant"},
		PixelSizeMin:     s.cfg.PixelSizeMin,
		PixelSizeMax:     s.cfg.PixelSizeMax,
		PixelSizeDefault: s.cfg.PixelSizeDefault,
	}, nil
}
