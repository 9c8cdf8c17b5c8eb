package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/blur-detect-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_blur_detect").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.log.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool done")

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Builds analysis options, keeping defaults for omitted parameters
//  3. Loads the image from cache
//  4. Calls the matching imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (result interface{}, err error) {
	// A panicking tool fails its call instead of the server.
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()

	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_blur_detect":
		return s.handleBlurDetect(args)
	case "image_blur_region":
		return s.handleBlurRegion(args)
	case "image_blur_compare_regions":
		return s.handleBlurCompareRegions(args)
	case "image_blur_map":
		return s.handleBlurMap(args)
	case "image_blur_sweep":
		return s.handleBlurSweep(args)
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

// blurArgs are the analysis parameters shared by the blur tools. Nil
// pointers keep the default.
type blurArgs struct {
	Path        string   `json:"path"`
	Low         *float64 `json:"low"`
	High        *float64 `json:"high"`
	Radius      *int     `json:"radius"`
	BlockPct    *int     `json:"block_pct"`
	BlockWidth  *int     `json:"block_width"`
	BlockHeight *int     `json:"block_height"`
	Planes      []int    `json:"planes"`
	Mode        string   `json:"mode"`
	BitDepth    int      `json:"bit_depth"`
}

func (a *blurArgs) options() imaging.Options {
	opts := imaging.DefaultOptions()
	cfg := &opts.Config
	if a.Low != nil {
		cfg.Low = *a.Low
	}
	if a.High != nil {
		cfg.High = *a.High
	}
	if a.Radius != nil {
		cfg.Radius = *a.Radius
	}
	if a.BlockPct != nil {
		cfg.BlockPct = *a.BlockPct
	}
	if a.BlockWidth != nil {
		cfg.BlockWidth = *a.BlockWidth
	}
	if a.BlockHeight != nil {
		cfg.BlockHeight = *a.BlockHeight
	}
	if a.Mode != "" {
		opts.Mode = imaging.Mode(a.Mode)
	}
	opts.BitDepth = a.BitDepth
	opts.Planes = a.Planes
	return opts
}

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r regionArgs) region() imaging.Region {
	return imaging.Region{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
}

// === Image Information ===

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

// === Blur Handlers ===

func (s *Server) handleBlurDetect(args json.RawMessage) (interface{}, error) {
	var a blurArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.AnalyzeImage(img, a.options())
}

type blurRegionArgs struct {
	blurArgs
	regionArgs
}

func (s *Server) handleBlurRegion(args json.RawMessage) (interface{}, error) {
	var a blurRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.AnalyzeRegion(img, a.region(), a.options())
}

type blurCompareArgs struct {
	blurArgs
	Region1 regionArgs `json:"region1"`
	Region2 regionArgs `json:"region2"`
}

func (s *Server) handleBlurCompareRegions(args json.RawMessage) (interface{}, error) {
	var a blurCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CompareRegions(img, a.Region1.region(), a.Region2.region(), a.options())
}

// defaultMapBlock is the block size of image_blur_map when none is given.
// BlockMap reduces it to the plane size for small planes.
const defaultMapBlock = 32

type blurMapArgs struct {
	blurArgs
	Plane int `json:"plane"`
}

func (s *Server) handleBlurMap(args json.RawMessage) (interface{}, error) {
	var a blurMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	opts := a.options()
	if a.BlockWidth == nil {
		opts.Config.BlockWidth = defaultMapBlock
	}
	if a.BlockHeight == nil {
		opts.Config.BlockHeight = defaultMapBlock
	}
	return imaging.BlockMap(img, a.Plane, opts)
}

type blurSweepArgs struct {
	blurArgs
	Sigmas []float64 `json:"sigmas"`
}

func (s *Server) handleBlurSweep(args json.RawMessage) (interface{}, error) {
	var a blurSweepArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.BlurSweep(img, a.Sigmas, a.options())
}
