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

// blurProperties returns the schema properties shared by the blur tools,
// merged with extra.
func blurProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty,
		"low": map[string]interface{}{
			"type":        "number",
			"description": "Weak edge threshold as a fraction of full scale (0-1). Default 0.05882353",
			"default":     0.05882353,
		},
		"high": map[string]interface{}{
			"type":        "number",
			"description": "Strong edge threshold as a fraction of full scale (0-1), >= low. Default 0.11764706",
			"default":     0.11764706,
		},
		"radius": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum edge width walk in each direction (1-100). Default 50",
			"default":     50,
		},
		"block_pct": map[string]interface{}{
			"type":        "integer",
			"description": "Percentage of sharpest blocks averaged into the score (1-100). Default 80",
			"default":     80,
		},
		"block_width": map[string]interface{}{
			"type":        "integer",
			"description": "Block width in pixels, or -1 for the whole plane. Default -1",
			"default":     -1,
		},
		"block_height": map[string]interface{}{
			"type":        "integer",
			"description": "Block height in pixels, or -1 for the whole plane. Default -1",
			"default":     -1,
		},
		"planes": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer"},
			"description": "Plane indices to score (see image_load). Default all",
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"native", "luma", "lightness"},
			"description": "native: stored channels (Y/Cb/Cr or R/G/B); luma: one BT.601 luma plane; lightness: one CIE L* plane. Default native",
			"default":     "native",
		},
		"bit_depth": map[string]interface{}{
			"type":        "integer",
			"enum":        []int{8, 10, 12, 14, 16},
			"description": "Sample bit depth for 16-bit images captured at a lower depth. Default: storage depth",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, bit depth and the planes blur scores are reported for. Plane indices listed here are the ones accepted by the planes parameter.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_blur_detect",
			Description: "Estimate how blurry an image is. Detects edges, measures how many pixels each edge spreads over, and averages the sharpest blocks. Returns one score per plane (blurriness_y, blurriness_r, ...): higher is blurrier, 0 means no usable edges.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": blurProperties(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_blur_region",
			Description: "Blur scores for a rectangular region of the image. Coordinates are 0-based; x2 and y2 are exclusive.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": blurProperties(map[string]interface{}{
					"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
					"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
					"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
					"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
				}),
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_blur_compare_regions",
			Description: "Score two regions of an image and report which one is sharper, judged by the first selected plane.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": blurProperties(map[string]interface{}{
					"region1": regionProperty("First region"),
					"region2": regionProperty("Second region"),
				}),
				"required": []string{"path", "region1", "region2"},
			},
		},
		{
			Name:        "image_blur_map",
			Description: "Per-block edge widths of one plane, locating the sharpest and blurriest parts of the image. Blocks default to 32x32 plane samples and shrink to the plane when it is smaller; subsampled chroma planes have half the samples of the image. Sharpest and blurriest regions are reported in image pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": blurProperties(map[string]interface{}{
					"plane": map[string]interface{}{
						"type":        "integer",
						"description": "Plane index to map. Default 0",
						"default":     0,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_blur_sweep",
			Description: "Apply Gaussian blur at increasing sigmas and score each result, showing how the blur score responds on this image. Sigma 0 is the image as loaded and matches image_blur_detect; blurred steps keep the image's planes (Y/U/V for JPEG). The blur runs at 8 bits, so 16-bit images need mode luma or lightness.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": blurProperties(map[string]interface{}{
					"sigmas": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Blur sigmas to apply, each 0-64; 0 is the unmodified image. Default [0, 1, 2, 4], at most 16",
					},
				}),
				"required": []string{"path"},
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
