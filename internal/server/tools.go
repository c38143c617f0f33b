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

// detectionProperties are the per-call overrides accepted by every tool that
// runs margin detection. Omitted values come from the server configuration.
func detectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty("Absolute path to the page image"),
		"threshold": map[string]interface{}{
			"type":        "number",
			"description": "Normalized activity a row or column must exceed to count as content (default 0.02)",
		},
		"margin": map[string]interface{}{
			"type":        "integer",
			"description": "Background pixels kept outside the content on every edge (default 15)",
			"minimum":     0,
		},
		"margin_top":    map[string]interface{}{"type": "integer", "minimum": 0, "description": "Overrides margin for the top edge"},
		"margin_bottom": map[string]interface{}{"type": "integer", "minimum": 0, "description": "Overrides margin for the bottom edge"},
		"margin_left":   map[string]interface{}{"type": "integer", "minimum": 0, "description": "Overrides margin for the left edge"},
		"margin_right":  map[string]interface{}{"type": "integer", "minimum": 0, "description": "Overrides margin for the right edge"},
		"use_luminance": map[string]interface{}{
			"type":        "boolean",
			"description": "Score lines by luminance change (true) or by the sum of red, green and blue changes (false)",
		},
	}
}

func withBorder(props map[string]interface{}) map[string]interface{} {
	props["border_width"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"description": "Pad the cropped page with a solid border of this width (default 0)",
	}
	props["border_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Border color as #rrggbb (default #ff7fff)",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	cutProps := withBorder(detectionProperties())
	cutProps["output_path"] = pathProperty("Optional file to also write the cropped page to (.png, .jpg, .jpeg or .bmp)")

	previewProps := detectionProperties()
	previewProps["outline_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Outline color for the retained rectangle as #rrggbb (default #ff0000)",
	}

	trimProps := withBorder(detectionProperties())
	trimProps["path"] = pathProperty("Directory of page images or a PDF file")
	trimProps["output_dir"] = pathProperty("Output directory (default <dir>/output)")
	trimProps["format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"png", "jpeg", "bmp"},
		"description": "Output encoding (default png)",
	}
	trimProps["workers"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"description": "Pages processed at once; 0 sizes to the host",
	}
	trimProps["dpi"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     1,
		"description": "Render resolution for PDF pages (default 300)",
	}

	return []Tool{
		// Page Information
		{
			Name:        "page_load",
			Description: "Load a page image and return its dimensions, format, raster stride and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the page image"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "page_activity_profile",
			Description: "Return the normalized per-row and per-column edge-activity profiles of a page. Values are in [0,1]; the busiest line is 1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the page image"),
					"use_luminance": map[string]interface{}{
						"type":        "boolean",
						"description": "Score lines by luminance change (default true)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Detection and Cropping
		{
			Name:        "page_detect_margins",
			Description: "Detect the uniform margin around page content. Returns the pixels removed from each edge and the retained rectangle without cropping.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectionProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "page_cut_edges",
			Description: "Detect and remove the page margin, optionally pad with a border, and return the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cutProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "page_preview_margins",
			Description: "Return the page with the trimmed band shaded and the retained rectangle outlined, as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": previewProps,
				"required":   []string{"path"},
			},
		},

		// Batch
		{
			Name:        "page_trim_directory",
			Description: "Trim every page in a directory or PDF and write the results to an output directory. Returns a per-page report.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": trimProps,
				"required":   []string{"path"},
			},
		},
	}
}
