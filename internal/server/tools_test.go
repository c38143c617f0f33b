package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"page_load",
		"page_activity_profile",
		"page_detect_margins",
		"page_cut_edges",
		"page_preview_margins",
		"page_trim_directory",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want object", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("InputSchema required should be a []string")
			}
			if len(required) != 1 || required[0] != "path" {
				t.Errorf("required: got %v, want [path]", required)
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required property %s is not defined", r)
				}
			}
		})
	}
}

func TestToolDefinitions_DetectionOverrides(t *testing.T) {
	want := []string{"threshold", "margin", "margin_top", "margin_bottom", "margin_left", "margin_right", "use_luminance"}

	for _, tool := range GetToolDefinitions() {
		switch tool.Name {
		case "page_detect_margins", "page_cut_edges", "page_preview_margins", "page_trim_directory":
		default:
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for _, name := range want {
			if _, ok := props[name]; !ok {
				t.Errorf("%s: missing property %s", tool.Name, name)
			}
		}
	}
}

func TestToolDefinitions_TrimFormats(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "page_trim_directory" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		format := props["format"].(map[string]interface{})
		enum, ok := format["enum"].([]string)
		if !ok || len(enum) != 3 {
			t.Fatalf("format enum: got %v", format["enum"])
		}
		for i, want := range []string{"png", "jpeg", "bmp"} {
			if enum[i] != want {
				t.Errorf("enum[%d]: got %s, want %s", i, enum[i], want)
			}
		}
		return
	}
	t.Fatal("page_trim_directory not defined")
}
