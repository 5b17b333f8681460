package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"strip_classify",
		"strip_analyze",
		"strip_locate",
		"strip_extract_pad",
		"strip_annotate",
		"strip_templates",
		"strip_history",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
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
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"image_load":        {"path"},
		"strip_classify":    {"path"},
		"strip_analyze":     {"path"},
		"strip_locate":      {"path"},
		"strip_extract_pad": {"path"},
		"strip_annotate":    {"path"},
		"strip_history":     {"requester"},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			required, ok := toolMap[name].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != len(want) {
				t.Fatalf("required: got %v, want %v", required, want)
			}
			for i := range want {
				if required[i] != want[i] {
					t.Errorf("required: got %v, want %v", required, want)
				}
			}

			props := toolMap[name].InputSchema["properties"].(map[string]interface{})
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no schema", r)
				}
			}
		})
	}
}

func TestToolDefinitions_ExtractPadScaleDefault(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "strip_extract_pad" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		scale, ok := props["scale"].(map[string]interface{})
		if !ok {
			t.Fatal("scale property missing")
		}
		if scale["default"] != 1.0 {
			t.Errorf("scale default: got %v, want 1.0", scale["default"])
		}
		return
	}
	t.Fatal("strip_extract_pad tool not found")
}
