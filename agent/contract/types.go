package contract

import "fmt"

type AgentType string

const (
	AgentTypeFire AgentType = "fire"
)

type ToolRequest struct {
	ID   string         `json:"id,omitempty"`
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Content is the text handed back to the model for this result.
func (r ToolResult) Content() string {
	if r.Error != "" {
		return "error: " + r.Error
	}
	switch v := r.Result.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
