package models

// Plan is the structure the planner answers with: the reply to show the user
// and the ordered tool calls to execute before the final response.
type Plan struct {
	Reply string     `json:"reply"`
	Calls []ToolCall `json:"tools"`
}

type ToolCall struct {
	Tool string            `json:"tool"`
	Args map[string]string `json:"args,omitempty"`
}
