// In file: internal/tools/types.go

// Package tools defines the uniform call/response contract shared by every
// device tool adapter: the descriptor handed to the planner, the argument
// validator, the flat output payload, and the closed error taxonomy. The
// concrete adapters (weather, location, health, calendar, reminders,
// contacts, web metadata, web search) live here too, each injected with the
// capability interfaces it needs.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool defines the schema for a function that can be described to an LLM.
// This is the information the planner receives to decide when to call a tool.
type Tool struct {
	// Type specifies the type of tool, which is almost always "function".
	Type string `json:"type"`
	// Function holds the detailed definition of the function.
	Function Function `json:"function"`
}

// Function defines the name, description, and parameters of a callable tool.
type Function struct {
	// Name is the name of the function to be called (e.g., "getCurrentWeather").
	Name string `json:"name"`
	// Description is a clear, concise explanation of what the function does.
	// The planner uses this description to decide when to use the tool.
	Description string `json:"description"`
	// Parameters defines the arguments the function accepts, structured as a JSON Schema.
	Parameters JSONSchema `json:"parameters"`
}

// JSONSchema is the explicit argument schema of a tool. The same object is
// serialized for the planner and consumed by ParseArguments, so what the
// planner is told and what the validator enforces cannot drift apart.
type JSONSchema struct {
	// Type defines the data type for a schema node (e.g., "object", "string", "number").
	// For the top-level parameters object, this should always be "object".
	Type string `json:"type"`
	// Description explains what a specific parameter is for.
	Description string `json:"description,omitempty"`
	// Properties describes the parameters of an object. The keys are parameter names,
	// and the values are further JSONSchema definitions for each parameter.
	Properties map[string]*JSONSchema `json:"properties,omitempty"`
	// Required is a list of parameter names that are mandatory for a function call.
	Required []string `json:"required,omitempty"`
	// Default is applied by ParseArguments when the caller omits the field.
	Default any `json:"default,omitempty"`
	// Enum restricts a string field to a fixed set, matched case-insensitively.
	Enum []string `json:"enum,omitempty"`
	// Minimum and Maximum clamp numeric fields.
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// ToolCall represents a request *from* the LLM to execute a specific tool with given arguments.
type ToolCall struct {
	// ID is a unique identifier for this specific tool call.
	ID string `json:"id"`
	// Type indicates the type of tool being called, which is almost always "function".
	Type string `json:"type"`
	// Function contains the name and arguments for the function the LLM wants to execute.
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction holds the name and arguments of a function call requested by the LLM.
type ToolCallFunction struct {
	// Name is the name of the function the LLM has decided to call.
	Name string `json:"name"`
	// Arguments is a JSON string containing the arguments for the function.
	Arguments string `json:"arguments"`
}

// ToolResult pairs a tool call with the Output it produced.
type ToolResult struct {
	// ToolCallID echoes ToolCall.ID so the planner can match results to calls.
	ToolCallID string `json:"toolCallId"`
	Name       string `json:"name"`
	Output     Output `json:"output"`
}

// NewFunctionTool is a helper function that simplifies the creation of a new Tool.
// It reduces boilerplate and ensures the tool is created with the correct "function" type.
//
// Parameters:
//   - name: The name of the function.
//   - description: A clear description of what the function does.
//   - parameters: A JSONSchema struct defining the function's arguments.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// Bound returns a pointer to v, for JSONSchema Minimum/Maximum literals.
func Bound(v float64) *float64 {
	return &v
}
