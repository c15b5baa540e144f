// In file: internal/tools/manager.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
)

// ErrToolNotFound is returned by Execute for an unregistered name.
var ErrToolNotFound = errors.New("tool not found")

// ToolManager holds a registry of all available tools. It is populated at
// startup and only read afterwards, so concurrent Execute calls are safe.
type ToolManager struct {
	tools map[string]ToolExecutor
}

func NewToolManager() *ToolManager {
	return &ToolManager{
		tools: make(map[string]ToolExecutor),
	}
}

// Register adds a new tool to the manager's registry.
func (tm *ToolManager) Register(tool ToolExecutor) error {
	name := tool.Definition().Function.Name
	if name == "" {
		return fmt.Errorf("tool has an empty name")
	}
	if _, exists := tm.tools[name]; exists {
		return fmt.Errorf("tool '%s' already registered", name)
	}
	tm.tools[name] = tool
	return nil
}

// Names returns the registered tool names in sorted order.
func (tm *ToolManager) Names() []string {
	names := make([]string, 0, len(tm.tools))
	for name := range tm.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetDefinitions returns all registered tool definitions, sorted by name.
func (tm *ToolManager) GetDefinitions() []Tool {
	names := tm.Names()
	defs := make([]Tool, 0, len(names))
	for _, name := range names {
		defs = append(defs, tm.tools[name].Definition())
	}
	return defs
}

// Execute runs a tool by name with the given arguments. The error is only
// non-nil when no tool has that name; tool failures come back as an error Output.
func (tm *ToolManager) Execute(ctx context.Context, name, arguments string) (Output, error) {
	tool, ok := tm.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	out := tool.Execute(ctx, arguments)
	if out.Status() == StatusError {
		log.Printf("🛠️ Tool %s finished with error: %s", name, out.ErrorKind())
	} else {
		log.Printf("🛠️ Tool %s finished successfully", name)
	}
	return out, nil
}

// ExecuteCall runs one planner tool call. Calls of a type other than
// "function" are rejected like unknown tools.
func (tm *ToolManager) ExecuteCall(ctx context.Context, call ToolCall) (ToolResult, error) {
	if call.Type != "" && call.Type != ToolTypeFunction {
		return ToolResult{}, fmt.Errorf("%w: unsupported call type %q", ErrToolNotFound, call.Type)
	}
	out, err := tm.Execute(ctx, call.Function.Name, call.Function.Arguments)
	if err != nil {
		return ToolResult{}, err
	}
	return ToolResult{ToolCallID: call.ID, Name: call.Function.Name, Output: out}, nil
}

// Has reports whether a tool with that name is registered.
func (tm *ToolManager) Has(name string) bool {
	_, ok := tm.tools[name]
	return ok
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	return len(tm.tools)
}
