// In file: internal/tools/executor.go
package tools

import "context"

// ToolExecutor defines the standard interface for any tool adapter.
//
// By having all tools implement this interface, the server can list and
// execute them in a standardized, plug-and-play fashion without needing to
// know the specific details of each tool's implementation.
type ToolExecutor interface {
	// Definition returns the tool's descriptor, which is provided to the
	// planner so it understands the tool's capabilities, name, and arguments.
	Definition() Tool

	// Execute runs the tool once. It receives the arguments as a JSON string,
	// which the planner generates based on the tool's schema. Every failure is
	// reported as an error Output; Execute never panics or returns a Go error.
	Execute(ctx context.Context, arguments string) Output
}
