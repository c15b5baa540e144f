// In file: cmd/toolserver/handler.go
package main

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dileep-u-k/device-tools/internal/tools"

	"github.com/gin-gonic/gin"
)

// Upper bound on a tool invocation body.
const maxArgumentBytes = 1 << 20

// ToolHandler exposes the tool registry over HTTP so an external planner can
// list the tools and invoke them.
type ToolHandler struct {
	manager *tools.ToolManager
}

func NewToolHandler(manager *tools.ToolManager) *ToolHandler {
	return &ToolHandler{manager: manager}
}

// Register mounts the routes on engine.
func (h *ToolHandler) Register(engine *gin.Engine) {
	engine.GET("/healthz", h.HandleHealth)
	v1 := engine.Group("/api/v1")
	{
		v1.GET("/tools", h.HandleListTools)
		v1.POST("/tools/:name", h.HandleInvoke)
		v1.POST("/tool-calls", h.HandleToolCalls)
		v1.GET("/version", h.HandleVersion)
	}
}

// HandleListTools returns every tool definition, sorted by name.
func (h *ToolHandler) HandleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.manager.GetDefinitions()})
}

// HandleInvoke runs one tool. The request body is the raw JSON arguments
// object. Tool failures are still 200: the payload carries status "error".
func (h *ToolHandler) HandleInvoke(c *gin.Context) {
	name := c.Param("name")
	if !h.manager.Has(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + name})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxArgumentBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if len(body) > maxArgumentBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "arguments too large"})
		return
	}

	start := time.Now()
	output, err := h.manager.Execute(c.Request.Context(), name, string(bytes.TrimSpace(body)))
	if err != nil {
		if errors.Is(err, tools.ErrToolNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("📨 %s -> %s in %s", name, output.Status(), time.Since(start).Round(time.Millisecond))
	c.JSON(http.StatusOK, output)
}

// ToolCallsRequest is a batch of planner tool calls.
type ToolCallsRequest struct {
	ToolCalls []tools.ToolCall `json:"tool_calls" binding:"required"`
}

// HandleToolCalls runs a batch of tool calls in order and returns one result
// per call. The whole batch is checked before any call runs: a non-function
// call type is a 400 and an unknown tool name a 404.
func (h *ToolHandler) HandleToolCalls(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxArgumentBytes)
	var req ToolCallsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	for _, call := range req.ToolCalls {
		if call.Type != "" && call.Type != tools.ToolTypeFunction {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported call type: " + call.Type})
			return
		}
		if !h.manager.Has(call.Function.Name) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + call.Function.Name})
			return
		}
	}

	results := make([]tools.ToolResult, 0, len(req.ToolCalls))
	for _, call := range req.ToolCalls {
		result, err := h.manager.ExecuteCall(c.Request.Context(), call)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		results = append(results, result)
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *ToolHandler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, GetBuildInfo())
}

func (h *ToolHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tools": h.manager.ToolCount()})
}
