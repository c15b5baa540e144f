package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dileep-u-k/device-tools/internal/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var echoEncoder = tools.NewEncoder(tools.StringField("text"))

type echoResult struct{ text string }

func (r echoResult) Fields() map[string]any { return map[string]any{"text": r.text} }
func (r echoResult) Summary() string        { return "echoed " + r.text }

// echoTool returns its "text" argument, or emptyQuery when it is blank.
type echoTool struct{}

func (echoTool) Definition() tools.Tool {
	return tools.NewFunctionTool("echo", "Echo text back.", tools.JSONSchema{
		Type:       "object",
		Properties: map[string]*tools.JSONSchema{"text": {Type: "string"}},
		Required:   []string{"text"},
	})
}

func (e echoTool) Execute(_ context.Context, arguments string) tools.Output {
	args, err := tools.ParseArguments(arguments, e.Definition().Function.Parameters)
	if err != nil {
		return echoEncoder.EncodeError(tools.NewError(tools.KindEmptyQuery, ""), nil)
	}
	return echoEncoder.Encode(echoResult{text: args.String("text")})
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	manager := tools.NewToolManager()
	require.NoError(t, manager.Register(echoTool{}))
	engine := gin.New()
	NewToolHandler(manager).Register(engine)
	return engine
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListTools(t *testing.T) {
	rec := serve(newTestEngine(t), http.MethodGet, "/api/v1/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tools []tools.Tool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Tools, 1)
	assert.Equal(t, "echo", body.Tools[0].Function.Name)
	assert.Equal(t, tools.ToolTypeFunction, body.Tools[0].Type)
}

func TestInvokeTool(t *testing.T) {
	engine := newTestEngine(t)

	rec := serve(engine, http.MethodPost, "/api/v1/tools/echo", `{"text":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, tools.StatusSuccess, body["status"])
	assert.Equal(t, "hello", body["text"])
	assert.Equal(t, "echoed hello", body["message"])

	// Tool failures are still 200 with an error payload.
	rec = serve(engine, http.MethodPost, "/api/v1/tools/echo", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, tools.StatusError, body["status"])
	assert.Equal(t, string(tools.KindEmptyQuery), body["errorKind"])
	assert.Equal(t, "", body["text"])
}

func TestInvokeUnknownTool(t *testing.T) {
	rec := serve(newTestEngine(t), http.MethodPost, "/api/v1/tools/teleport", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvokeTooLarge(t *testing.T) {
	big := `{"text":"` + strings.Repeat("a", maxArgumentBytes) + `"}`
	rec := serve(newTestEngine(t), http.MethodPost, "/api/v1/tools/echo", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestToolCalls(t *testing.T) {
	engine := newTestEngine(t)

	rec := serve(engine, http.MethodPost, "/api/v1/tool-calls", `{"tool_calls":[
		{"id":"call_1","type":"function","function":{"name":"echo","arguments":"{\"text\":\"one\"}"}},
		{"id":"call_2","type":"function","function":{"name":"echo","arguments":"{}"}}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []tools.ToolResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)
	assert.Equal(t, "call_1", body.Results[0].ToolCallID)
	assert.Equal(t, "one", body.Results[0].Output["text"])
	assert.Equal(t, "call_2", body.Results[1].ToolCallID)
	assert.Equal(t, tools.StatusError, body.Results[1].Output.Status())
}

func TestToolCallsRejectsBadRequests(t *testing.T) {
	engine := newTestEngine(t)

	rec := serve(engine, http.MethodPost, "/api/v1/tool-calls", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(engine, http.MethodPost, "/api/v1/tool-calls", `{"tool_calls":[{"id":"x","function":{"name":"teleport"}}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(engine, http.MethodPost, "/api/v1/tool-calls", `{"tool_calls":[{"id":"x","type":"retrieval","function":{"name":"echo","arguments":"{}"}}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// countingTool is echoTool that records how often it ran.
type countingTool struct {
	echoTool
	calls int
}

func (c *countingTool) Execute(ctx context.Context, arguments string) tools.Output {
	c.calls++
	return c.echoTool.Execute(ctx, arguments)
}

func TestToolCallsCheckEveryCallBeforeRunning(t *testing.T) {
	gin.SetMode(gin.TestMode)
	counter := &countingTool{}
	manager := tools.NewToolManager()
	require.NoError(t, manager.Register(counter))
	engine := gin.New()
	NewToolHandler(manager).Register(engine)

	rec := serve(engine, http.MethodPost, "/api/v1/tool-calls", `{"tool_calls":[
		{"id":"call_1","type":"function","function":{"name":"echo","arguments":"{\"text\":\"one\"}"}},
		{"id":"call_2","type":"retrieval","function":{"name":"echo","arguments":"{\"text\":\"two\"}"}}
	]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported call type")
	assert.Zero(t, counter.calls)

	rec = serve(engine, http.MethodPost, "/api/v1/tool-calls", `{"tool_calls":[
		{"id":"call_1","function":{"name":"echo","arguments":"{\"text\":\"one\"}"}},
		{"id":"call_2","type":"function","function":{"name":"teleport","arguments":"{}"}}
	]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, counter.calls)

	rec = serve(engine, http.MethodPost, "/api/v1/tool-calls", `{"tool_calls":[
		{"id":"call_1","function":{"name":"echo","arguments":"{\"text\":\"one\"}"}}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, counter.calls)
}

func TestHealthAndVersion(t *testing.T) {
	engine := newTestEngine(t)

	rec := serve(engine, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "ok", "tools": 1.0}, decodeBody(t, rec))

	rec = serve(engine, http.MethodGet, "/api/v1/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "dev", body["version"])
	assert.NotEmpty(t, body["goVersion"])
}
