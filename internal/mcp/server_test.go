package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paytm-mcp/internal/result"
	"paytm-mcp/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	calls []string
	args  []tools.Args
	res   result.Result
}

func (f *fakeCaller) Has(name string) bool {
	_, ok := tools.Lookup(name)
	return ok
}

func (f *fakeCaller) Call(ctx context.Context, name string, args tools.Args) result.Result {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.res
}

func newTestServer(res result.Result) (*Server, *fakeCaller) {
	caller := &fakeCaller{res: res}
	return NewServer(caller, tools.Definitions()), caller
}

func decodeResult(t *testing.T, resp *Response, out any) {
	t.Helper()
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	b, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Initialize", func(t *testing.T) {
		srv, _ := newTestServer(result.Result{})
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`))

		var init InitializeResult
		decodeResult(t, resp, &init)
		assert.Equal(t, "1", string(resp.ID))
		assert.Equal(t, ServerName, init.ServerInfo.Name)
		assert.NotNil(t, init.Capabilities.Tools)
	})

	t.Run("ToolsList", func(t *testing.T) {
		srv, _ := newTestServer(result.Result{})
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":"a","method":"tools/list"}`))

		var list ListToolsResult
		decodeResult(t, resp, &list)
		require.Len(t, list.Tools, 7)
		assert.Equal(t, "create_payment_link", list.Tools[0].Name)
		assert.Equal(t, "object", list.Tools[0].InputSchema["type"])
	})

	t.Run("ToolsCall", func(t *testing.T) {
		srv, caller := newTestServer(result.Empty("No payment links found."))
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"fetch_refund_list","arguments":{"page_num":2,"is_sort":false}}}`))

		var call CallToolResult
		decodeResult(t, resp, &call)
		assert.False(t, call.IsError)
		assert.Equal(t, "No payment links found.", call.Content[0].Text)
		assert.Equal(t, []string{"fetch_refund_list"}, caller.calls)
		assert.Equal(t, json.Number("2"), caller.args[0]["page_num"])
	})

	t.Run("FailureIsToolError", func(t *testing.T) {
		srv, _ := newTestServer(result.Failure(result.KindTransport, "gateway down"))
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"fetch_payment_links"}}`))

		var call CallToolResult
		decodeResult(t, resp, &call)
		assert.True(t, call.IsError)
		assert.Equal(t, "TransportFailure: gateway down", call.Content[0].Text)
	})

	t.Run("ClarificationIsNotToolError", func(t *testing.T) {
		srv, _ := newTestServer(result.Clarify("link_id is required"))
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"fetch_transactions_for_link","arguments":{}}}`))

		var call CallToolResult
		decodeResult(t, resp, &call)
		assert.False(t, call.IsError)
		assert.Equal(t, "More information needed: link_id is required", call.Content[0].Text)
	})

	t.Run("UnknownTool", func(t *testing.T) {
		srv, caller := newTestServer(result.Result{})
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"drop_tables"}}`))
		require.NotNil(t, resp.Error)
		assert.Equal(t, codeInvalidParams, resp.Error.Code)
		assert.Empty(t, caller.calls)
	})

	t.Run("Notification", func(t *testing.T) {
		srv, _ := newTestServer(result.Result{})
		assert.Nil(t, srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)))
	})

	t.Run("Ping", func(t *testing.T) {
		srv, _ := newTestServer(result.Result{})
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":6,"method":"ping"}`))
		require.NotNil(t, resp)
		assert.Nil(t, resp.Error)
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		srv, _ := newTestServer(result.Result{})
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":7,"method":"resources/list"}`))
		assert.Equal(t, codeMethodNotFound, resp.Error.Code)
	})

	t.Run("ParseError", func(t *testing.T) {
		srv, _ := newTestServer(result.Result{})
		resp := srv.HandleMessage(ctx, []byte(`{not json`))
		assert.Equal(t, codeParseError, resp.Error.Code)
		assert.Equal(t, "null", string(resp.ID))
	})

	t.Run("WrongVersion", func(t *testing.T) {
		srv, _ := newTestServer(result.Result{})
		resp := srv.HandleMessage(ctx, []byte(`{"jsonrpc":"1.0","id":8,"method":"ping"}`))
		assert.Equal(t, codeInvalidRequest, resp.Error.Code)
	})
}

func TestServe_Stdio(t *testing.T) {
	srv, caller := newTestServer(result.Success("ok"))
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"fetch_payment_links"}}`,
	}, "\n")
	var out bytes.Buffer

	require.NoError(t, srv.Serve(context.Background(), strings.NewReader(in), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"protocolVersion"`)
	assert.Contains(t, lines[1], `"id":2`)
	assert.Equal(t, []string{"fetch_payment_links"}, caller.calls)
}

func TestServe_CancelledContext(t *testing.T) {
	srv, _ := newTestServer(result.Result{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, srv.Serve(ctx, strings.NewReader(""), &bytes.Buffer{}), context.Canceled)
}

func TestServeHTTP(t *testing.T) {
	srv, _ := newTestServer(result.Success("ok"))

	t.Run("Request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Nil(t, resp.Error)
	})

	t.Run("Notification", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("WrongMethod", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
