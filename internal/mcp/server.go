// Package mcp speaks the Model Context Protocol (JSON-RPC 2.0) over stdio and
// HTTP, forwarding tool calls to the tool facade.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"paytm-mcp/internal/logger"
	"paytm-mcp/internal/result"
	"paytm-mcp/internal/tools"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ServerName    = "paytm-mcp-server"
	ServerVersion = "1.0.0"

	maxMessageSize = 1 << 20
)

// ToolCaller runs tools by name.
type ToolCaller interface {
	Has(name string) bool
	Call(ctx context.Context, name string, args tools.Args) result.Result
}

type Server struct {
	caller ToolCaller
	defs   []tools.Definition
}

func NewServer(caller ToolCaller, defs []tools.Definition) *Server {
	return &Server{caller: caller, defs: defs}
}

// Serve reads line-delimited JSON-RPC messages from r and writes responses to
// w until r is exhausted or ctx is done.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	log := logger.L().With(zap.String("layer", "mcp"), zap.String("transport", "stdio"))
	reader := bufio.NewReaderSize(r, 64*1024)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			reqCtx := logger.WithRequestID(ctx, uuid.NewString())
			if resp := s.HandleMessage(reqCtx, line); resp != nil {
				if werr := writeLine(w, resp); werr != nil {
					return werr
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("stdin closed, stopping")
				return nil
			}
			return err
		}
	}
}

func writeLine(w io.Writer, resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// ServeHTTP handles one JSON-RPC message per POST. Notifications are
// acknowledged with 202 and no body.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageSize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	resp := s.HandleMessage(r.Context(), body)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleMessage decodes and answers one JSON-RPC message. It returns nil for
// notifications.
func (s *Server) HandleMessage(ctx context.Context, msg []byte) *Response {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return errorResponse(nil, codeParseError, "Parse error")
	}
	if req.JSONRPC != jsonRPCVersion || req.Method == "" {
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, codeInvalidRequest, "Invalid Request")
	}
	return s.handleRequest(ctx, &req)
}

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	log := logger.FromCtx(ctx).With(zap.String("layer", "mcp"), zap.String("method", req.Method))

	if req.IsNotification() {
		log.Debug("notification received")
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return &Response{JSONRPC: jsonRPCVersion, ID: req.ID, Result: struct{}{}}
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(ctx, req)
	default:
		log.Warn("unknown method")
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	return &Response{
		JSONRPC: jsonRPCVersion,
		ID:      req.ID,
		Result: InitializeResult{
			ProtocolVersion: protocolVersion,
			ServerInfo:      ServerInfo{Name: ServerName, Version: ServerVersion},
			Capabilities:    ServerCapabilities{Tools: &ToolsCapability{}},
		},
	}
}

func (s *Server) handleListTools(req *Request) *Response {
	list := make([]Tool, 0, len(s.defs))
	for _, d := range s.defs {
		list = append(list, Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema(),
		})
	}
	return &Response{JSONRPC: jsonRPCVersion, ID: req.ID, Result: ListToolsResult{Tools: list}}
}

func (s *Server) handleCallTool(ctx context.Context, req *Request) *Response {
	var params CallToolParams
	dec := json.NewDecoder(bytes.NewReader(req.Params))
	dec.UseNumber()
	if err := dec.Decode(&params); err != nil || params.Name == "" {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}
	if !s.caller.Has(params.Name) {
		return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	res := s.caller.Call(ctx, params.Name, tools.Args(params.Arguments))
	return &Response{
		JSONRPC: jsonRPCVersion,
		ID:      req.ID,
		Result: CallToolResult{
			Content: []ToolContent{{Type: "text", Text: res.Text()}},
			IsError: res.IsFailure() && res.Kind != result.KindClarification,
		},
	}
}

func errorResponse(id json.RawMessage, code int, message string) *Response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}
