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

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// maxMessageSize limita o tamanho de uma mensagem JSON-RPC
const maxMessageSize = 4 * 1024 * 1024

// Server atende requisições MCP sobre o Dispatcher
type Server struct {
	dispatcher *Dispatcher
	logger     logger.Logger
}

// NewServer cria um servidor MCP
func NewServer(dispatcher *Dispatcher, log logger.Logger) *Server {
	return &Server{dispatcher: dispatcher, logger: logger.OrNop(log)}
}

// HandleMessage decodifica uma mensagem e devolve a resposta, ou nil para
// notificações.
func (s *Server) HandleMessage(ctx context.Context, data []byte) *Response {
	req, err := UnmarshalRequest(data)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			s.logger.Warn("Invalid JSON-RPC message", "code", rpcErr.Code, "error", rpcErr.Message)
			return &Response{JSONRPC: JSONRPCVersion, Error: rpcErr}
		}
		return NewErrorResponse(nil, ParseError, "Parse error", err.Error())
	}
	return s.Handle(ctx, req)
}

// Handle executa uma requisição já decodificada
func (s *Server) Handle(ctx context.Context, req *Request) *Response {
	if req.IsNotification() {
		s.logger.Debug("Notification received", "method", req.Method)
		return nil
	}

	s.logger.Debug("Handling request", "method", req.Method, "id", req.ID)
	switch req.Method {
	case "initialize":
		return NewResponse(req.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities: ServerCapabilities{
				Resources: &ResourcesCapability{},
				Tools:     &ToolsCapability{},
			},
			ServerInfo: ServerInfo{Name: ServerName, Version: ServerVersion},
		})
	case "ping":
		return NewResponse(req.ID, struct{}{})
	case "tools/list":
		return NewResponse(req.ID, ToolsListResult{Tools: s.dispatcher.Tools()})
	case "tools/call":
		return s.callTool(ctx, req)
	case "resources/list":
		return NewResponse(req.ID, ResourcesListResult{Resources: s.dispatcher.Resources()})
	case "resources/read":
		return s.readResource(ctx, req)
	default:
		return NewErrorResponse(req.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

func (s *Server) callTool(ctx context.Context, req *Request) *Response {
	var params ToolsCallParams
	if rpcErr := req.bindParams(&params); rpcErr != nil {
		return &Response{JSONRPC: JSONRPCVersion, ID: req.ID, Error: rpcErr}
	}
	if params.Name == "" {
		return NewErrorResponse(req.ID, InvalidParams, "Missing tool name", nil)
	}

	result, err := s.dispatcher.Call(ctx, params.Name, params.Arguments)
	switch {
	case errors.Is(err, ErrUnknownTool), errors.Is(err, ErrInvalidArguments):
		return NewErrorResponse(req.ID, InvalidParams, err.Error(), nil)
	case err != nil:
		return NewResponse(req.ID, toolError(err))
	}

	text, err := indentJSON(result)
	if err != nil {
		return NewResponse(req.ID, toolError(err))
	}
	return NewResponse(req.ID, ToolsCallResult{Content: []Content{{Type: "text", Text: text}}})
}

func (s *Server) readResource(ctx context.Context, req *Request) *Response {
	var params ResourcesReadParams
	if rpcErr := req.bindParams(&params); rpcErr != nil {
		return &Response{JSONRPC: JSONRPCVersion, ID: req.ID, Error: rpcErr}
	}
	if params.URI == "" {
		return NewErrorResponse(req.ID, InvalidParams, "Missing resource uri", nil)
	}

	contents, err := s.dispatcher.ReadResource(ctx, params.URI)
	if errors.Is(err, ErrUnknownResource) {
		return NewErrorResponse(req.ID, InvalidParams, err.Error(), nil)
	}
	if err != nil {
		s.logger.Error("Failed to read resource", "uri", params.URI, "error", err)
		return NewErrorResponse(req.ID, InternalError, err.Error(), nil)
	}
	return NewResponse(req.ID, ResourcesReadResult{Contents: []ResourceContents{contents}})
}

func toolError(err error) ToolsCallResult {
	return ToolsCallResult{
		Content: []Content{{Type: "text", Text: err.Error()}},
		IsError: true,
	}
}

// ServeStdio lê uma mensagem JSON por linha de in e escreve as respostas em out,
// uma por linha, até EOF ou até ctx ser cancelado.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)

	s.logger.Info("MCP server listening on stdio", "server", ServerName, "version", ServerVersion)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
				default:
				}
				return nil
			}
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			resp := s.HandleMessage(ctx, line)
			if resp == nil {
				continue
			}
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
		}
	}
}

// HTTPHandler atende uma mensagem JSON-RPC por requisição POST
func (s *Server) HTTPHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxMessageSize))
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(nil, ParseError, "Parse error", err.Error()))
			return
		}

		resp := s.HandleMessage(c.Request.Context(), body)
		if resp == nil {
			c.Status(http.StatusAccepted)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
