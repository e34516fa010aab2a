package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/faq"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

const (
	// ServerName is the MCP server name
	ServerName = "hotel-faq-bot"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Engine is the FAQ engine surface the tools need
type Engine interface {
	Answer(ctx context.Context, query string, threshold float64, topK int) (*types.AnswerResult, error)
	Status() (*faq.Status, error)
	Reload(ctx context.Context) error
}

// Options configures tool defaults
type Options struct {
	Logger zerolog.Logger

	// Threshold and TopK are used when a call omits them
	Threshold float64
	TopK      int

	// Now stamps issued coupons; defaults to time.Now
	Now func() time.Time
}

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	engine Engine
	opts   Options
	logger zerolog.Logger
}

// NewServer creates a new MCP server instance over engine
func NewServer(engine Engine, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Threshold == 0 {
		opts.Threshold = faq.DefaultThreshold
	}
	if opts.TopK == 0 {
		opts.TopK = faq.DefaultTopK
	}

	s := &Server{
		mcp:    server.NewMCPServer(ServerName, ServerVersion),
		engine: engine,
		opts:   opts,
		logger: opts.Logger.With().Str("component", "mcp").Logger(),
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info().Str("server", ServerName).Str("version", ServerVersion).Msg("serving MCP on stdio")
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(answerQuestionTool(), s.handleAnswerQuestion)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	s.mcp.AddTool(decideActionTool(), s.handleDecideAction)
	s.mcp.AddTool(reloadKnowledgeTool(), s.handleReloadKnowledge)
}
