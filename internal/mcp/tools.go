package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/faq"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/knowledge"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/metrics"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/observability"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/policy"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams     = -32602 // Invalid method parameters
	ErrorCodeInternalError     = -32603 // Internal JSON-RPC error
	ErrorCodeNoKnowledgeSource = -32001 // No knowledge document was ever loaded
	ErrorCodeReloadInProgress  = -32002 // Another reload is already running
	ErrorCodeNotIndexed        = -32003 // Knowledge base not indexed yet
	ErrorCodeEmptyQuery        = -32004 // Query parameter is missing
	ErrorCodeInvalidKnowledge  = -32005 // Knowledge document could not be loaded
)

// handleAnswerQuestion handles the answer_question tool invocation
func (s *Server) handleAnswerQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	// an empty string is a valid query that simply matches nothing
	query, ok := args["query"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required", map[string]interface{}{
			"param":  "query",
			"reason": "missing or not a string",
		})
	}

	threshold := getFloatDefault(args, "threshold", s.opts.Threshold)
	topK := getIntDefault(args, "top_k", s.opts.TopK)

	res, err := s.engine.Answer(ctx, query, threshold, topK)
	switch {
	case err == nil:
	case errors.Is(err, types.ErrInvalidThreshold):
		return nil, newMCPError(ErrorCodeInvalidParams, "threshold must be between 0 and 1", map[string]interface{}{
			"param": "threshold",
			"value": threshold,
		})
	case errors.Is(err, types.ErrInvalidTopK):
		return nil, newMCPError(ErrorCodeInvalidParams, "top_k must not be negative", map[string]interface{}{
			"param": "top_k",
			"value": topK,
		})
	case errors.Is(err, types.ErrIndexNotBuilt):
		return nil, newMCPError(ErrorCodeNotIndexed, "knowledge base not indexed", nil)
	default:
		return nil, newMCPError(ErrorCodeInternalError, "answer failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(res)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.engine.Status()
	if errors.Is(err, types.ErrIndexNotBuilt) {
		response := map[string]interface{}{
			"indexed": false,
			"message": "Knowledge base not indexed. Use reload_knowledge once a document is configured.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed": true,
		"status":  status,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleDecideAction handles the decide_action tool invocation
func (s *Server) handleDecideAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	label := getLabel(args)
	if label == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "label parameter is required", map[string]interface{}{
			"param":  "label",
			"reason": "missing or empty",
		})
	}

	confidence, ok := args["confidence"].(float64)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "confidence parameter is required", map[string]interface{}{
			"param":  "confidence",
			"reason": "missing or not a number",
		})
	}

	amount := getFloatDefault(args, "amount", 0)

	outcome, err := policy.Resolve(label, confidence, amount, s.opts.Now())
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	}
	metrics.ActionsTotal.WithLabelValues(string(outcome.Action)).Inc()

	return mcp.NewToolResultText(formatJSON(outcome)), nil
}

// handleReloadKnowledge handles the reload_knowledge tool invocation
func (s *Server) handleReloadKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var loadErr *knowledge.LoadError

	err := s.engine.Reload(ctx)
	switch {
	case err == nil:
	case errors.Is(err, faq.ErrReloadInProgress):
		return nil, newMCPError(ErrorCodeReloadInProgress, "a reload is already running", nil)
	case errors.Is(err, faq.ErrNoSource):
		return nil, newMCPError(ErrorCodeNoKnowledgeSource, "no knowledge document configured", nil)
	case errors.As(err, &loadErr):
		return nil, newMCPError(ErrorCodeInvalidKnowledge, "knowledge document could not be loaded", map[string]interface{}{
			"path":  loadErr.Path,
			"error": loadErr.Err.Error(),
		})
	default:
		return nil, newMCPError(ErrorCodeInternalError, "reload failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	status, err := s.engine.Status()
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger := observability.WithOperation(s.logger, "reload_knowledge")
	logger.Info().Str("backend", string(status.Backend)).Int("entries", status.Entries).Msg("knowledge reloaded via MCP")

	response := map[string]interface{}{
		"reloaded": true,
		"backend":  status.Backend,
		"entries":  status.Entries,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getLabel accepts string labels and numeric class indices
func getLabel(args map[string]interface{}) string {
	switch v := args["label"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%d", int(v))
	default:
		return ""
	}
}

// getFloatDefault extracts a number parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	if val, ok := args[key].(float64); ok {
		return val
	}
	if val, ok := args[key].(int); ok {
		return float64(val)
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}
