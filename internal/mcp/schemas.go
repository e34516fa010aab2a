package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/faq"
)

// answerQuestionTool returns the tool definition for answer_question
func answerQuestionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "answer_question",
		Description: "Answer a guest question from the hotel knowledge base, with suggestions when nothing matches well",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The guest's question in free text",
				},
				"threshold": map[string]interface{}{
					"type":        "number",
					"description": "Minimum score (0.0-1.0) for an answer to be returned",
					"default":     faq.DefaultThreshold,
					"minimum":     0.0,
					"maximum":     1.0,
				},
				"top_k": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of alternative questions suggested on a miss",
					"default":     faq.DefaultTopK,
					"minimum":     0,
					"maximum":     faq.MaxTopK,
				},
			},
			Required: []string{"query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report the active matching backend, entry count, room types and sample questions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// decideActionTool returns the tool definition for decide_action
func decideActionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "decide_action",
		Description: "Turn a guest feedback sentiment prediction into a coupon, a refund or no action",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"label": map[string]interface{}{
					"type":        "string",
					"description": "Sentiment label: positive, neutral, negative, or a class index 0/1/2",
				},
				"confidence": map[string]interface{}{
					"type":        "number",
					"description": "Classifier confidence for the label (0.0-1.0)",
					"minimum":     0.0,
					"maximum":     1.0,
				},
				"amount": map[string]interface{}{
					"type":        "number",
					"description": "Bill amount in dollars, used to compute a refund",
					"minimum":     0.0,
				},
			},
			Required: []string{"label", "confidence"},
		},
	}
}

// reloadKnowledgeTool returns the tool definition for reload_knowledge
func reloadKnowledgeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "reload_knowledge",
		Description: "Re-read the knowledge document and atomically swap in a freshly built index",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
