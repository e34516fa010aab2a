// Package mcp implements the Model Context Protocol (MCP) server for the hotel FAQ bot.
//
// The MCP server exposes four tools to assistants and front-desk agents:
//   - answer_question: Answer a guest question from the knowledge base
//   - get_status: Report the active backend and knowledge statistics
//   - decide_action: Map a feedback sentiment to a coupon or refund
//   - reload_knowledge: Rebuild the index from the knowledge document
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// Stdout carries protocol messages only, so all logging goes to stderr.
//
// # Basic Usage
//
// The MCP server is started via the serve command:
//
//	faqbot serve --knowledge data/hotel.json
//
// # Tool: answer_question
//
//	Request:
//	{
//	  "name": "answer_question",
//	  "arguments": {
//	    "query": "what time is check in",
//	    "threshold": 0.6,
//	    "top_k": 3
//	  }
//	}
//
//	Response:
//	{
//	  "found": true,
//	  "score": 0.91,
//	  "question": "What time is check-in?",
//	  "answer": "Check-in starts at 3 PM.",
//	  "backend": "tfidf",
//	  "kind": "retrieval",
//	  "suggestions": []
//	}
//
// On a miss found is false, answer is empty and suggestions lists up to
// top_k other questions with their rounded scores. Room questions are
// answered by domain rules with score 1.0 and kind "rule".
//
// # Tool: decide_action
//
//	Request:
//	{
//	  "name": "decide_action",
//	  "arguments": {"label": "negative", "confidence": 0.2, "amount": 80}
//	}
//
//	Response:
//	{
//	  "action": "REFUND_15",
//	  "label": "negative",
//	  "confidence": 0.2,
//	  "message": "Negative (0.20). We're sorry, offering a 15% refund.",
//	  "refund": {"refund_percent": 15, "refund_amount": 12}
//	}
//
// # Error Handling
//
// Errors are returned as MCPError values with JSON-RPC style codes:
//
//	-32602  invalid parameters (threshold, top_k, label, confidence)
//	-32603  internal error
//	-32001  no knowledge document configured
//	-32002  a reload is already running
//	-32003  knowledge base not indexed yet
//	-32004  query parameter missing
//	-32005  knowledge document could not be loaded
package mcp
