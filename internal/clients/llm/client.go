// Package llm talks to language model providers that support tool calling
package llm

//go:generate mockgen -destination=mock/mock_client.go -package=llmmock github.com/KirkDiggler/rpg-forge/internal/clients/llm Client

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/rpg-forge/internal/schema"
)

// Role is the author of a message
type Role string

// Roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation
type Message struct {
	Role    Role
	Content string
}

// Request asks the model to answer by calling one or more of Tools
type Request struct {
	System   string
	Messages []Message
	Tools    []*schema.Tool
}

// ToolCall is one function invocation returned by the model
type ToolCall struct {
	Name      string
	Arguments json.RawMessage
}

// Response holds the tool calls and any text the model produced
type Response struct {
	ToolCalls []ToolCall
	Text      string
}

// Client invokes a model
type Client interface {
	// Invoke sends one request and returns the model's tool calls
	Invoke(ctx context.Context, req *Request) (*Response, error)
}

// UserMessage is shorthand for a user turn
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
