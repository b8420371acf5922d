// Package anthropic is a minimal hand-written client for the Anthropic
// Messages API, covering the single-turn text exchange the gateway
// needs.
package anthropic

// MessagesRequest is the request body for POST /v1/messages.
type MessagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// Message is a single conversation message with plain text content.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessagesResponse is the response body for a non-streaming messages
// request.
type MessagesResponse struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	Role       string        `json:"role"`
	Model      string        `json:"model"`
	Content    []ContentPart `json:"content"`
	StopReason string        `json:"stop_reason"`
	Usage      *Usage        `json:"usage,omitempty"`
}

// ContentPart is one block of response content.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage reports token accounting.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Text concatenates the text blocks of the response.
func (r *MessagesResponse) Text() string {
	var out string
	for _, part := range r.Content {
		if part.Type == "text" || part.Type == "" {
			out += part.Text
		}
	}
	return out
}
