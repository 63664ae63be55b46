package chat

const (
	RoleUser      = "user"
	RoleAssistant = "assistant" // storyteller
	RoleSystem    = "system"    // format and safety instructions
)

// Message is a single message in an LLM conversation. The shape
// matches what the provider APIs accept, so prompt builders can hand
// their output straight to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response is the raw text returned by a provider, before any
// segment parsing.
type Response struct {
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
}
