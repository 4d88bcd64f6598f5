package core

const (
	RelayName      = "slackrelay"
	RelayVersion   = "0.1.0"
	RelayUserAgent = RelayName + "/" + RelayVersion
	RelayRepoURL   = "https://github.com/sandevgo/slackrelay"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FallbackReply is posted instead of a model reply when the completion fails.
const FallbackReply = "⚠️ Sorry, I couldn't process that request."

// IncomingMessage is one inbound chat message, as delivered by the listener.
type IncomingMessage struct {
	Text      string
	Workspace string
	Channel   string
}

// ConversationID keys provider-side conversation memory.
//
// It is a plain "<workspace>-<channel>" join, so names containing '-' can
// collide: ("a-b", "c") and ("a", "b-c") map to the same id.
func ConversationID(workspace, channel string) string {
	return workspace + "-" + channel
}

// ConversationID of the message's workspace/channel pair.
func (m IncomingMessage) ConversationID() string {
	return ConversationID(m.Workspace, m.Channel)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptions are passed with every completion request.
type ChatOptions struct {
	Model        string
	SystemPrompt string
	// Restart drops any stored turns for the conversation before answering.
	Restart bool
}

type Completion struct {
	Choice string
}
