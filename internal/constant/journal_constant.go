package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// PreviewMaxLength bounds the entry preview derived from the first user
	// message. Longer content is cut at this many runes and suffixed with
	// PreviewEllipsis.
	PreviewMaxLength = 50
	PreviewEllipsis  = "..."

	// PreviewPlaceholder is used when a session has no user message yet.
	PreviewPlaceholder = "New entry"

	// DefaultMood is reported when no message in the session carries a mood.
	DefaultMood = "neutral"

	// AgentFallbackMessage is appended as the assistant reply when the
	// remote agent call fails for any reason.
	AgentFallbackMessage = "I'm having trouble connecting right now. Please try again in a moment."

	// EntrySyncedTopicName is the in-process event topic the persistence
	// consumer subscribes to.
	EntrySyncedTopicName = "ENTRY_SYNCED"
)

// QuickPrompts are the suggested openers shown on an empty conversation.
var QuickPrompts = []string{
	"How was today?",
	"I need to vent",
	"Celebrate a win",
}
