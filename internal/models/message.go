package models

// Author identifies who wrote a message
type Author int

const (
	AuthorUser Author = iota
	AuthorAssistant
)

// String returns the display role for the author
func (a Author) String() string {
	switch a {
	case AuthorUser:
		return "user"
	case AuthorAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// RenderMode selects how a message's text is turned into display output
type RenderMode int

const (
	// RenderPlain shows the text verbatim, no markup interpretation.
	RenderPlain RenderMode = iota
	// RenderLimitedMarkup applies paragraph breaks, **bold** and `code`.
	RenderLimitedMarkup
)

// String returns a short name for the render mode
func (r RenderMode) String() string {
	if r == RenderLimitedMarkup {
		return "limited-markup"
	}
	return "plain"
}

// Message is a single entry in the transcript. It is never mutated after
// being appended.
type Message struct {
	Author     Author
	Text       string
	RenderedAs RenderMode
}

// UserMessage builds the message recorded for submitted input.
// User text is always plain so typed delimiters are never reinterpreted.
func UserMessage(text string) Message {
	return Message{Author: AuthorUser, Text: text, RenderedAs: RenderPlain}
}

// AssistantMessage builds a reply message rendered with limited markup
func AssistantMessage(text string) Message {
	return Message{Author: AuthorAssistant, Text: text, RenderedAs: RenderLimitedMarkup}
}

// FallbackMessage builds an assistant message for a fixed fallback text.
// Fallbacks are literal, so no markup is applied.
func FallbackMessage(text string) Message {
	return Message{Author: AuthorAssistant, Text: text, RenderedAs: RenderPlain}
}

// Transcript is the ordered, append-only list of messages in a session
type Transcript struct {
	messages []Message
}

// Append adds a message to the end of the transcript
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Len returns the number of messages
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the messages in append order
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the most recent message and whether one exists
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// LastFrom returns the most recent message written by author
func (t *Transcript) LastFrom(author Author) (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Author == author {
			return t.messages[i], true
		}
	}
	return Message{}, false
}
