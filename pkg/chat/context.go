package chat

import (
	"strings"

	"github.com/solaceapp/solace/pkg/config"
	"github.com/solaceapp/solace/pkg/persona"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one prior exchange line as seen by the prompt builder.
type Turn struct {
	Role    string
	Content string
}

// Request is the assembled input for one generation call. Built per call,
// discarded after use.
type Request struct {
	UserInput   string
	Personality persona.Profile
	Turns       []Turn
	Memories    []string
	FastMode    bool
}

// MemoryUsed reports whether any personal context survived the windows.
func (r *Request) MemoryUsed() bool {
	return len(r.Turns) > 0 || len(r.Memories) > 0
}

// Prompt renders the context block, the current user line, and the cue for
// the assistant turn. The personality system prompt travels separately in
// the provider's system slot.
func (r *Request) Prompt() string {
	var b strings.Builder

	contextParts := []string{}
	if len(r.Memories) > 0 {
		contextParts = append(contextParts, "Relevant memories from previous conversations:")
		for _, m := range r.Memories {
			contextParts = append(contextParts, "- "+m)
		}
	}
	if len(r.Turns) > 0 {
		contextParts = append(contextParts, "\nRecent conversation:")
		for _, t := range r.Turns {
			contextParts = append(contextParts, titleRole(t.Role)+": "+t.Content)
		}
	}

	if len(contextParts) > 0 {
		b.WriteString("Context:\n")
		b.WriteString(strings.Join(contextParts, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(r.UserInput)
	b.WriteString("\nSolace:")
	return b.String()
}

func titleRole(role string) string {
	switch role {
	case RoleAssistant:
		return "Assistant"
	default:
		return "User"
	}
}

// ContextBuilder windows history and memory into a bounded Request.
type ContextBuilder struct {
	historyWindow     int
	fastHistoryWindow int
	turnCharLimit     int
	memoryTopK        int
	fastMemoryTopK    int
}

func NewContextBuilder(cfg config.ChatConfig) *ContextBuilder {
	return &ContextBuilder{
		historyWindow:     cfg.HistoryWindow,
		fastHistoryWindow: cfg.FastHistoryWindow,
		turnCharLimit:     cfg.TurnCharLimit,
		memoryTopK:        cfg.MemoryTopK,
		fastMemoryTopK:    cfg.FastMemoryTopK,
	}
}

// HistoryWindow is the widest window Build may use; callers fetching
// history from storage need at most this many turns.
func (b *ContextBuilder) HistoryWindow() int {
	return b.historyWindow
}

// Build applies the history and memory windows. History must be in
// chronological order; memories must be pre-ranked most relevant first.
func (b *ContextBuilder) Build(userInput string, profile persona.Profile, history []Turn, memories []string, fastMode bool) Request {
	window := b.historyWindow
	topK := b.memoryTopK
	if fastMode {
		window = b.fastHistoryWindow
		topK = b.fastMemoryTopK
	}

	if len(history) > window {
		history = history[len(history)-window:]
	}
	turns := make([]Turn, 0, len(history))
	for _, t := range history {
		content := t.Content
		if b.turnCharLimit > 0 && len(content) > b.turnCharLimit {
			content = content[:b.turnCharLimit] + "..."
		}
		turns = append(turns, Turn{Role: t.Role, Content: content})
	}

	if len(memories) > topK {
		memories = memories[:topK]
	}
	kept := make([]string, 0, len(memories))
	for _, m := range memories {
		if strings.TrimSpace(m) != "" {
			kept = append(kept, m)
		}
	}

	return Request{
		UserInput:   userInput,
		Personality: profile,
		Turns:       turns,
		Memories:    kept,
		FastMode:    fastMode,
	}
}
