package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/solaceapp/solace/pkg/cache"
	"github.com/solaceapp/solace/pkg/config"
	"github.com/solaceapp/solace/pkg/humanize"
	"github.com/solaceapp/solace/pkg/memory"
	"github.com/solaceapp/solace/pkg/persona"
	"github.com/solaceapp/solace/pkg/providers"
)

// stopSequences keeps the model from speaking the user's next turn.
var stopSequences = []string{"User:", "\n\nUser:"}

// HistoryStore loads and persists conversation turns. Satisfied by
// memory.SQLiteStore.
type HistoryStore interface {
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]memory.Turn, error)
	SaveTurn(ctx context.Context, turn memory.Turn) (memory.Turn, error)
}

// MemoryBank recalls and stores long-term snippets. Satisfied by
// memory.SQLiteStore.
type MemoryBank interface {
	SearchSnippets(ctx context.Context, ownerID, query string, topK, candidateLimit int) ([]memory.Snippet, error)
	AddSnippet(ctx context.Context, ownerID, source, content string) (memory.Snippet, error)
}

// Cache is the FAQ answer cache. Satisfied by cache.ResponseCache.
type Cache interface {
	Get(ctx context.Context, key, personality string) (string, bool)
	Put(ctx context.Context, key, personality, response string) bool
}

// ReplyRequest is one inbound message. UserID empty means anonymous: no
// history, no memory, no persistence.
type ReplyRequest struct {
	UserInput      string
	UserID         string
	Personality    string
	UserPreference string
	SessionID      string
	FastModeHint   *bool
}

// Result is what the caller gets back. A degraded reply has the same shape
// as a normal one.
type Result struct {
	Response        string
	PersonalityUsed string
	SessionID       string
	MemoryUsed      bool
	CacheUsed       bool
}

// PersonalityInfo describes one selectable personality.
type PersonalityInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Orchestrator ties personality resolution, context assembly, caching,
// generation, and humanizing into the single Reply entrypoint.
type Orchestrator struct {
	cfg       *config.Config
	registry  *persona.Registry
	builder   *ContextBuilder
	cache     Cache
	history   HistoryStore
	memories  MemoryBank
	generator providers.Generator
	humanizer *humanize.Humanizer
	log       zerolog.Logger
}

func NewOrchestrator(
	cfg *config.Config,
	registry *persona.Registry,
	responseCache Cache,
	history HistoryStore,
	memories MemoryBank,
	generator providers.Generator,
	humanizer *humanize.Humanizer,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		registry:  registry,
		builder:   NewContextBuilder(cfg.Chat),
		cache:     responseCache,
		history:   history,
		memories:  memories,
		generator: generator,
		humanizer: humanizer,
		log:       log.With().Str("component", "chat").Logger(),
	}
}

// Reply runs the full decision policy for one message. It never returns an
// error: every failure mode degrades to a supportive fallback reply.
func (o *Orchestrator) Reply(ctx context.Context, req ReplyRequest) Result {
	profile := o.registry.Resolve(req.Personality, req.UserPreference)
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if o.cfg.Chat.EchoOnly {
		return Result{
			Response:        "[ECHO MODE] You said: " + req.UserInput,
			PersonalityUsed: profile.ID,
			SessionID:       sessionID,
		}
	}

	history := o.loadHistory(ctx, req, sessionID)
	memories := o.loadMemories(ctx, req)

	fast := FastMode(req.UserInput, history, o.cfg.Chat.FastModeMaxChars)
	if req.FastModeHint != nil {
		fast = *req.FastModeHint
	}
	request := o.builder.Build(req.UserInput, profile, history, memories, fast)

	// FAQ path: only context-free questions may touch the cache.
	key := cache.Normalize(req.UserInput)
	contextFree := !request.MemoryUsed()
	if contextFree && o.cache != nil && key != "" {
		if cached, ok := o.cache.Get(ctx, key, profile.ID); ok {
			return Result{
				Response:        cached,
				PersonalityUsed: profile.ID,
				SessionID:       sessionID,
				CacheUsed:       true,
			}
		}
	}

	raw, err := o.generate(ctx, request)
	if err != nil {
		o.log.Error().Err(err).Str("personality", profile.ID).Msg("generation failed, serving fallback")
		result := Result{
			Response:        FallbackReply(profile, req.UserInput),
			PersonalityUsed: profile.ID,
			SessionID:       sessionID,
			MemoryUsed:      request.MemoryUsed(),
		}
		o.persistTurn(ctx, req, sessionID, profile.ID, result.Response)
		return result
	}

	response := o.humanizer.Enhance(raw, req.UserInput)

	if contextFree && o.cache != nil && key != "" {
		o.cache.Put(ctx, key, profile.ID, response)
	}
	o.persistTurn(ctx, req, sessionID, profile.ID, response)

	return Result{
		Response:        response,
		PersonalityUsed: profile.ID,
		SessionID:       sessionID,
		MemoryUsed:      request.MemoryUsed(),
	}
}

func (o *Orchestrator) loadHistory(ctx context.Context, req ReplyRequest, sessionID string) []Turn {
	if req.UserID == "" || o.history == nil {
		return nil
	}
	stored, err := o.history.RecentTurns(ctx, sessionID, o.builder.HistoryWindow())
	if err != nil {
		o.log.Warn().Err(err).Msg("history load failed, continuing without")
		return nil
	}
	turns := make([]Turn, 0, len(stored)*2)
	for _, t := range stored {
		turns = append(turns,
			Turn{Role: RoleUser, Content: t.Message},
			Turn{Role: RoleAssistant, Content: t.Response},
		)
	}
	return turns
}

func (o *Orchestrator) loadMemories(ctx context.Context, req ReplyRequest) []string {
	if req.UserID == "" || o.memories == nil {
		return nil
	}
	snippets, err := o.memories.SearchSnippets(ctx, req.UserID, req.UserInput, o.cfg.Memory.TopK, o.cfg.Memory.CandidateLimit)
	if err != nil {
		o.log.Warn().Err(err).Msg("memory recall failed, continuing without")
		return nil
	}
	out := make([]string, 0, len(snippets))
	for _, sn := range snippets {
		out = append(out, sn.Content)
	}
	return out
}

func (o *Orchestrator) generate(ctx context.Context, request Request) (string, error) {
	opts := providers.GenerateOptions{
		Model:       o.cfg.Model.Name,
		MaxTokens:   o.cfg.Model.MaxTokens,
		Temperature: o.cfg.Model.Temperature,
		TopP:        o.cfg.Model.TopP,
		Stop:        stopSequences,
		Timeout:     time.Duration(o.cfg.Model.TimeoutSec) * time.Second,
	}
	if request.FastMode {
		opts.MaxTokens = o.cfg.Model.FastMaxTokens
		opts.Timeout = time.Duration(o.cfg.Model.FastTimeoutSec) * time.Second
	}

	raw, err := o.generator.Generate(ctx, request.Personality.SystemPrompt, request.Prompt(), opts)
	if err != nil {
		return "", err
	}
	if len(raw) < 10 {
		return "", fmt.Errorf("generated response too short (%d chars)", len(raw))
	}
	return raw, nil
}

func (o *Orchestrator) persistTurn(ctx context.Context, req ReplyRequest, sessionID, personalityID, response string) {
	if req.UserID == "" {
		return
	}
	if o.history != nil {
		turn := memory.Turn{
			OwnerID:     req.UserID,
			SessionID:   sessionID,
			Message:     req.UserInput,
			Response:    response,
			Personality: personalityID,
		}
		if _, err := o.history.SaveTurn(ctx, turn); err != nil {
			o.log.Warn().Err(err).Msg("turn persist failed")
		}
	}
	if o.memories != nil {
		content := "User: " + req.UserInput + "\nSolace: " + response
		if _, err := o.memories.AddSnippet(ctx, req.UserID, "conversation", content); err != nil {
			o.log.Warn().Err(err).Msg("memory write failed")
		}
	}
}

// AvailablePersonalities lists the selectable profiles.
func (o *Orchestrator) AvailablePersonalities() []PersonalityInfo {
	profiles := o.registry.List()
	out := make([]PersonalityInfo, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, PersonalityInfo{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	return out
}

// SwitchPersonality validates an explicit mode switch. Unlike Resolve, an
// unknown key here is an error so the caller can tell the user.
func (o *Orchestrator) SwitchPersonality(requested string) (persona.Profile, error) {
	if !o.registry.Known(requested) {
		return persona.Profile{}, fmt.Errorf("unknown personality %q", requested)
	}
	return o.registry.Get(requested), nil
}
