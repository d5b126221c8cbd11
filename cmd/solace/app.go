package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/solaceapp/solace/pkg/cache"
	"github.com/solaceapp/solace/pkg/chat"
	"github.com/solaceapp/solace/pkg/config"
	"github.com/solaceapp/solace/pkg/emotion"
	"github.com/solaceapp/solace/pkg/humanize"
	"github.com/solaceapp/solace/pkg/memory"
	"github.com/solaceapp/solace/pkg/persona"
	"github.com/solaceapp/solace/pkg/providers"
)

// app holds the wired-up application stack for one CLI invocation.
type app struct {
	cfg          *config.Config
	orchestrator *chat.Orchestrator
	engine       *emotion.Engine
	store        *memory.SQLiteStore
	cancelSweep  context.CancelFunc
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func newApp(debug bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := newLogger(debug)

	dbPath := filepath.Join(cfg.WorkspacePath(), "state", "solace.db")
	store, err := memory.NewSQLiteStore(dbPath, memory.NewChargramEmbedder())
	if err != nil {
		return nil, fmt.Errorf("opening memory store: %w", err)
	}

	generator, err := providers.CreateGenerator(cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	ttl := time.Duration(cfg.Cache.TTLDays) * 24 * time.Hour
	responseCache := cache.NewResponseCache(store, ttl, cfg.Cache.HotEntries, log)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	sweeper, err := cache.NewSweeper(store, ttl, cfg.Cache.SweepSchedule, log)
	if err != nil {
		cancelSweep()
		store.Close()
		return nil, fmt.Errorf("starting cache sweeper: %w", err)
	}
	go sweeper.Run(sweepCtx)

	registry := persona.NewRegistry()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	humanizer := humanize.New(rng)

	completer := &providers.CompleterAdapter{
		Generator: generator,
		Opts: providers.GenerateOptions{
			Model:     cfg.Model.Name,
			MaxTokens: 60,
			Timeout:   time.Duration(cfg.Model.FastTimeoutSec) * time.Second,
		},
	}
	classifier := emotion.NewClassifier(log,
		emotion.NewLexiconSentiment(),
		emotion.NewLLMClassifier(completer, log),
	)
	selector := emotion.NewTemplateSelector(rng)
	engine := emotion.NewEngine(classifier, selector, store, log)

	orchestrator := chat.NewOrchestrator(cfg, registry, responseCache, store, store, generator, humanizer, log)

	return &app{
		cfg:          cfg,
		orchestrator: orchestrator,
		engine:       engine,
		store:        store,
		cancelSweep:  cancelSweep,
	}, nil
}

func (rt *app) Close() {
	rt.cancelSweep()
	if err := rt.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing memory store: %v\n", err)
	}
}

func replyRequest(message, userID, sessionID, personality string) chat.ReplyRequest {
	return chat.ReplyRequest{
		UserInput:   message,
		UserID:      userID,
		SessionID:   sessionID,
		Personality: personality,
	}
}

func runChatLoop(ctx context.Context, rt *app, userID, sessionID, personality string) {
	prompt := fmt.Sprintf("%s You: ", appName)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".solace_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nTake care! 💙")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			fmt.Println("Take care! 💙")
			return
		}

		if strings.HasPrefix(input, "/") {
			personality = handleChatCommand(rt, input, personality)
			continue
		}

		result := rt.orchestrator.Reply(ctx, replyRequest(input, userID, sessionID, personality))
		sessionID = result.SessionID
		fmt.Printf("\n%s %s\n\n", appName, result.Response)
	}
}

func handleChatCommand(rt *app, input, personality string) string {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /personalities        List available personalities")
		fmt.Println("  /switch <id>          Switch personality for this session")
		fmt.Println("  exit, quit            Leave the chat")
	case "/personalities":
		for _, info := range rt.orchestrator.AvailablePersonalities() {
			marker := " "
			if info.ID == personality {
				marker = "*"
			}
			fmt.Printf("  %s %-12s %s\n", marker, info.ID, info.Name)
		}
	case "/switch":
		if len(fields) < 2 {
			fmt.Println("Usage: /switch <personality-id>")
			return personality
		}
		profile, err := rt.orchestrator.SwitchPersonality(fields[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return personality
		}
		fmt.Printf("Switched to %s.\n", profile.Name)
		return profile.ID
	default:
		fmt.Printf("Unknown command: %s (try /help)\n", fields[0])
	}
	return personality
}
