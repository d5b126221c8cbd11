package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/solaceapp/solace/pkg/config"
	"github.com/solaceapp/solace/pkg/emotion"
	"github.com/solaceapp/solace/pkg/providers"
)

func buildRootCommand() *cobra.Command {
	var showVersion bool

	root := &cobra.Command{
		Use:   appName,
		Short: "Solace - supportive wellness companion",
		Long: strings.Join([]string{
			"Solace is a local-first wellness companion. It classifies the",
			"emotional tone of what you write, remembers past conversations,",
			"and replies in one of several configurable personalities.",
		}, "\n"),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			if err := cmd.Help(); err != nil {
				return err
			}
			return fmt.Errorf("a subcommand is required")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().BoolVar(&showVersion, "version", false, "print version information")

	root.AddCommand(
		newOnboardCommand(),
		newChatCommand(),
		newPersonalitiesCommand(),
		newEmotionCommand(),
		newConfigCommand(),
		newStatusCommand(),
		newVersionCommand(),
	)

	return root
}

func newOnboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Initialize solace configuration and workspace",
		Example: strings.Join([]string{
			"  solace onboard",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnboard(cmd)
		},
	}
}

func newChatCommand() *cobra.Command {
	var (
		message     string
		userID      string
		sessionID   string
		personality string
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk with solace directly",
		Long: strings.Join([]string{
			"Chat starts an interactive session, or sends a single message",
			"with -m. With -u the conversation is persisted and earlier",
			"sessions feed memory retrieval; without it the chat is anonymous.",
		}, "\n"),
		Example: strings.Join([]string{
			"  solace chat",
			"  solace chat -m \"I'm stressed about my exam tomorrow\"",
			"  solace chat -u maya -p coach",
			"  solace chat -u maya -s 7f6d8a12 -m \"any progress since yesterday?\"",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newApp(debug)
			if err != nil {
				return err
			}
			defer rt.Close()

			if message != "" {
				result := rt.orchestrator.Reply(cmd.Context(), replyRequest(message, userID, sessionID, personality))
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s\n", appName, result.Response)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Interactive mode (Ctrl+C to exit, /help for commands)\n\n", appName)
			runChatLoop(cmd.Context(), rt, userID, sessionID, personality)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "send a single message and exit")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id for persistent history and memory")
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id to continue (default: new session)")
	cmd.Flags().StringVarP(&personality, "personality", "p", "", "personality id (see 'solace personalities')")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	return cmd
}

func newPersonalitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "personalities",
		Short: "List available personalities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newApp(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available personalities:")
			for _, info := range rt.orchestrator.AvailablePersonalities() {
				fmt.Fprintf(out, "  %-12s %s - %s\n", info.ID, info.Name, info.Description)
			}
			return nil
		},
	}
}

func newEmotionCommand() *cobra.Command {
	var (
		asJSON  bool
		userID  string
		summary bool
		days    int
	)

	cmd := &cobra.Command{
		Use:   "emotion [text]",
		Short: "Classify the emotional tone of a message",
		Long: strings.Join([]string{
			"Emotion classifies a message and prints a supportive reply. With -u",
			"the result is also recorded, and --summary prints that user's",
			"emotion counts over the last days instead of classifying.",
		}, "\n"),
		Example: strings.Join([]string{
			"  solace emotion \"I can't stop worrying about tomorrow\"",
			"  solace emotion --json \"today was actually great\"",
			"  solace emotion -u maya \"rough day at work\"",
			"  solace emotion -u maya --summary --days 30",
		}, "\n"),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if summary && userID == "" {
				return fmt.Errorf("--summary requires -u <user>")
			}
			if !summary && len(args) == 0 {
				return fmt.Errorf("text to classify is required")
			}

			rt, err := newApp(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()

			if summary {
				since := time.Now().AddDate(0, 0, -days)
				counts, err := rt.engine.Summary(cmd.Context(), userID, since)
				if err != nil {
					return fmt.Errorf("loading emotion summary: %w", err)
				}
				fmt.Fprintf(out, "Emotions for %s over the last %d days:\n", userID, days)
				for _, cat := range emotion.Categories {
					if n := counts[cat]; n > 0 {
						fmt.Fprintf(out, "  %-10s %d\n", cat, n)
					}
				}
				return nil
			}

			text := strings.Join(args, " ")

			var result emotion.Result
			if userID != "" {
				result, err = rt.engine.Track(cmd.Context(), userID, "cli", text)
				if err != nil {
					return fmt.Errorf("recording emotion: %w", err)
				}
			} else {
				result = rt.engine.Detect(cmd.Context(), text)
			}
			reply := rt.engine.ReplyFor(result)

			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "Emotion:    %s (%s)\n", result.Primary, result.PrimaryIntensity)
			fmt.Fprintf(out, "Confidence: %.2f\n", result.Confidence)
			fmt.Fprintf(out, "Method:     %s\n", result.Method)
			fmt.Fprintf(out, "\n%s\n", reply)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full classification as JSON")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "record the result for this user")
	cmd.Flags().BoolVar(&summary, "summary", false, "print emotion counts instead of classifying")
	cmd.Flags().IntVar(&days, "days", 7, "summary window in days")

	return cmd
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "File:", getConfigPath())
			fmt.Fprintln(out, string(data))
			return nil
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show solace status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func runOnboard(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Config already exists at %s\n", configPath)
		fmt.Fprint(out, "Overwrite? (y/n): ")
		reader := bufio.NewReader(cmd.InOrStdin())
		response, readErr := reader.ReadString('\n')
		if readErr != nil {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if err := config.SaveConfig(configPath, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	workspace := cfg.WorkspacePath()
	if err := os.MkdirAll(filepath.Join(workspace, "state"), 0755); err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}

	fmt.Fprintf(out, "%s is ready!\n", appName)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Make sure Ollama is running: ollama serve")
	fmt.Fprintf(out, "  2. Pull the model: ollama pull %s\n", cfg.Model.Name)
	fmt.Fprintln(out, "  3. Chat: solace chat -m \"Hello!\"")
	fmt.Fprintln(out, "  4. Check readiness: solace status")
	return nil
}

func runStatus(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	configPath := getConfigPath()

	fmt.Fprintf(out, "%s Status\n", appName)
	fmt.Fprintf(out, "Version: %s\n", formatVersion())
	fmt.Fprintln(out)

	mark := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "✗"
	}

	_, statErr := os.Stat(configPath)
	fmt.Fprintln(out, "Config:", configPath, mark(statErr == nil))

	workspace := cfg.WorkspacePath()
	_, statErr = os.Stat(workspace)
	fmt.Fprintln(out, "Workspace:", workspace, mark(statErr == nil))

	dbPath := filepath.Join(workspace, "state", "solace.db")
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Fprintln(out, "Memory DB:", dbPath, "✓")
	} else {
		fmt.Fprintln(out, "Memory DB:", dbPath, "not initialized")
	}

	fmt.Fprintf(out, "Provider: %s (%s)\n", cfg.Model.Provider, cfg.Model.Name)
	if strings.ToLower(strings.TrimSpace(cfg.Model.Provider)) != "openai" {
		ollama := providers.NewOllamaProvider(cfg.OllamaHost(), cfg.Model.Name, newLogger(false))
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		fmt.Fprintln(out, "Ollama reachable:", mark(ollama.Available(ctx)))
	} else {
		fmt.Fprintln(out, "OpenAI key:", mark(strings.TrimSpace(cfg.Providers.OpenAI.APIKey) != ""))
	}
	return nil
}
