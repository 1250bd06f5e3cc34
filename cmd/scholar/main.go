package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"optischolar/cmd/scholar/app"
	"optischolar/cmd/scholar/config"
	"optischolar/internal/api"
	"optischolar/internal/inference"
	"optischolar/internal/logging"
	"optischolar/internal/session"
	"optischolar/internal/store"
)

// Version is set at build time.
var Version = "dev"

var (
	verbose bool
	baseURL string

	logger *zap.Logger
)

// rootCmd launches the interactive shell.
var rootCmd = &cobra.Command{
	Use:   "scholar",
	Short: "OptiScholar - terminal client for academic administration",
	Long: `OptiScholar is a terminal client for the Opti-Scholar academic
administration backend.

Admins see system dashboards, schools, students and risk analytics; teachers
manage courses, attendance and AI-assisted grading; students track their
courses, grades and attendance.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "scholar" && cmd.CalledAs() == "scholar" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// loginCmd authenticates from the command line without entering the TUI.
var loginCmd = &cobra.Command{
	Use:   "login [email] [password]",
	Short: "Authenticate and persist the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		deps, cleanup, err := buildDeps(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		sess, err := deps.Sessions.Login(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		logger.Info("logged in",
			zap.String("email", sess.Email),
			zap.String("role", sess.Role))
		fmt.Printf("Logged in as %s (%s)\n", sess.DisplayName(), sess.Role)
		return nil
	},
}

// configCmd prints the active configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path, _ := config.File()
		fmt.Printf("config file:  %s\n", path)
		fmt.Printf("api base url: %s\n", cfg.APIBaseURL)
		fmt.Printf("theme:        %s\n", cfg.Theme)
		if cfg.GeminiAPIKey != "" {
			fmt.Println("gemini:       configured")
		} else {
			fmt.Println("gemini:       not configured (demo inference)")
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scholar %s\n", Version)
	},
}

// buildDeps wires the shell's collaborators from the config.
func buildDeps(cfg config.Config) (app.Deps, func(), error) {
	if baseURL != "" {
		cfg.APIBaseURL = baseURL
	}

	dbPath, err := config.StateDBPath()
	if err != nil {
		return app.Deps{}, nil, fmt.Errorf("failed to resolve state path: %w", err)
	}
	state, err := store.Open(dbPath)
	if err != nil {
		return app.Deps{}, nil, err
	}

	client := api.NewClient(cfg.APIBaseURL)

	deps := app.Deps{
		Config:     cfg,
		Client:     client,
		Sessions:   session.NewStore(client, state),
		State:      state,
		Grader:     inference.DemoGrader{},
		Assistant:  inference.DemoAssistant{},
		Recognizer: inference.DemoRecognizer{},
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := inference.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logging.Get(logging.CategoryInference).Warn("gemini unavailable, using demo inference: %v", err)
		} else {
			deps.Grader = gemini
			deps.Assistant = gemini
		}
	}

	cleanup := func() {
		state.Close()
		logging.CloseAll()
	}
	return deps, cleanup, nil
}

func runInteractive() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config unreadable, using defaults: %v\n", err)
	}

	stateDir, err := config.Dir()
	if err == nil {
		// The TUI owns the terminal, so diagnostics go to per-category files.
		if lerr := logging.Initialize(stateDir, verbose, ""); lerr != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", lerr)
		}
	}

	deps, cleanup, err := buildDeps(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p := tea.NewProgram(app.New(deps), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "api-url", "", "override the backend base URL")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
