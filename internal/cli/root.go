package cli

import (
	"time"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/config"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/dispatch"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/intelligence"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the collaborators shared by every command.
type App struct {
	Analyzer   intelligence.Analyzer
	Dispatcher dispatch.Dispatcher
	Config     config.Config
	Logger     *zap.Logger

	// Provider labels the active LLM in the TUI header.
	Provider string
	Version  string

	// NewSession builds the per-run session. Defaults to session.New.
	NewSession func() *session.Session

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) newSession() *session.Session {
	if a.NewSession != nil {
		return a.NewSession()
	}
	return session.New()
}

func (a *App) dispatcher() dispatch.Dispatcher {
	if a.Dispatcher != nil {
		return a.Dispatcher
	}
	return dispatch.NoopDispatcher{}
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "mac" command. Run without a
// subcommand it opens the TUI on a terminal and otherwise analyzes stdin
// once.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mac",
		Short:         "Módulo de Análise e Gerenciamento de Crises",
		Long:          "Transforma relatos livres de usuários em tickets de crise priorizados e roteados para a equipe responsável.",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(cmd.Context(), app)
			}
			text, err := readFeedback(cmd.InOrStdin(), nil)
			if err != nil {
				return err
			}
			return runAnalyze(cmd, app, text, analyzeOptions{output: outputText, dispatch: true})
		},
	}

	root.AddCommand(
		newAnalyzeCmd(app),
		newSchemaCmd(),
		newConfigCmd(app),
		newVersionCmd(app),
	)

	return root
}
