package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/cli/formatter"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// outputFormat selects how a one-shot analysis is printed.
type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(s string) error {
	switch v := outputFormat(strings.ToLower(s)); v {
	case outputText, outputJSON, outputYAML:
		*f = v
		return nil
	default:
		return errors.New("must be one of text, json, yaml")
	}
}

func (f *outputFormat) Type() string { return "format" }

type analyzeOptions struct {
	output   outputFormat
	dispatch bool
}

func newAnalyzeCmd(app *App) *cobra.Command {
	opts := analyzeOptions{output: outputText}
	var asJSON, noDispatch bool

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analisa um relato e imprime o ticket de crise",
		Long: `Envia um relato ao provedor configurado e imprime o ticket resultante.
Sem argumentos, o texto é lido da entrada padrão.`,
		Example: `  mac analyze "O app trava ao abrir o chat"
  cat relato.txt | mac analyze --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readFeedback(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if asJSON {
				opts.output = outputJSON
			}
			opts.dispatch = !noDispatch
			return runAnalyze(cmd, app, text, opts)
		},
	}

	cmd.Flags().VarP(&opts.output, "output", "o", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&asJSON, "json", false, "shorthand for --output json")
	cmd.Flags().BoolVar(&noDispatch, "no-dispatch", false, "do not post the ticket to Slack")
	cmd.MarkFlagsMutuallyExclusive("json", "output")

	return cmd
}

// readFeedback joins args, or reads all of in when there are none.
func readFeedback(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if in == nil {
		return "", nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading feedback from stdin: %w", err)
	}
	return string(data), nil
}

// runAnalyze performs one analysis attempt on a fresh session and prints
// the resulting entry.
func runAnalyze(cmd *cobra.Command, app *App, text string, opts analyzeOptions) error {
	ctx := cmd.Context()
	sess := app.newSession()

	stop := func() {}
	if app.interactive() && opts.output == outputText {
		stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Executando análise de crise...")
	}
	entry, err := sess.Submit(ctx, app.Analyzer, text)
	stop()

	if errors.Is(err, session.ErrEmptyInput) {
		return errors.New("nenhum relato informado: passe o texto como argumento ou via stdin")
	}
	if err != nil {
		if opts.output == outputText {
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.FormatError(sess.ErrorMessage(), 72))
		}
		return err
	}

	if err := printEntry(cmd.OutOrStdout(), *entry, opts.output); err != nil {
		return err
	}

	if opts.dispatch {
		dispatchEntry(cmd, app, *entry)
	}
	return nil
}

func printEntry(w io.Writer, entry domain.FeedbackEntry, format outputFormat) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(entry)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, formatter.FormatTicketCard(entry.Analysis, 0))
		return err
	}
}

// dispatchEntry posts entry when a dispatcher is configured. A failed post
// is reported but does not fail the command; the ticket was already printed.
func dispatchEntry(cmd *cobra.Command, app *App, entry domain.FeedbackEntry) {
	d := app.dispatcher()
	if !d.Enabled() {
		return
	}
	if err := d.Dispatch(cmd.Context(), entry); err != nil {
		app.logger().Warn("ticket dispatch failed", zap.String("ticket_id", entry.Analysis.TicketID), zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("aviso: ticket não enviado ao Slack: "+err.Error()))
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("ticket "+entry.Analysis.TicketID+" enviado ao Slack"))
}
