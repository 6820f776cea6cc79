package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SlackConfig selects where tickets are posted.
type SlackConfig struct {
	BotToken string
	// Channels maps a team name (equipe_responsavel) to a channel ID.
	Channels map[string]string
	// Fallback receives tickets whose team has no mapping.
	Fallback string
	// Audit, when set, receives a copy of every ticket.
	Audit string
	// APIURL overrides the Slack Web API base URL.
	APIURL string
}

// Enabled reports whether a token and at least one destination are set.
func (c SlackConfig) Enabled() bool {
	return c.BotToken != "" && (c.Fallback != "" || c.Audit != "" || len(c.Channels) > 0)
}

type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackDispatcher posts tickets as Block Kit messages.
type SlackDispatcher struct {
	api    slackPoster
	cfg    SlackConfig
	logger *zap.Logger
}

// NewSlackDispatcher creates a SlackDispatcher from cfg.
func NewSlackDispatcher(cfg SlackConfig, logger *zap.Logger) *SlackDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	var opts []slack.Option
	if cfg.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.APIURL))
	}
	return &SlackDispatcher{
		api:    slack.New(cfg.BotToken, opts...),
		cfg:    cfg,
		logger: logger,
	}
}

func (d *SlackDispatcher) Enabled() bool { return d.cfg.Enabled() }

// ChannelFor returns the channel for team, falling back to the default.
func (d *SlackDispatcher) ChannelFor(team string) string {
	if ch, ok := d.cfg.Channels[team]; ok && ch != "" {
		return ch
	}
	for name, ch := range d.cfg.Channels {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(team)) && ch != "" {
			return ch
		}
	}
	return d.cfg.Fallback
}

// Dispatch posts entry to its team channel and, if configured, to the
// audit channel. Both posts run concurrently.
func (d *SlackDispatcher) Dispatch(ctx context.Context, entry domain.FeedbackEntry) error {
	targets := d.targets(entry.Analysis.Team)
	if len(targets) == 0 {
		return fmt.Errorf("%w: %q", ErrNoChannel, entry.Analysis.Team)
	}

	blocks := TicketBlocks(entry)
	fallback := fmt.Sprintf("[%s] %s (%s)", entry.Analysis.TicketID, entry.Analysis.Priority, entry.Analysis.Team)

	g, gctx := errgroup.WithContext(ctx)
	for _, channel := range targets {
		g.Go(func() error {
			_, ts, err := d.api.PostMessageContext(gctx, channel,
				slack.MsgOptionText(fallback, false),
				slack.MsgOptionBlocks(blocks...),
			)
			if err != nil {
				return fmt.Errorf("posting ticket %s to %s: %w", entry.Analysis.TicketID, channel, err)
			}
			d.logger.Info("ticket_dispatched",
				zap.String("ticket_id", entry.Analysis.TicketID),
				zap.String("channel", channel),
				zap.String("ts", ts),
			)
			return nil
		})
	}
	return g.Wait()
}

func (d *SlackDispatcher) targets(team string) []string {
	var out []string
	if ch := d.ChannelFor(team); ch != "" {
		out = append(out, ch)
	}
	if d.cfg.Audit != "" && (len(out) == 0 || out[0] != d.cfg.Audit) {
		out = append(out, d.cfg.Audit)
	}
	return out
}

// TicketBlocks renders entry as Slack Block Kit blocks.
func TicketBlocks(entry domain.FeedbackEntry) []slack.Block {
	r := entry.Analysis
	field := func(label, value string) *slack.TextBlockObject {
		if strings.TrimSpace(value) == "" {
			value = "—"
		}
		return slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*\n%s", label, value), false, false)
	}

	return []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("%s %s", priorityEmoji(r.PriorityLevel()), r.TicketID), true, false),
		),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			field("Prioridade", r.Priority),
			field("Sentimento", r.Sentiment),
			field("Equipe", r.Team),
		}, nil),
		slack.NewSectionBlock(field("Análise de Impacto", r.Impact), nil, nil),
		slack.NewSectionBlock(field("Ação Imediata Sugerida", r.ImmediateAction), nil, nil),
		slack.NewSectionBlock(field("Necessidade Relacionada", r.RelatedNeed), nil, nil),
		slack.NewDividerBlock(),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("> %s", quote(entry.OriginalText, 280)), false, false),
		),
	}
}

func priorityEmoji(level domain.PriorityLevel) string {
	switch level {
	case domain.LevelCritical:
		return ":rotating_light:"
	case domain.LevelHigh:
		return ":warning:"
	case domain.LevelMedium:
		return ":large_yellow_circle:"
	default:
		return ":large_blue_circle:"
	}
}

func quote(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
