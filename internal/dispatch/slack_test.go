package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type postedMessage struct {
	Channel string
	Text    string
	Blocks  string
}

func newMockSlackAPI(t *testing.T, fail bool) (string, func() []postedMessage) {
	t.Helper()

	var mu sync.Mutex
	var posted []postedMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/")
		require.NoError(t, r.ParseForm())
		if path != "chat.postMessage" {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
			return
		}
		if fail {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
			return
		}
		mu.Lock()
		posted = append(posted, postedMessage{
			Channel: r.PostForm.Get("channel"),
			Text:    r.PostForm.Get("text"),
			Blocks:  r.PostForm.Get("blocks"),
		})
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "channel": r.PostForm.Get("channel"), "ts": "1700000000.000100"})
	}))
	t.Cleanup(server.Close)

	return server.URL + "/api/", func() []postedMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]postedMessage(nil), posted...)
	}
}

func testEntry() domain.FeedbackEntry {
	return testutil.NewTestEntry(testutil.ExampleFeedback, testutil.ExampleResult(), time.Date(2025, 12, 11, 9, 30, 0, 0, time.UTC))
}

func TestSlackDispatcher_PostsToTeamChannel(t *testing.T) {
	url, posted := newMockSlackAPI(t, false)
	d := NewSlackDispatcher(SlackConfig{
		BotToken: "xoxb-test",
		Channels: map[string]string{string(domain.TeamFrontEnd): "C-FRONT"},
		Fallback: "C-TRIAGE",
		APIURL:   url,
	}, nil)

	require.NoError(t, d.Dispatch(context.Background(), testEntry()))

	msgs := posted()
	require.Len(t, msgs, 1)
	assert.Equal(t, "C-FRONT", msgs[0].Channel)
	assert.Contains(t, msgs[0].Text, "MAC-20251211-001A")
	assert.Contains(t, msgs[0].Blocks, "Análise de Impacto")
}

func TestSlackDispatcher_FallbackAndAudit(t *testing.T) {
	url, posted := newMockSlackAPI(t, false)
	d := NewSlackDispatcher(SlackConfig{
		BotToken: "xoxb-test",
		Fallback: "C-TRIAGE",
		Audit:    "C-AUDIT",
		APIURL:   url,
	}, nil)

	require.NoError(t, d.Dispatch(context.Background(), testEntry()))

	var channels []string
	for _, m := range posted() {
		channels = append(channels, m.Channel)
	}
	assert.ElementsMatch(t, []string{"C-TRIAGE", "C-AUDIT"}, channels)
}

func TestSlackDispatcher_NoChannel(t *testing.T) {
	d := NewSlackDispatcher(SlackConfig{BotToken: "xoxb-test"}, nil)

	err := d.Dispatch(context.Background(), testEntry())

	assert.ErrorIs(t, err, ErrNoChannel)
	assert.False(t, d.Enabled())
}

func TestSlackDispatcher_APIError(t *testing.T) {
	url, _ := newMockSlackAPI(t, true)
	d := NewSlackDispatcher(SlackConfig{BotToken: "xoxb-test", Fallback: "C-X", APIURL: url}, nil)

	err := d.Dispatch(context.Background(), testEntry())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestSlackDispatcher_ChannelForIsCaseInsensitive(t *testing.T) {
	d := NewSlackDispatcher(SlackConfig{
		BotToken: "xoxb-test",
		Channels: map[string]string{"suporte ao cliente": "C-SUP"},
		Fallback: "C-TRIAGE",
	}, nil)

	assert.Equal(t, "C-SUP", d.ChannelFor(string(domain.TeamSupport)))
	assert.Equal(t, "C-TRIAGE", d.ChannelFor(string(domain.TeamProduct)))
	assert.True(t, d.Enabled())
}

func TestTicketBlocks_MissingFieldsUsePlaceholder(t *testing.T) {
	entry := testEntry()
	entry.Analysis.Impact = ""

	blocks := TicketBlocks(entry)
	data, err := json.Marshal(blocks)
	require.NoError(t, err)

	assert.Contains(t, string(data), "—")
	assert.Contains(t, string(data), ":large_yellow_circle:")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "a b", quote("a \n b", 10))
	assert.Equal(t, "abcd…", quote("abcdefgh", 5))
}

func TestNoopDispatcher(t *testing.T) {
	var d Dispatcher = NoopDispatcher{}
	assert.NoError(t, d.Dispatch(context.Background(), testEntry()))
	assert.False(t, d.Enabled())
}
