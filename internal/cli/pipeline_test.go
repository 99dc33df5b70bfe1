package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/ticketwatch/internal/event"
	"github.com/pfrederiksen/ticketwatch/internal/notifier"
	"github.com/pfrederiksen/ticketwatch/internal/scraper"
	"github.com/pfrederiksen/ticketwatch/internal/telegram"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

const mixedPage = `<html><body>
<ul class="event-list">
	<li>
		<time datetime="2026-11-20T21:00:00Z">20 nov</time>
		<div class="info"><a href="https://sala.example/luna">Luna en directo</a></div>
		<span>Comprar</span>
	</li>
	<li>
		<time datetime="2026-09-01T21:00:00Z">1 sep</time>
		<div class="info"><a href="https://sala.example/pasado">Concierto pasado</a></div>
	</li>
</ul>
</body></html>`

const soldOutPage = `<ul class="event-list">
	<li><time datetime="2026-11-20T21:00:00Z"></time><div><a href="/a">A</a></div><p>ENTRADAS AGOTADAS</p></li>
	<li><time datetime="2026-12-20T21:00:00Z"></time><div><a href="/b">B</a></div><p>Entradas agotadas</p></li>
</ul>`

// telegramServer records sendMessage calls
type telegramServer struct {
	*httptest.Server
	calls  atomic.Int32
	bodies chan map[string]interface{}
}

func newTelegramServer(t *testing.T) *telegramServer {
	t.Helper()
	ts := &telegramServer{bodies: make(chan map[string]interface{}, 4)}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.calls.Add(1)
		if r.URL.Path != "/bottoken/sendMessage" {
			t.Errorf("path = %q, want /bottoken/sendMessage", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		if err := json.Unmarshal(data, &body); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		ts.bodies <- body
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newPageServer(t *testing.T, html string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTelegramPipeline(t *testing.T, ts *telegramServer) *Pipeline {
	t.Helper()
	client, err := telegram.NewClient("token", "-1001", telegram.WithBaseURL(ts.URL+"/bot"))
	require.NoError(t, err)

	return &Pipeline{
		Fetcher:  scraper.New(),
		Notifier: notifier.NewTelegramNotifier(client),
		Now:      func() time.Time { return fixedNow },
	}
}

func TestPipeline_OneAvailableEvent(t *testing.T) {
	page, _ := newPageServer(t, mixedPage)
	ts := newTelegramServer(t)

	result, err := newTelegramPipeline(t, ts).Run(context.Background(), page.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Upcoming)
	assert.Equal(t, 1, result.EventCount)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Luna en directo", result.Events[0].Title)
	assert.True(t, result.Notified)

	require.EqualValues(t, 1, ts.calls.Load())
	body := <-ts.bodies
	assert.Equal(t, "-1001", body["chat_id"])
	assert.Equal(t, "HTML", body["parse_mode"])

	text, _ := body["text"].(string)
	assert.Contains(t, text, "Hay <b>1</b> eventos disponibles")
	assert.Contains(t, text, `🎟️ <a href="https://sala.example/luna">Luna en directo</a>`)
	assert.NotContains(t, text, "Concierto pasado")
}

func TestPipeline_AllSoldOut(t *testing.T) {
	page, _ := newPageServer(t, soldOutPage)
	ts := newTelegramServer(t)

	result, err := newTelegramPipeline(t, ts).Run(context.Background(), page.URL)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Upcoming)
	assert.Equal(t, 0, result.EventCount)
	assert.Empty(t, result.Events)
	assert.False(t, result.Notified)
	assert.EqualValues(t, 0, ts.calls.Load(), "no message should be sent")
}

func TestPipeline_NoEventList(t *testing.T) {
	page, hits := newPageServer(t, `<html><body><p>Sin agenda</p></body></html>`)
	ts := newTelegramServer(t)

	result, err := newTelegramPipeline(t, ts).Run(context.Background(), page.URL)
	require.NoError(t, err)

	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, 0, result.Upcoming)
	assert.NotNil(t, result.Events)
	assert.EqualValues(t, 0, ts.calls.Load())
}

func TestPipeline_FetchError(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer page.Close()
	ts := newTelegramServer(t)

	_, err := newTelegramPipeline(t, ts).Run(context.Background(), page.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching events page")
	assert.EqualValues(t, 0, ts.calls.Load())
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, []*event.Event) error {
	return errors.New("telegram API error: Bad Request: chat not found")
}

func TestPipeline_NotifyError(t *testing.T) {
	page, _ := newPageServer(t, mixedPage)

	p := &Pipeline{
		Fetcher:  scraper.New(),
		Notifier: failingNotifier{},
		Now:      func() time.Time { return fixedNow },
	}

	_, err := p.Run(context.Background(), page.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestPipeline_WritesCalendar(t *testing.T) {
	page, _ := newPageServer(t, mixedPage)
	ts := newTelegramServer(t)
	path := filepath.Join(t.TempDir(), "eventos.ics")

	p := newTelegramPipeline(t, ts)
	p.ICSFile = path

	_, err := p.Run(context.Background(), page.URL)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Contains(t, string(data), "SUMMARY:Luna en directo")
}

func TestPipeline_DryRunIsNotNotified(t *testing.T) {
	page, _ := newPageServer(t, mixedPage)
	var preview strings.Builder

	p := &Pipeline{
		Fetcher:  scraper.New(),
		Notifier: notifier.NewDryRunNotifier(&preview),
		Now:      func() time.Time { return fixedNow },
		DryRun:   true,
	}

	result, err := p.Run(context.Background(), page.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, result.EventCount)
	assert.True(t, result.DryRun)
	assert.False(t, result.Notified)
	assert.Contains(t, preview.String(), "Hay <b>1</b> eventos disponibles")
}
