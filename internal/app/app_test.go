package app

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/command"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/configfile"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/tag"
	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/engine"
	"github.com/Krazal/WebEdit/internal/suggest"
)

// host records everything the application shows.
type host struct {
	mu      sync.Mutex
	notices []string
	hints   []string
	lists   []suggest.List
	opened  map[string]*engine.Document
}

func (h *host) Hint(_ editor.ByteOffset, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hints = append(h.hints, text)
}

func (h *host) Notice(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notices = append(h.notices, text)
}

func (h *host) Confirm(string) bool { return true }

func (h *host) ShowSuggestions(list suggest.List) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lists = append(h.lists, list)
}

func (h *host) OpenFile(path string) (editor.TextBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := engine.New(engine.WithBytes(data), engine.WithPath(path))
	if h.opened == nil {
		h.opened = make(map[string]*engine.Document)
	}
	h.opened[path] = doc
	return doc, nil
}

func (h *host) noticeCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.notices)
}

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	s.ConfigDir = filepath.Join(t.TempDir(), "WebEdit")
	s.Watch = false
	return s
}

func newApp(t *testing.T, s config.Settings, h *host) (*Application, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	app, err := New(Options{Settings: s, Host: h, Logger: zap.New(core)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, logs
}

func TestNewCreatesDefaultTagsFile(t *testing.T) {
	s := testSettings(t)
	app, logs := newApp(t, s, &host{})

	data, err := os.ReadFile(s.TagsPath())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTagsFile(), data)
	assert.Contains(t, app.Store().GetKeys(config.SectionTags), "br")
	assert.Equal(t, 1, logs.FilterMessage("tags file loaded").Len())
}

func TestNewInvalidLogLevel(t *testing.T) {
	s := testSettings(t)
	s.LogLevel = "loud"

	_, err := New(Options{Settings: s})

	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "logger", initErr.Component)
}

func TestDispatchReplaceAndRecommend(t *testing.T) {
	h := &host{}
	app, _ := newApp(t, testSettings(t), h)

	doc := engine.New(engine.WithContent("<div>ul"))
	doc.SetCaret(doc.Len())
	res := app.Dispatch(handler.NewAction(tag.ActionReplace), doc)
	require.Equal(t, handler.StatusOK, res.Status, res.Error)
	assert.Equal(t, "<div><ul>\n\t<li></li>\n</ul>", doc.Text())

	doc = engine.New(engine.WithContent("br"))
	doc.SetCaret(2)
	res = app.Dispatch(handler.NewAction(tag.ActionRecommend), doc)
	require.Equal(t, handler.StatusPending, res.Status)
	require.Len(t, h.lists, 1)
	assert.True(t, h.lists[0].Exact)
}

func TestAddTagThroughSuggestion(t *testing.T) {
	h := &host{}
	s := testSettings(t)
	app, _ := newApp(t, s, h)

	doc := engine.New(engine.WithContent("zzzzzzzz"))
	doc.SetSelection(0, 8)
	require.Equal(t, handler.StatusPending, app.Dispatch(handler.NewAction(tag.ActionReplace), doc).Status)
	require.Len(t, h.lists, 1)

	res := app.Dispatch(handler.NewAction(tag.ActionSuggestionSelected).WithArg(tag.ArgText, h.lists[0].Special), doc)
	require.Equal(t, handler.StatusCancelled, res.Status)

	cfgDoc := h.opened[s.TagsPath()]
	require.NotNil(t, cfgDoc)
	assert.Contains(t, cfgDoc.Text(), "\nzzzzzzzz=")
	assert.True(t, app.ConfigFile().IsDirty())

	// The host saves the edited file.
	require.NoError(t, os.WriteFile(s.TagsPath(), []byte(cfgDoc.Text()+"\n"), 0o644))
	require.NoError(t, app.OnFileSaved(s.TagsPath()))
	assert.False(t, app.ConfigFile().IsDirty())
	assert.Contains(t, app.Store().GetKeys(config.SectionTags), "zzzzzzzz")
}

func TestCommandsRefusedAfterMenuChange(t *testing.T) {
	h := &host{}
	s := testSettings(t)
	app, _ := newApp(t, s, h)

	doc := engine.New(engine.WithContent("hi"))
	doc.SetSelection(0, 2)
	res := app.Dispatch(handler.NewAction(command.ActionName("Bold")), doc)
	require.Equal(t, handler.StatusOK, res.Status, res.Error)
	assert.Equal(t, "<b>hi</b>", doc.Text())

	require.NoError(t, os.WriteFile(s.TagsPath(), []byte("[Commands]\nStrong=<strong>|</strong>\n"), 0o644))
	doc = engine.New(engine.WithContent("hi"))
	doc.SetSelection(0, 2)
	res = app.Dispatch(handler.NewAction(command.ActionName("Strong")), doc)

	assert.Equal(t, handler.StatusCancelled, res.Status)
	assert.Equal(t, "hi", doc.Text())
	require.Len(t, h.notices, 1)
	assert.Contains(t, h.notices[0], "The [Commands] and [Toolbar] section")
}

func TestCloseLogsTotals(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app, err := New(Options{Settings: testSettings(t), Logger: zap.New(core)})
	require.NoError(t, err)

	app.Dispatch(handler.NewAction(configfile.ActionLoad), nil)
	require.NoError(t, app.Close())
	require.NoError(t, app.Close())

	entries := logs.FilterMessage("dispatch totals").All()
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(1), entries[0].ContextMap()["dispatches"])
	assert.ErrorIs(t, app.Run(context.Background()), ErrClosed)
}

func TestRunWithoutWatcherStopsOnCancel(t *testing.T) {
	app, _ := newApp(t, testSettings(t), &host{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.NoError(t, app.Run(ctx))
	assert.False(t, app.IsRunning())
}

func TestWatchReloadsTagsFile(t *testing.T) {
	s := testSettings(t)
	s.Watch = true
	h := &host{}
	app, logs := newApp(t, s, h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	require.Eventually(t, app.IsRunning, time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(s.TagsPath(), []byte("[Tags]\nhello=world\n"), 0o644))

	require.Eventually(t, func() bool {
		return slices.Equal(app.Store().GetKeys(config.SectionTags), []string{"hello"})
	}, 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return logs.FilterMessage("tags file reloaded").Len() > 0
	}, 5*time.Second, 20*time.Millisecond)
	// Both menu sections vanished: one restart notice.
	assert.Equal(t, 1, h.noticeCount())

	cancel()
	assert.NoError(t, <-done)
}
