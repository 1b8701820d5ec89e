// Package configfile provides handlers for the tags file: loading it,
// opening it for editing and adding or finding a tag in it.
package configfile

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/dispatcher/execctx"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/editor"
)

// Action names for tags file operations.
const (
	ActionEdit = "config.edit" // open the tags file in the host
	ActionLoad = "config.load" // create if missing, then reload
)

// Handler owns the tags file state shared by the commands that edit or
// reload it.
type Handler struct {
	*handler.BaseNamespaceHandler

	store     *config.Store
	workspace editor.Workspace
	notifier  editor.Notifier
	logger    *zap.Logger

	mu       sync.Mutex
	dirty    bool
	snapshot *keySnapshot
	alerted  bool
}

// keySnapshot holds the menu-defining key lists of the first load.
type keySnapshot struct {
	commands []string
	toolbar  []string
}

// Option configures a Handler.
type Option func(*Handler)

// WithWorkspace sets the host workspace used to open the tags file.
func WithWorkspace(ws editor.Workspace) Option {
	return func(h *Handler) {
		h.workspace = ws
	}
}

// WithNotifier sets where notices are shown.
func WithNotifier(n editor.Notifier) Option {
	return func(h *Handler) {
		h.notifier = n
	}
}

// WithLogger sets the handler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates the config namespace handler over store.
func New(store *config.Store, opts ...Option) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("config"),
		store:                store,
		logger:               zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.Register(ActionEdit, h.edit)
	h.Register(ActionLoad, h.load)
	return h
}

// Store returns the tags store.
func (h *Handler) Store() *config.Store {
	return h.store
}

func (h *Handler) edit(_ handler.Action, _ *execctx.ExecutionContext) handler.Result {
	if _, err := h.Edit(); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func (h *Handler) load(_ handler.Action, _ *execctx.ExecutionContext) handler.Result {
	if err := h.Load(); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

// Load writes the default tags file when it is missing, reloads the
// store and checks the [Commands] and [Toolbar] keys against the first
// load.
func (h *Handler) Load() error {
	created, err := config.EnsureTagsFile(h.store.Path())
	if err != nil {
		return err
	}
	if created {
		h.logger.Info("default tags file created", zap.String("path", h.store.Path()))
	}
	if err := h.store.Reload(); err != nil {
		return err
	}
	h.checkKeys()
	return nil
}

// checkKeys records the first key lists and alerts once when they change.
func (h *Handler) checkKeys() {
	h.mu.Lock()
	if h.snapshot == nil {
		h.snapshot = h.currentKeys()
		h.mu.Unlock()
		return
	}
	section, changed := h.changedLocked()
	first := changed && !h.alerted
	if changed {
		h.alerted = true
	}
	h.mu.Unlock()

	if first {
		h.logger.Warn("menu configuration changed", zap.String("section", section))
		h.notice(fmt.Sprintf("The %s configuration has changed.\n\nPlease restart the editor for all changes to take effect", section))
	}
}

// KeysChanged reports whether the [Commands] or [Toolbar] key lists in
// the store differ from the first load, and names the changed sections.
func (h *Handler) KeysChanged() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.snapshot == nil {
		return "", false
	}
	return h.changedLocked()
}

func (h *Handler) changedLocked() (string, bool) {
	cur := h.currentKeys()
	cmds := !slices.Equal(h.snapshot.commands, cur.commands)
	bar := !slices.Equal(h.snapshot.toolbar, cur.toolbar)
	switch {
	case cmds && bar:
		return "[Commands] and [Toolbar]", true
	case cmds:
		return "[Commands]", true
	case bar:
		return "[Toolbar]", true
	default:
		return "", false
	}
}

func (h *Handler) currentKeys() *keySnapshot {
	return &keySnapshot{
		commands: h.store.GetKeys(config.SectionCommands),
		toolbar:  h.store.GetKeys(config.SectionToolbar),
	}
}

// CommandGuard refuses to run a command once the menu-defining keys have
// changed, telling the user to restart. It expects a freshly reloaded
// store.
func (h *Handler) CommandGuard() error {
	section, changed := h.KeysChanged()
	if !changed {
		return nil
	}
	h.notice(fmt.Sprintf("The %s section and thus the menu/toolbar configuration has changed.\n\nPlease restart the editor for all changes to take effect", section))
	return fmt.Errorf("%w: %s", ErrMenuChanged, section)
}

// Edit opens the tags file in the host and marks the config dirty.
func (h *Handler) Edit() (editor.TextBuffer, error) {
	if h.workspace == nil {
		return nil, ErrNoWorkspace
	}
	buf, err := h.workspace.OpenFile(h.store.Path())
	if err != nil {
		h.logger.Warn("open tags file failed", zap.String("path", h.store.Path()), zap.Error(err))
		h.notice("Failed to open the configuration file for editing:\n" + h.store.Path())
		return nil, fmt.Errorf("opening %s: %w", h.store.Path(), err)
	}
	h.mu.Lock()
	h.dirty = true
	h.mu.Unlock()
	return buf, nil
}

// IsDirty reports whether the tags file was opened for editing since the
// last save.
func (h *Handler) IsDirty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dirty
}

// OnFileSaved reloads the tags file when the host saved it after Edit.
func (h *Handler) OnFileSaved(path string) error {
	h.mu.Lock()
	dirty := h.dirty
	h.mu.Unlock()
	if !dirty || !samePath(path, h.store.Path()) {
		return nil
	}
	if err := h.Load(); err != nil {
		return err
	}
	h.mu.Lock()
	h.dirty = false
	h.mu.Unlock()
	return nil
}

// AddOrFind opens the tags file and places the caret after the '=' of
// tag, inserting a new empty entry when the tag has none. It reports
// whether the tag already existed.
func (h *Handler) AddOrFind(tag string) (bool, error) {
	buf, err := h.Edit()
	if err != nil {
		return false, err
	}
	if tag == "" || len([]rune(tag)) > config.MaxKeyLen {
		return false, nil
	}

	text := buf.TextRange(0, buf.Len())
	plan, err := config.PlanTagEdit(text, buf.EOL(), tag)
	if err != nil {
		return false, err
	}

	if plan.Exists {
		pos := editor.ByteOffset(buf.ByteCount(text[:plan.Caret]))
		buf.SetCaret(pos)
		h.notice(fmt.Sprintf("Tag found: \"%s\"", tag))
		return true, nil
	}

	announce := true
	if buf.CanRedo() {
		msg := fmt.Sprintf("You may lose your \"Redo\" history if you insert the following tag: \"%s\"\n\nContinue?", tag)
		if h.notifier == nil || !h.notifier.Confirm(msg) {
			return false, nil
		}
		announce = false
	}

	pos := editor.ByteOffset(buf.ByteCount(text[:plan.Offset]))
	buf.SetCaret(pos)
	buf.ReplaceSelection(plan.Insert)
	h.logger.Info("tag entry added", zap.String("tag", tag))
	if announce {
		h.notice(fmt.Sprintf("Tag added and ready for editing: \"%s\"", tag))
	}
	return false, nil
}

func (h *Handler) notice(text string) {
	if h.notifier != nil {
		h.notifier.Notice(text)
	}
}

// samePath compares cleaned paths without regard to case.
func samePath(a, b string) bool {
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}
