package tags

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/editor"
)

// Command is one [Commands] entry.
type Command struct {
	Index    int
	Name     string
	Template string
}

// Commands returns the [Commands] entries in file order.
func Commands(store *config.Store) []Command {
	entries := store.Entries(config.SectionCommands)
	cmds := make([]Command, len(entries))
	for i, e := range entries {
		cmds[i] = Command{Index: i, Name: e.Key, Template: e.Value}
	}
	return cmds
}

// FindCommand looks a command up by name or by its ordinal.
func FindCommand(store *config.Store, ref string) (Command, error) {
	cmds := Commands(store)
	for _, c := range cmds {
		if c.Name == ref {
			return c, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 0 && n < len(cmds) {
		return cmds[n], nil
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, ref)
}

// Wrap replaces the main selection with template, substituting the
// selected text for every pipe. When the template has a pipe, the
// original text is reselected at its new position.
func Wrap(buf editor.TextBuffer, template string) {
	sel := buf.Selection()
	text := buf.SelectedText()
	buf.ReplaceSelection(strings.ReplaceAll(template, "|", text))

	i := strings.IndexByte(template, '|')
	if i < 0 {
		return
	}
	shift := editor.ByteOffset(buf.ByteCount(template[:i]))
	buf.SetSelection(sel.Start+shift, sel.End+shift)
}

// RunCommand reloads the store and wraps the main selection with the
// command named ref. A guard set with WithCommandGuard runs after the
// reload and stops the command when it returns an error.
func (r *Resolver) RunCommand(buf editor.TextBuffer, ref string) (Command, error) {
	if err := r.store.Reload(); err != nil {
		return Command{}, err
	}
	if r.guard != nil {
		if err := r.guard(); err != nil {
			return Command{}, err
		}
	}
	cmd, err := FindCommand(r.store, ref)
	if err != nil {
		return Command{}, err
	}
	Wrap(buf, cmd.Template)
	r.logger.Debug("command applied", zap.String("command", cmd.Name), zap.Int("index", cmd.Index))
	return cmd, nil
}
