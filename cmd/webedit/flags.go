package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/Krazal/WebEdit/internal/app"
	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/engine"
	"github.com/Krazal/WebEdit/internal/engine/buffer"
)

// Global flags.
var (
	flagConfigDir string
	flagSettings  string
	flagLogLevel  string
	flagEncoding  string
	flagEOL       string
	flagYes       bool
)

func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfigDir, "config-dir", "", "directory holding WebEdit.ini")
	pf.StringVar(&flagSettings, "settings", "", "settings file (.toml or .yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.StringVar(&flagEncoding, "encoding", "utf-8", "document encoding (utf-8|windows-1252|iso-8859-1)")
	pf.StringVar(&flagEOL, "eol", "", "document line ending (lf|crlf|cr); detected when empty")
	pf.BoolVarP(&flagYes, "yes", "y", false, "answer yes to confirmations")
}

// loadSettings layers the command line over the settings file and
// environment.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.LoadSettings(flagSettings)
	if err != nil {
		return config.Settings{}, err
	}
	if cmd.Flags().Changed("config-dir") {
		s.ConfigDir = flagConfigDir
	}
	if cmd.Flags().Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	return s, s.Validate()
}

// openApp builds the application for a command.
func openApp(cmd *cobra.Command, h *host, watch bool) (*app.Application, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	s.Watch = s.Watch && watch
	if !cmd.Flags().Changed("log-level") && !watch && s.LogLevel == "info" {
		// Batch runs keep stderr for the user.
		s.LogLevel = "warn"
	}
	var ah app.Host
	if h != nil {
		h.opts = []engine.Option{engine.WithTabWidth(s.TabWidth), engine.WithUseTabs(s.UseTabs)}
		ah = h
	}
	return app.New(app.Options{Settings: s, Host: ah})
}

func documentEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// lineEnding resolves the --eol flag, detecting from data when unset.
func lineEnding(name string, data []byte) (buffer.LineEnding, error) {
	if name == "" {
		return buffer.DetectLineEnding(string(data)), nil
	}
	eol, ok := buffer.ParseLineEnding(name)
	if !ok {
		return 0, fmt.Errorf("unknown line ending %q", name)
	}
	return eol, nil
}

// parseRange parses "START:END" byte offsets.
func parseRange(s string) (editor.Range, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return editor.Range{}, fmt.Errorf("selection %q: want START:END", s)
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return editor.Range{}, fmt.Errorf("selection %q: %w", s, err)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return editor.Range{}, fmt.Errorf("selection %q: %w", s, err)
	}
	if start < 0 || end < start {
		return editor.Range{}, fmt.Errorf("selection %q: want 0 <= START <= END", s)
	}
	return editor.Range{Start: editor.ByteOffset(start), End: editor.ByteOffset(end)}, nil
}

// selections merges --at carets and --select ranges.
func selections(at []int, sel []string) ([]editor.Range, error) {
	ranges := make([]editor.Range, 0, len(at)+len(sel))
	for _, pos := range at {
		if pos < 0 {
			return nil, fmt.Errorf("offset %d: must not be negative", pos)
		}
		p := editor.ByteOffset(pos)
		ranges = append(ranges, editor.Range{Start: p, End: p})
	}
	for _, s := range sel {
		r, err := parseRange(s)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("no position: use --at or --select")
	}
	return ranges, nil
}
