// Package config provides the WebEdit configuration: the tags file store
// and the process settings.
//
// # Tags file
//
// The tags file (WebEdit.ini) is an ordered list of name=value lines under
// bracketed section headers:
//
//	; comment
//	[Commands]
//	Bold=<b>|</b>
//	[Tags]
//	a=<a href="|"></a>
//	br=<br />
//
// Section names match case-insensitively. Keys are 1 to 32 letters, digits,
// spaces, underscores, hyphens or ampersands. Key lookup is exact and
// case-sensitive; the first matching line wins. Values are trimmed.
//
// Store caches one parse of the file. Callers that need to see external
// edits call Reload before reading:
//
//	store := config.NewStore(path)
//	if err := store.Reload(); err != nil {
//	    return err
//	}
//	tmpl := store.Get(config.SectionTags, "br")
//
// # Settings
//
// Settings come from defaults, then a TOML or YAML settings file, then
// WEBEDIT_ environment variables:
//
//	settings, err := config.LoadSettings("webedit.toml")
//
// # Tag editing
//
// PlanTagEdit computes where the add-or-find flow places the caret in an
// open tags file, and which text it inserts for a new tag.
package config
