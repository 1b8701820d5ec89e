package configfile

import "errors"

var (
	// ErrNoWorkspace indicates no host workspace was configured.
	ErrNoWorkspace = errors.New("configfile: no workspace")

	// ErrMenuChanged indicates the [Commands] or [Toolbar] keys changed
	// since startup, so command ordinals no longer match the host menu.
	ErrMenuChanged = errors.New("configfile: menu configuration changed")
)
