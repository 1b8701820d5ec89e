// Package expand turns a tag template into inserted text.
//
// Expansion runs in two phases. Phase A (Unescape) is a pure string
// substitution applied in a fixed order:
//
//	\r\n  CR LF plus the current indentation
//	\r    CR plus the current indentation
//	\n    the document line break plus the current indentation
//	\t    a tab character
//	\|    a literal pipe
//	\\    a literal backslash
//
// Phase B runs after the Phase A result has been written into the
// buffer. It scans the inserted region once per sequence kind, in this
// order, and replaces each occurrence through a buffer operation:
//
//	\f[File:Section]  file or INI section contents
//	\c                clipboard paste
//	\d:"format"       formatted date and time (strftime)
//	\u                user name
//	\x                current file name
//	\p                current file path
//	\i                tab or indent at the caret
//
// The first unescaped pipe of a template marks where the caret lands. It
// is removed before Phase A and tracked as a byte offset through Phase B.
// Without a marker the caret goes where the first \i left it, or to the
// end of the inserted text.
package expand
