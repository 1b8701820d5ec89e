package expand

import "strings"

// Unescape applies the Phase A substitutions to value. indent is
// re-inserted after every line break; eol is the document line break.
func Unescape(value, indent, eol string) string {
	value = strings.ReplaceAll(value, `\r\n`, "\r\n"+indent)
	value = strings.ReplaceAll(value, `\r`, "\r"+indent)
	value = strings.ReplaceAll(value, `\n`, eol+indent)
	value = strings.ReplaceAll(value, `\t`, "\t")
	value = strings.ReplaceAll(value, `\|`, "|")
	value = strings.ReplaceAll(value, `\\`, `\`)
	return value
}
