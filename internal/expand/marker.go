package expand

// SplitAtMarker splits template around the first pipe not preceded by a
// backslash. Later pipes are left alone. ok is false when template has no
// marker, in which case before is the whole template.
func SplitAtMarker(template string) (before, after string, ok bool) {
	i := markerIndex(template)
	if i < 0 {
		return template, "", false
	}
	return template[:i], template[i+1:], true
}

// markerIndex returns the byte index of the first unescaped pipe, or -1.
func markerIndex(template string) int {
	for i := 0; i < len(template); i++ {
		if template[i] == '|' && (i == 0 || template[i-1] != '\\') {
			return i
		}
	}
	return -1
}
