package history

// GroupScope is an open group that is closed once, usually with defer:
//
//	defer h.GroupScope("Replace Tag").End()
type GroupScope struct {
	h    *History
	open bool
}

// GroupScope opens a group named name.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{h: h, open: true}
}

// End closes the group. Later calls do nothing, so an early explicit End
// and a deferred one can coexist.
func (g *GroupScope) End() {
	if !g.open {
		return
	}
	g.open = false
	g.h.EndGroup()
}
