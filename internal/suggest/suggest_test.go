package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"div", "DIV", 0},
		{"flaw", "lawn", 2},
		{"árt", "art", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.a, tt.b), "Distance(%q, %q)", tt.a, tt.b)
	}
}

func TestDistanceIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "table", "Tag With Spaces", "ünïcode"} {
		assert.Zero(t, Distance(s, s), "Distance(%q, %q)", s, s)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{{"html", "hmtl"}, {"ul", "ol"}, {"script", "scrpt"}}
	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]))
	}
}

func TestQualifiesHalfLength(t *testing.T) {
	assert.True(t, qualifies(2, "abcd", "wxyz"))
	assert.False(t, qualifies(3, "abcd", "wxyz"))
	assert.True(t, qualifies(2, "abcde", "ab"))
	assert.False(t, qualifies(3, "abcde", "ab"))
}

func TestRankExactMatchIsClosest(t *testing.T) {
	tags := []string{"dib", "div", "dvi", "dig"}
	res := Rank("div", tags)

	assert.True(t, res.Exact)
	assert.Equal(t, "div", res.Closest)
	assert.Equal(t, []string{"dib", "div", "dig"}, res.Candidates)
}

func TestRankTiesKeepFirst(t *testing.T) {
	res := Rank("tabl", []string{"table", "tab", "tablet"})

	require.False(t, res.Exact)
	assert.Equal(t, "table", res.Closest)
	assert.Contains(t, res.Candidates, "tab")
}

func TestRankCaseInsensitiveIsNotExact(t *testing.T) {
	res := Rank("Div", []string{"div"})

	assert.False(t, res.Exact)
	assert.Equal(t, "div", res.Closest)
}

func TestRankNoCandidates(t *testing.T) {
	res := Rank("zzzz", []string{"div", "span"})

	assert.Empty(t, res.Candidates)
	assert.Empty(t, res.Closest)
}

func TestBuildPlacesSpecialAfterClosest(t *testing.T) {
	list := Suggest("spn", []string{"span", "Spin", "b", "spa", "span"})

	require.Equal(t, []string{"spa", "span", `[Add "spn" to WebEdit.ini]`, "Spin"}, list.Texts())
	assert.Equal(t, 1, list.Selected)
	assert.Equal(t, "span", list.Entries[list.Selected].Text)
	assert.True(t, list.Entries[2].Special)
	assert.Equal(t, IconAdd, list.Entries[2].Icon)
	assert.False(t, list.Exact)
}

func TestBuildExactOffersFind(t *testing.T) {
	list := Suggest("ul", []string{"ol", "ul", "li"})

	assert.True(t, list.Exact)
	assert.Equal(t, `[Find "ul" in WebEdit.ini]`, list.Special)
	assert.Equal(t, "ul", list.Entries[list.Selected].Text)
	assert.Equal(t, IconSearch, list.Entries[list.Selected+1].Icon)
}

func TestBuildNotFound(t *testing.T) {
	list := Suggest("qwerty", []string{"a"})

	require.Len(t, list.Entries, 1)
	assert.Equal(t, `Tag not found. Add "qwerty" to WebEdit.ini?`, list.Entries[0].Text)
	assert.True(t, list.Entries[0].Special)
	assert.Equal(t, list.Special, list.Entries[0].Text)
}
