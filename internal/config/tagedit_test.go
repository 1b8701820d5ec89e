package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyEdit(text string, edit TagEdit) string {
	return text[:edit.Offset] + edit.Insert + text[edit.Offset:]
}

func TestPlanTagEditExisting(t *testing.T) {
	text := "[Commands]\nbr=x\n[Tags]\na=<a>\nbr=<br />\n"

	edit, err := PlanTagEdit(text, "\n", "br")
	require.NoError(t, err)

	assert.True(t, edit.Exists)
	assert.Empty(t, edit.Insert)
	assert.Equal(t, "<br />\n", text[edit.Caret:], "caret must sit after the [Tags] entry's '='")
}

func TestPlanTagEditAppendsAfterLastEntry(t *testing.T) {
	text := "[Tags]\r\na=<a>\r\n; trailing comment\r\n\r\n[Toolbar]\r\nBold=b.bmp\r\n"

	edit, err := PlanTagEdit(text, "\r\n", "nav")
	require.NoError(t, err)
	require.False(t, edit.Exists)

	got := applyEdit(text, edit)
	assert.Equal(t, "[Tags]\r\na=<a>\r\nnav=\r\n; trailing comment\r\n\r\n[Toolbar]\r\nBold=b.bmp\r\n", got)
	assert.True(t, strings.HasPrefix(got[edit.Caret:], "\r\n; trailing comment"))
}

func TestPlanTagEditEmptySection(t *testing.T) {
	text := "[TAGS]\n\n[Commands]\n"

	edit, err := PlanTagEdit(text, "\n", "x")
	require.NoError(t, err)

	got := applyEdit(text, edit)
	assert.Equal(t, "[TAGS]\nx=\n\n[Commands]\n", got)
	assert.Equal(t, len("[TAGS]\nx="), edit.Caret)
}

func TestPlanTagEditLastLineWithoutBreak(t *testing.T) {
	text := "[Tags]\na=<a>"

	edit, err := PlanTagEdit(text, "\n", "b")
	require.NoError(t, err)
	assert.Equal(t, "[Tags]\na=<a>\nb=", applyEdit(text, edit))
	assert.Equal(t, len(text)+3, edit.Caret)
}

func TestPlanTagEditMissingSection(t *testing.T) {
	text := "[Commands]\nBold=<b>|</b>"

	edit, err := PlanTagEdit(text, "\n", "b")
	require.NoError(t, err)
	got := applyEdit(text, edit)
	assert.Equal(t, "[Commands]\nBold=<b>|</b>\n[Tags]\nb=", got)
	assert.Equal(t, len(got), edit.Caret)
}

func TestPlanTagEditIgnoresOtherSections(t *testing.T) {
	text := "[Commands]\nb=<b>|</b>\n[Tags]\na=<a>\n"

	edit, err := PlanTagEdit(text, "\n", "b")
	require.NoError(t, err)
	assert.False(t, edit.Exists)
	assert.Equal(t, "[Commands]\nb=<b>|</b>\n[Tags]\na=<a>\nb=\n", applyEdit(text, edit))
}

func TestPlanTagEditInvalidName(t *testing.T) {
	_, err := PlanTagEdit("[Tags]\n", "\n", "a=b")
	assert.True(t, errors.Is(err, ErrInvalidTagName))
}
