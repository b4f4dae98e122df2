package view

import (
	"bytes"
	"stampcard/internal/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestNewDocument_BuildsSlots(t *testing.T) {
	d, err := NewDocument(5)
	require.NoError(t, err)

	assert.Len(t, d.slots, 5)
	for i := 1; i <= 5; i++ {
		assert.False(t, d.SlotActive(i))
	}
	assert.Equal(t, "0", d.CountText())
	assert.False(t, d.CompletionVisible())
	assert.Empty(t, d.HistoryTimestamps())
}

func TestDocument_SlotActiveToggle(t *testing.T) {
	d, err := NewDocument(5)
	require.NoError(t, err)

	assert.True(t, d.SetSlotActive(2, true))
	assert.True(t, d.SlotActive(2))
	assert.True(t, d.SetSlotActive(2, true))
	assert.Equal(t, "stamp-slot active", getAttr(d.slots[2], "class"))

	assert.True(t, d.SetSlotActive(2, false))
	assert.False(t, d.SlotActive(2))
	assert.Equal(t, "stamp-slot", getAttr(d.slots[2], "class"))
}

func TestDocument_MissingSlotReportsFalse(t *testing.T) {
	d, err := NewDocument(3)
	require.NoError(t, err)
	assert.False(t, d.SetSlotActive(4, true))
	assert.False(t, d.SlotActive(4))
}

func TestDocument_CompletionVisibility(t *testing.T) {
	d, err := NewDocument(5)
	require.NoError(t, err)

	d.SetCompletionVisible(true)
	assert.True(t, d.CompletionVisible())
	assert.Equal(t, "completion-message", getAttr(d.completion, "class"))

	d.SetCompletionVisible(false)
	assert.False(t, d.CompletionVisible())
}

func TestDocument_PrependKeepsNewestOnTop(t *testing.T) {
	d, err := NewDocument(5)
	require.NoError(t, err)

	d.PrependHistoryItem(models.NewLegacyEntry(1000, "a"))
	d.PrependHistoryItem(models.NewIndexedEntry(2000, "b", 2))
	d.PrependHistoryItem(models.NewIndexedEntry(3000, "c", 4))

	assert.Equal(t, []int64{3000, 2000, 1000}, d.HistoryTimestamps())
}

func TestDocument_RemoveHistoryItem(t *testing.T) {
	d, err := NewDocument(5)
	require.NoError(t, err)
	d.PrependHistoryItem(models.NewIndexedEntry(1000, "a", 1))
	d.PrependHistoryItem(models.NewIndexedEntry(2000, "b", 2))

	assert.True(t, d.RemoveHistoryItem(1000))
	assert.False(t, d.RemoveHistoryItem(1000))
	assert.Equal(t, []int64{2000}, d.HistoryTimestamps())
}

func TestDocument_HistoryItemMarkup(t *testing.T) {
	d, err := NewDocument(5)
	require.NoError(t, err)
	d.PrependHistoryItem(models.NewIndexedEntry(1700000000000, "2024. 1. 5. at 오전 9:30", 3))
	d.PrependHistoryItem(models.NewLegacyEntry(1600000000000, "<b>old</b>"))

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, `data-timestamp="1700000000000" data-kind="indexed" data-stamp-index="3"`)
	assert.Contains(t, out, `data-timestamp="1600000000000" data-kind="legacy">`)
	assert.Contains(t, out, `<div class="history-date">2024. 1. 5. at 오전 9:30</div>`)
	assert.Contains(t, out, `&lt;b&gt;old&lt;/b&gt;`)
	assert.Contains(t, out, `action="/undo?ts=1700000000000"`)
	assert.Contains(t, out, `<div class="history-points">+1</div>`)
}

func TestDocument_RenderRoundTrip(t *testing.T) {
	d, err := NewDocument(5)
	require.NoError(t, err)
	d.SetSlotActive(1, true)
	d.SetCount(1)
	d.PrependHistoryItem(models.NewIndexedEntry(1000, "a", 1))

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf))

	parsed, err := ParseDocument(&buf)
	require.NoError(t, err)
	assert.True(t, parsed.SlotActive(1))
	assert.False(t, parsed.SlotActive(2))
	assert.Equal(t, "1", parsed.CountText())
	assert.Equal(t, []int64{1000}, parsed.HistoryTimestamps())
}

func TestParseDocument_MissingRequiredElement(t *testing.T) {
	_, err := ParseDocument(strings.NewReader(`<html><body><span id="current-count"></span></body></html>`))
	assert.ErrorIs(t, err, ErrMissingElement)
}

func TestRemoveClass_KeepsOthers(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "div", Attr: []html.Attribute{{Key: "class", Val: "a hidden b"}}}
	removeClass(n, "hidden")
	assert.Equal(t, "a b", getAttr(n, "class"))
	assert.False(t, hasClass(n, "hidden"))
}
