package card

import (
	"stampcard/internal/models"
	"stampcard/internal/structures"
	"stampcard/internal/testutil"
	"stampcard/internal/view"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testPrefix = "zerovity_"

func testCardConfig() structures.CardConfig {
	return structures.CardConfig{
		TotalStamps:     5,
		CompletionDelay: 600 * time.Millisecond,
		DateLayout:      "2006. 1. 2.",
		MorningMarker:   "오전",
		AfternoonMarker: "오후",
		Timezone:        "UTC",
	}
}

func newTestDocument(t *testing.T) *view.Document {
	t.Helper()
	doc, err := view.NewDocument(5)
	require.NoError(t, err)
	return doc
}

func newTestFormatter(t *testing.T) *DateFormatter {
	t.Helper()
	f, err := NewDateFormatter(testCardConfig())
	require.NoError(t, err)
	return f
}

func encodeLog(t *testing.T, entries ...models.HistoryEntry) string {
	t.Helper()
	raw, err := models.EncodeHistory(entries)
	require.NoError(t, err)
	return raw
}

type fixture struct {
	doc     *view.Document
	store   *testutil.MockStore
	logger  *testutil.MockLogger
	board   *StampBoard
	history *HistoryStore
}

func newFixture(t *testing.T, items map[string]string) *fixture {
	t.Helper()
	f := &fixture{
		doc:    newTestDocument(t),
		store:  testutil.NewMockStore(items),
		logger: &testutil.MockLogger{},
	}
	f.board = NewStampBoard(5, f.doc)
	start := time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)
	f.history = NewHistoryStore(f.store, testPrefix, newTestFormatter(t), testutil.StepClock(start, time.Minute), f.logger)
	return f
}

func (f *fixture) reconcile() ReconcileReport {
	return NewReconciler(f.board, f.history, f.doc, f.store, testPrefix, f.logger).Reconcile()
}
