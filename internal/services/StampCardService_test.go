package services

import (
	"stampcard/internal/card"
	"stampcard/internal/models"
	"stampcard/internal/structures"
	"stampcard/internal/testutil"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "zerovity_"

func testConfig(delay time.Duration) *structures.Config {
	return &structures.Config{
		Card: structures.CardConfig{
			TotalStamps:     5,
			CompletionDelay: delay,
			DateLayout:      "2006. 1. 2.",
			MorningMarker:   "오전",
			AfternoonMarker: "오후",
			Timezone:        "UTC",
		},
		Storage: structures.StorageConfig{
			Driver:    "memory",
			KeyPrefix: prefix,
		},
	}
}

type serviceFixture struct {
	svc       *StampCardService
	store     *testutil.MockStore
	metrics   *testutil.MockMetrics
	scheduler *testutil.ManualScheduler
}

func newServiceFixture(t *testing.T, items map[string]string) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		store:     testutil.NewMockStore(items),
		metrics:   &testutil.MockMetrics{},
		scheduler: &testutil.ManualScheduler{},
	}
	clock := testutil.StepClock(time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC), time.Second)
	svc, err := NewStampCardService(testConfig(600*time.Millisecond), &testutil.MockLogger{}, f.metrics, f.store, f.scheduler, clock)
	require.NoError(t, err)
	f.svc = svc.(*StampCardService)
	return f
}

func filledIndices(snap models.CardSnapshot) []int {
	var out []int
	for _, s := range snap.Slots {
		if s.Filled {
			out = append(out, s.Index)
		}
	}
	return out
}

func TestFillStamp_RecordsHistoryAndPersists(t *testing.T) {
	f := newServiceFixture(t, nil)

	applied, err := f.svc.FillStamp(3)
	require.NoError(t, err)
	assert.True(t, applied)

	snap := f.svc.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, []int{3}, filledIndices(snap))
	require.Len(t, snap.History, 1)
	require.NotNil(t, snap.History[0].StampIndex)
	assert.Equal(t, 3, *snap.History[0].StampIndex)
	assert.Equal(t, "2024. 1. 5. at 오후 2:00", snap.History[0].DateStr)

	assert.Equal(t, "1", f.store.Data[card.CountKey(prefix)])
	assert.Contains(t, f.store.Data[card.HistoryKey(prefix)], `"stampIndex":3`)
	assert.Equal(t, []int64{snap.History[0].Timestamp}, f.svc.doc.HistoryTimestamps())
	assert.Equal(t, 1, f.metrics.Filled)
}

func TestFillStamp_AlreadyFilledIsNoop(t *testing.T) {
	f := newServiceFixture(t, nil)
	_, err := f.svc.FillStamp(2)
	require.NoError(t, err)
	version := f.svc.Version()

	applied, err := f.svc.FillStamp(2)
	assert.NoError(t, err)
	assert.False(t, applied)

	snap := f.svc.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Len(t, snap.History, 1)
	assert.Equal(t, version, f.svc.Version())
}

func TestFillStamp_OutOfRangeIgnored(t *testing.T) {
	f := newServiceFixture(t, nil)

	applied, err := f.svc.FillStamp(6)
	assert.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, f.svc.Snapshot().History)
	assert.Empty(t, f.store.Writes)
}

func TestFillStamp_AnyOrderCountsDistinct(t *testing.T) {
	f := newServiceFixture(t, nil)
	for i, idx := range []int{4, 1, 5} {
		_, err := f.svc.FillStamp(idx)
		require.NoError(t, err)
		assert.Equal(t, i+1, f.svc.Snapshot().Count)
	}
	assert.Equal(t, []int{1, 4, 5}, filledIndices(f.svc.Snapshot()))
}

func TestUndo_IndexedEntryUnfillsSlot(t *testing.T) {
	f := newServiceFixture(t, nil)
	_, _ = f.svc.FillStamp(1)
	_, _ = f.svc.FillStamp(4)
	ts := f.svc.Snapshot().History[0].Timestamp

	applied, err := f.svc.Undo(ts)
	require.NoError(t, err)
	assert.True(t, applied)

	snap := f.svc.Snapshot()
	assert.Equal(t, []int{1}, filledIndices(snap))
	assert.Len(t, snap.History, 1)
	assert.Equal(t, "1", f.store.Data[card.CountKey(prefix)])
	assert.NotContains(t, f.svc.doc.HistoryTimestamps(), ts)
	assert.Equal(t, 1, f.metrics.Undone)
}

func TestUndo_LegacyEntryOnlyLeavesLog(t *testing.T) {
	f := newServiceFixture(t, map[string]string{
		card.HistoryKey(prefix): `[{"timestamp":2000,"dateStr":"b"},{"timestamp":1000,"dateStr":"a"}]`,
		card.CountKey(prefix):   "2",
	})
	require.Equal(t, card.SourceLegacyCount, f.svc.Report().Source)

	applied, err := f.svc.Undo(2000)
	require.NoError(t, err)
	assert.True(t, applied)

	snap := f.svc.Snapshot()
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, []int{1, 2}, filledIndices(snap))
	require.Len(t, snap.History, 1)
	assert.Equal(t, int64(1000), snap.History[0].Timestamp)
	assert.Equal(t, []int64{1000}, f.svc.doc.HistoryTimestamps())
}

func TestUndo_UnknownTimestampIsNoop(t *testing.T) {
	f := newServiceFixture(t, nil)
	_, _ = f.svc.FillStamp(1)

	applied, err := f.svc.Undo(12345)
	assert.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1, f.svc.Snapshot().Count)
}

func TestCompletion_ShownAfterDelay(t *testing.T) {
	f := newServiceFixture(t, nil)
	for i := 1; i <= 5; i++ {
		_, err := f.svc.FillStamp(i)
		require.NoError(t, err)
	}

	require.Equal(t, 1, f.scheduler.PendingCount())
	assert.Equal(t, 600*time.Millisecond, f.scheduler.Pending[0].Delay)
	assert.False(t, f.svc.Snapshot().CompletionVisible)

	f.scheduler.Fire()
	snap := f.svc.Snapshot()
	assert.True(t, snap.Complete)
	assert.True(t, snap.CompletionVisible)
	assert.Equal(t, 1, f.metrics.Completions)
}

func TestCompletion_UndoDuringDelaySuppressesCelebration(t *testing.T) {
	f := newServiceFixture(t, nil)
	for i := 1; i <= 5; i++ {
		_, _ = f.svc.FillStamp(i)
	}
	last := f.svc.Snapshot().History[0]
	require.Equal(t, 5, *last.StampIndex)

	_, err := f.svc.Undo(last.Timestamp)
	require.NoError(t, err)
	f.scheduler.Fire()

	snap := f.svc.Snapshot()
	assert.False(t, snap.Complete)
	assert.False(t, snap.CompletionVisible)
	assert.Equal(t, 0, f.metrics.Completions)
}

func TestCompletion_UndoAfterShownHidesMessage(t *testing.T) {
	f := newServiceFixture(t, nil)
	for i := 1; i <= 5; i++ {
		_, _ = f.svc.FillStamp(i)
	}
	f.scheduler.Fire()
	require.True(t, f.svc.Snapshot().CompletionVisible)

	_, err := f.svc.Undo(f.svc.Snapshot().History[2].Timestamp)
	require.NoError(t, err)
	assert.False(t, f.svc.Snapshot().CompletionVisible)
}

func TestCompletion_RealTimerRespectsUndoWindow(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	scheduler := card.NewScheduler()
	svc, err := NewStampCardService(testConfig(50*time.Millisecond), &testutil.MockLogger{}, metrics, testutil.NewMockStore(nil), scheduler, time.Now)
	require.NoError(t, err)
	defer svc.Close()

	for i := 1; i <= 5; i++ {
		_, err := svc.FillStamp(i)
		require.NoError(t, err)
	}
	_, err = svc.Undo(svc.Snapshot().History[0].Timestamp)
	require.NoError(t, err)

	assert.Never(t, func() bool { return svc.Snapshot().CompletionVisible }, 150*time.Millisecond, 10*time.Millisecond)

	_, err = svc.FillStamp(5)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return svc.Snapshot().CompletionVisible }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, metrics.CompletionCount())
}

func TestStartup_CompleteCardSchedulesCelebration(t *testing.T) {
	f := newServiceFixture(t, map[string]string{card.CountKey(prefix): "5"})

	assert.True(t, f.svc.Report().Complete)
	assert.Equal(t, 1, f.scheduler.PendingCount())
	f.scheduler.Fire()
	assert.True(t, f.svc.Snapshot().CompletionVisible)
}

func TestStartup_RestoresFromPersistedLog(t *testing.T) {
	first := newServiceFixture(t, nil)
	_, _ = first.svc.FillStamp(2)
	_, _ = first.svc.FillStamp(4)

	second := newServiceFixture(t, first.store.Data)
	snap := second.svc.Snapshot()
	assert.Equal(t, card.SourceHistory, second.svc.Report().Source)
	assert.Equal(t, []int{2, 4}, filledIndices(snap))
	assert.Equal(t, first.svc.Snapshot().History, snap.History)
	assert.Equal(t, first.svc.doc.HistoryTimestamps(), second.svc.doc.HistoryTimestamps())
}

func TestFillStamp_StoreFailureStillUpdatesCard(t *testing.T) {
	f := newServiceFixture(t, nil)
	f.store.FailWrites = true

	applied, err := f.svc.FillStamp(1)
	assert.True(t, applied)
	assert.ErrorIs(t, err, testutil.ErrStoreWrite)
	assert.Equal(t, 1, f.svc.Snapshot().Count)
}

func TestRenderPage_ReflectsState(t *testing.T) {
	f := newServiceFixture(t, nil)
	_, _ = f.svc.FillStamp(3)

	page, version, err := f.svc.RenderPage()
	require.NoError(t, err)
	assert.Equal(t, f.svc.Version(), version)

	html := string(page)
	assert.Contains(t, html, `class="stamp-slot active" data-index="3"`)
	assert.Contains(t, html, `<span id="current-count">1</span>`)
	assert.Contains(t, html, "Stamp Earned")
	assert.True(t, strings.Contains(html, `class="completion-message hidden"`))
}

func TestClose_StopsScheduler(t *testing.T) {
	f := newServiceFixture(t, nil)
	f.svc.Close()
	assert.True(t, f.scheduler.Stopped)
}
