package card

import (
	"stampcard/internal/card/interfaces"
	"stampcard/internal/providers"
	storage "stampcard/internal/storage/interfaces"

	"github.com/RoaringBitmap/roaring/v2"
)

type Source string

const (
	// SourceHistory: board rebuilt from entry stamp indices.
	SourceHistory Source = "history"
	// SourceLegacyCount: board rebuilt as slots 1..N from the scalar count.
	SourceLegacyCount Source = "legacyCount"
)

type ReconcileReport struct {
	Source   Source
	Filled   []int
	Count    int
	Rendered int
	Complete bool
}

// Reconciler merges the persisted log and legacy count into the board and
// the rendered history list. It runs once, before any event is handled.
type Reconciler struct {
	board     *StampBoard
	history   *HistoryStore
	doc       interfaces.DocumentInterface
	store     storage.StoreInterface
	keyPrefix string
	logger    providers.Logger
}

func NewReconciler(board *StampBoard, history *HistoryStore, doc interfaces.DocumentInterface, store storage.StoreInterface, keyPrefix string, logger providers.Logger) *Reconciler {
	return &Reconciler{
		board:     board,
		history:   history,
		doc:       doc,
		store:     store,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (r *Reconciler) Reconcile() ReconcileReport {
	report := ReconcileReport{Source: SourceLegacyCount}

	entries, _ := r.history.LoadAll()
	if len(entries) > 0 {
		// The document prepends, so feed it oldest first.
		for i := len(entries) - 1; i >= 0; i-- {
			r.doc.PrependHistoryItem(entries[i])
		}
		report.Rendered = len(entries)

		indices := roaring.New()
		for _, e := range entries {
			idx, ok := e.StampIndex()
			if !ok {
				continue
			}
			if !r.board.InRange(idx) {
				r.logger.Warnf(providers.TypeApp, "History entry %d has out-of-range stamp index %d", e.Timestamp, idx)
				continue
			}
			indices.Add(uint32(idx))
		}

		if !indices.IsEmpty() {
			it := indices.Iterator()
			for it.HasNext() {
				r.board.Fill(int(it.Next()))
			}
			report.Source = SourceHistory
		} else {
			r.logger.Infof(providers.TypeApp, "History carries no stamp indices, falling back to %s", CountKey(r.keyPrefix))
			r.fillFirst(LoadCount(r.store, r.keyPrefix, r.board.Total(), r.logger))
		}
	} else {
		r.fillFirst(LoadCount(r.store, r.keyPrefix, r.board.Total(), r.logger))
	}

	r.board.RefreshCount()

	report.Filled = r.board.Filled()
	report.Count = r.board.Count()
	report.Complete = r.board.IsComplete()
	return report
}

func (r *Reconciler) fillFirst(n int) {
	for i := 1; i <= n; i++ {
		r.board.Fill(i)
	}
}
