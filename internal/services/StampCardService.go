package services

import (
	"bytes"
	"fmt"
	"stampcard/internal/card"
	cardinterfaces "stampcard/internal/card/interfaces"
	"stampcard/internal/models"
	"stampcard/internal/providers"
	"stampcard/internal/storage/interfaces"
	"stampcard/internal/structures"
	"stampcard/internal/view"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type StampCardServiceInterface interface {
	FillStamp(index int) (bool, error)
	Undo(timestamp int64) (bool, error)
	Snapshot() models.CardSnapshot
	RenderPage() ([]byte, uint64, error)
	Version() uint64
	Report() card.ReconcileReport
	Close()
}

// StampCardService is the single card instance. Every event runs under mu,
// one at a time, and updates board, history and document before returning.
type StampCardService struct {
	mu        sync.Mutex
	conf      *structures.Config
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	store     interfaces.StoreInterface
	scheduler cardinterfaces.SchedulerInterface
	doc       *view.Document
	board     *card.StampBoard
	history   *card.HistoryStore
	report    card.ReconcileReport
	version   atomic.Uint64
}

// Clock supplies the capture instant for new history entries.
type Clock func() time.Time

func NewStampCardService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store interfaces.StoreInterface, scheduler cardinterfaces.SchedulerInterface, clock Clock) (StampCardServiceInterface, error) {
	formatter, err := card.NewDateFormatter(conf.Card)
	if err != nil {
		return nil, err
	}
	doc, err := view.NewDocument(conf.Card.TotalStamps)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	s := &StampCardService{
		conf:      conf,
		logger:    logger,
		metrics:   metrics,
		store:     store,
		scheduler: scheduler,
		doc:       doc,
	}
	s.board = card.NewStampBoard(conf.Card.TotalStamps, doc)
	s.history = card.NewHistoryStore(store, conf.Storage.KeyPrefix, formatter, clock, logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.report = card.NewReconciler(s.board, s.history, doc, store, conf.Storage.KeyPrefix, logger).Reconcile()
	logger.Infof(providers.TypeApp, "Card restored from %s: %d/%d filled %v, %d history entries",
		s.report.Source, s.report.Count, s.board.Total(), s.report.Filled, s.report.Rendered)
	if s.report.Complete {
		s.scheduleCompletion()
	}
	s.changed()

	return s, nil
}

// FillStamp earns a stamp in slot index. Filled or out-of-range slots are
// ignored and report false.
func (s *StampCardService) FillStamp(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, ok := s.board.Fill(index)
	if !ok {
		s.logger.Debugf(providers.TypePost, "Ignoring fill of slot %d", index)
		return false, nil
	}

	entry, histErr := s.history.RecordEntry(index)
	s.doc.PrependHistoryItem(entry)
	countErr := card.SaveCount(s.store, s.conf.Storage.KeyPrefix, count)

	s.metrics.IncStampsFilled()
	s.logger.Infof(providers.TypePost, "Stamp %d earned (%d/%d)", index, count, s.board.Total())

	if s.board.IsComplete() {
		s.scheduleCompletion()
	}
	s.changed()

	return true, persistErr(histErr, countErr)
}

// Undo removes the history entry with the given timestamp. Indexed entries
// also empty their slot; legacy entries only leave the log.
func (s *StampCardService) Undo(timestamp int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.history.Find(timestamp)
	if !ok {
		s.logger.Debugf(providers.TypePost, "Ignoring undo of unknown entry %d", timestamp)
		return false, nil
	}

	s.doc.RemoveHistoryItem(timestamp)
	if idx, indexed := entry.StampIndex(); indexed {
		s.board.Unfill(idx)
	}
	_, histErr := s.history.RemoveEntry(timestamp)
	countErr := card.SaveCount(s.store, s.conf.Storage.KeyPrefix, s.board.Count())

	s.metrics.IncStampsUndone()
	s.logger.Infof(providers.TypePost, "Undid %s entry %d (%d/%d)", entry.Kind, timestamp, s.board.Count(), s.board.Total())
	s.changed()

	return true, persistErr(histErr, countErr)
}

func (s *StampCardService) Snapshot() models.CardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.CardSnapshot{
		Total:             s.board.Total(),
		Count:             s.board.Count(),
		Complete:          s.board.IsComplete(),
		CompletionVisible: s.doc.CompletionVisible(),
		Slots:             make([]models.SlotState, 0, s.board.Total()),
		History:           make([]models.HistoryView, 0, s.history.Len()),
	}
	for i := 1; i <= s.board.Total(); i++ {
		snap.Slots = append(snap.Slots, models.SlotState{Index: i, Filled: s.board.IsFilled(i)})
	}
	for _, e := range s.history.Entries() {
		snap.History = append(snap.History, models.NewHistoryView(e))
	}
	return snap
}

// RenderPage returns the current page and the state version it shows.
func (s *StampCardService) RenderPage() ([]byte, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := s.doc.Render(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), s.version.Load(), nil
}

// Version changes whenever the visible state does.
func (s *StampCardService) Version() uint64 {
	return s.version.Load()
}

func (s *StampCardService) Report() card.ReconcileReport {
	return s.report
}

func (s *StampCardService) Close() {
	s.scheduler.Stop()
}

// scheduleCompletion reveals the completion message after the configured
// delay, provided the card is still complete at that point.
func (s *StampCardService) scheduleCompletion() {
	s.scheduler.Schedule(s.conf.Card.CompletionDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.board.IsComplete() || s.doc.CompletionVisible() {
			return
		}
		s.doc.SetCompletionVisible(true)
		s.metrics.IncCompletions()
		s.logger.Infof(providers.TypeApp, "Card complete")
		s.changed()
	})
}

func (s *StampCardService) changed() {
	s.version.Inc()
	s.metrics.SetCardState(s.board.Count(), s.history.Len())
}

func persistErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("card state not fully persisted: %w", err)
		}
	}
	return nil
}

func NewClock() Clock {
	return time.Now
}
