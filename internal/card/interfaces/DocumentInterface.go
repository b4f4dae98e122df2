package interfaces

import "stampcard/internal/models"

// DocumentInterface is the rendered surface the card projects its state onto.
// Methods addressing a single element report false when it is missing.
type DocumentInterface interface {
	SetSlotActive(index int, active bool) bool
	SetCount(count int)
	SetCompletionVisible(visible bool)
	PrependHistoryItem(entry models.HistoryEntry)
	RemoveHistoryItem(timestamp int64) bool
}
