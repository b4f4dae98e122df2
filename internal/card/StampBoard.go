package card

import (
	"stampcard/internal/card/interfaces"

	"github.com/RoaringBitmap/roaring/v2"
)

// StampBoard holds which slots are filled. The filled set is the only source
// of truth; the document is written to but never read back.
type StampBoard struct {
	total  int
	filled *roaring.Bitmap
	count  int
	doc    interfaces.DocumentInterface
}

func NewStampBoard(total int, doc interfaces.DocumentInterface) *StampBoard {
	return &StampBoard{
		total:  total,
		filled: roaring.New(),
		doc:    doc,
	}
}

func (b *StampBoard) Total() int { return b.total }

func (b *StampBoard) Count() int { return b.count }

func (b *StampBoard) InRange(index int) bool {
	return index >= 1 && index <= b.total
}

func (b *StampBoard) IsFilled(index int) bool {
	return b.InRange(index) && b.filled.Contains(uint32(index))
}

func (b *StampBoard) IsComplete() bool {
	return b.count == b.total
}

// Fill marks an empty in-range slot as filled and returns the new count.
// The bool is false when nothing changed.
func (b *StampBoard) Fill(index int) (int, bool) {
	if !b.InRange(index) || b.filled.Contains(uint32(index)) {
		return b.count, false
	}
	b.filled.Add(uint32(index))
	b.doc.SetSlotActive(index, true)
	b.recount()
	b.doc.SetCount(b.count)
	return b.count, true
}

// Unfill empties a filled slot and hides the completion message once the
// card is no longer complete.
func (b *StampBoard) Unfill(index int) (int, bool) {
	if !b.IsFilled(index) {
		return b.count, false
	}
	b.filled.Remove(uint32(index))
	b.doc.SetSlotActive(index, false)
	b.recount()
	b.doc.SetCount(b.count)
	if b.count < b.total {
		b.doc.SetCompletionVisible(false)
	}
	return b.count, true
}

// RefreshCount rewrites the count display from the current state.
func (b *StampBoard) RefreshCount() {
	b.doc.SetCount(b.count)
}

// Filled returns the filled indices in ascending order.
func (b *StampBoard) Filled() []int {
	out := make([]int, 0, b.filled.GetCardinality())
	it := b.filled.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

func (b *StampBoard) recount() {
	b.count = int(b.filled.GetCardinality())
}
