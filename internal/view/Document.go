package view

import (
	_ "embed"
	"errors"
	"io"
	"stampcard/internal/models"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed page.html
var pageTemplate string

const (
	classSlot        = "stamp-slot"
	classActive      = "active"
	classHidden      = "hidden"
	classHistoryItem = "history-item"

	idCount      = "current-count"
	idTotal      = "total-count"
	idGrid       = "stamp-grid"
	idCompletion = "completion-message"
	idHistory    = "history-list"
)

var ErrMissingElement = errors.New("page is missing a required element")

// Document is an in-memory HTML page holding the card's visible state.
type Document struct {
	root       *html.Node
	slots      map[int]*html.Node
	count      *html.Node
	completion *html.Node
	history    *html.Node
	items      map[int64]*html.Node
}

// NewDocument builds the default page with total stamp slots.
func NewDocument(total int) (*Document, error) {
	d, err := ParseDocument(strings.NewReader(pageTemplate))
	if err != nil {
		return nil, err
	}

	grid := findByID(d.root, idGrid)
	if grid == nil {
		return nil, ErrMissingElement
	}
	for i := 1; i <= total; i++ {
		grid.AppendChild(slotNode(i))
	}
	if totalNode := findByID(d.root, idTotal); totalNode != nil {
		setText(totalNode, strconv.Itoa(total))
	}

	d.indexSlots()
	return d, nil
}

// ParseDocument reads an existing page. The count, completion and history
// elements are required; slots are whatever .stamp-slot[data-index] it has.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	d := &Document{
		root:       root,
		count:      findByID(root, idCount),
		completion: findByID(root, idCompletion),
		history:    findByID(root, idHistory),
		items:      make(map[int64]*html.Node),
	}
	if d.count == nil || d.completion == nil || d.history == nil {
		return nil, ErrMissingElement
	}
	d.indexSlots()
	return d, nil
}

func (d *Document) indexSlots() {
	d.slots = make(map[int]*html.Node)
	walk(d.root, func(n *html.Node) {
		if !hasClass(n, classSlot) {
			return
		}
		idx, err := strconv.Atoi(getAttr(n, "data-index"))
		if err != nil {
			return
		}
		d.slots[idx] = n
	})
}

func (d *Document) SetSlotActive(index int, active bool) bool {
	n, ok := d.slots[index]
	if !ok {
		return false
	}
	if active {
		addClass(n, classActive)
	} else {
		removeClass(n, classActive)
	}
	return true
}

func (d *Document) SetCount(count int) {
	setText(d.count, strconv.Itoa(count))
}

func (d *Document) SetCompletionVisible(visible bool) {
	if visible {
		removeClass(d.completion, classHidden)
	} else {
		addClass(d.completion, classHidden)
	}
}

func (d *Document) PrependHistoryItem(entry models.HistoryEntry) {
	item := historyItemNode(entry)
	if old, ok := d.items[entry.Timestamp]; ok && old.Parent != nil {
		old.Parent.RemoveChild(old)
	}
	d.history.InsertBefore(item, d.history.FirstChild)
	d.items[entry.Timestamp] = item
}

func (d *Document) RemoveHistoryItem(timestamp int64) bool {
	n, ok := d.items[timestamp]
	if !ok {
		return false
	}
	delete(d.items, timestamp)
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return true
}

func (d *Document) SlotActive(index int) bool {
	n, ok := d.slots[index]
	return ok && hasClass(n, classActive)
}

func (d *Document) CountText() string {
	return textContent(d.count)
}

func (d *Document) CompletionVisible() bool {
	return !hasClass(d.completion, classHidden)
}

// HistoryTimestamps lists rendered history items top to bottom.
func (d *Document) HistoryTimestamps() []int64 {
	var out []int64
	for c := d.history.FirstChild; c != nil; c = c.NextSibling {
		if !hasClass(c, classHistoryItem) {
			continue
		}
		ts, err := strconv.ParseInt(getAttr(c, "data-timestamp"), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, ts)
	}
	return out
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func slotNode(index int) *html.Node {
	idx := strconv.Itoa(index)
	return element(atom.Form, []html.Attribute{
		{Key: "class", Val: "stamp-form"},
		{Key: "method", Val: "post"},
		{Key: "action", Val: "/stamp?index=" + idx},
	},
		element(atom.Button, []html.Attribute{
			{Key: "type", Val: "submit"},
			{Key: "class", Val: classSlot},
			{Key: "data-index", Val: idx},
		}, text(idx)),
	)
}

func historyItemNode(entry models.HistoryEntry) *html.Node {
	ts := strconv.FormatInt(entry.Timestamp, 10)
	attrs := []html.Attribute{
		{Key: "class", Val: classHistoryItem},
		{Key: "data-timestamp", Val: ts},
		{Key: "data-kind", Val: entry.Kind.String()},
	}
	if idx, ok := entry.StampIndex(); ok {
		attrs = append(attrs, html.Attribute{Key: "data-stamp-index", Val: strconv.Itoa(idx)})
	}

	return element(atom.Div, attrs,
		element(atom.Div, classAttr("history-icon-circle"),
			element(atom.Img, []html.Attribute{
				{Key: "src", Val: "assets/coffee_cup.png"},
				{Key: "alt", Val: "Icon"},
				{Key: "class", Val: "history-icon-img"},
			}),
		),
		element(atom.Div, classAttr("history-details"),
			element(atom.Div, classAttr("history-name"), text("Stamp Earned")),
			element(atom.Div, classAttr("history-date"), text(entry.DateStr)),
		),
		element(atom.Div, classAttr("history-points"), text("+1")),
		element(atom.Form, []html.Attribute{
			{Key: "class", Val: "history-undo"},
			{Key: "method", Val: "post"},
			{Key: "action", Val: "/undo?ts=" + ts},
		},
			element(atom.Button, []html.Attribute{{Key: "type", Val: "submit"}}, text("Undo")),
		),
	)
}
