package editor

import (
	"fmt"
	"strings"

	apperrors "easyfindshub/internal/errors"
)

// DefaultHistoryDepth bounds the undo stack.
const DefaultHistoryDepth = 100

type snapshot struct {
	doc *Document
	sel Selection
}

// Editor holds a document, the current selection and its history.
// It is not safe for concurrent use; callers serialise access.
type Editor struct {
	doc      *Document
	sel      Selection
	stored   *Marks
	undo     []snapshot
	redo     []snapshot
	depth    int
	onChange func(markup string)
}

// Option configures an Editor.
type Option func(*Editor)

// WithHistoryDepth overrides the undo depth.
func WithHistoryDepth(depth int) Option {
	return func(e *Editor) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

// WithOnChange registers the change callback at construction time.
func WithOnChange(fn func(markup string)) Option {
	return func(e *Editor) {
		e.onChange = fn
	}
}

// New creates an editor holding an empty paragraph.
func New(opts ...Option) *Editor {
	e := &Editor{
		doc:   NewDocument(),
		depth: DefaultHistoryDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnChange replaces the change callback. It is invoked synchronously with the
// new markup after every mutation, undo and redo included.
func (e *Editor) OnChange(fn func(markup string)) {
	e.onChange = fn
}

// Markup serialises the current document.
func (e *Editor) Markup() string {
	return Serialize(e.doc)
}

// Document returns a copy of the current document.
func (e *Editor) Document() *Document {
	return e.doc.Clone()
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	return e.sel
}

// CanUndo reports whether there is history to undo.
func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }

// CanRedo reports whether there is undone history to redo.
func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

// Select moves the selection. Both ends must lie inside the document.
func (e *Editor) Select(anchor, head Position) error {
	if !e.doc.contains(anchor) || !e.doc.contains(head) {
		return fmt.Errorf("%w: selection %v-%v outside document", apperrors.ErrInvalidCommand, anchor, head)
	}
	e.sel = Selection{Anchor: anchor, Head: head}
	e.stored = nil
	return nil
}

// SelectAll selects the whole document.
func (e *Editor) SelectAll() {
	e.sel = Selection{Anchor: Position{}, Head: e.doc.End()}
	e.stored = nil
}

// SetContent replaces the document with parsed markup. The replacement is undoable.
func (e *Editor) SetContent(markup string) error {
	doc, err := Parse(markup)
	if err != nil {
		return err
	}
	e.mutate(func(d *Document) (Selection, bool) {
		*d = *doc
		return Caret(d.End()), true
	})
	return nil
}

// Reset returns the editor to its initial empty state and forgets history.
func (e *Editor) Reset() {
	e.doc = NewDocument()
	e.sel = Selection{}
	e.stored = nil
	e.undo = nil
	e.redo = nil
	e.emit()
}

// ToggleBold toggles bold on the selection, or on the next typed text for a caret.
func (e *Editor) ToggleBold() bool {
	return e.toggleMark(func(m *Marks) *bool { return &m.Bold })
}

// ToggleItalic toggles italic on the selection, or on the next typed text for a caret.
func (e *Editor) ToggleItalic() bool {
	return e.toggleMark(func(m *Marks) *bool { return &m.Italic })
}

func (e *Editor) toggleMark(field func(*Marks) *bool) bool {
	if e.sel.Collapsed() {
		marks := e.caretMarks()
		*field(&marks) = !*field(&marks)
		e.stored = &marks
		return false
	}

	from, to := e.sel.Range()
	return e.mutate(func(d *Document) (Selection, bool) {
		all, found := true, false
		d.eachRange(from, to, func(b *Block, i, j int) {
			for k := i; k < j; k++ {
				if b.Inlines[k].isText() {
					found = true
					all = all && *field(&b.Inlines[k].Marks)
				}
			}
		})
		if !found {
			return e.sel, false
		}
		d.eachRange(from, to, func(b *Block, i, j int) {
			for k := i; k < j; k++ {
				if b.Inlines[k].isText() {
					*field(&b.Inlines[k].Marks) = !all
				}
			}
		})
		return e.sel, true
	})
}

// ToggleHeading turns the selected blocks into headings of level, or back into
// paragraphs when they already are.
func (e *Editor) ToggleHeading(level int) (bool, error) {
	if level != 1 && level != 2 {
		return false, fmt.Errorf("%w: heading level %d", apperrors.ErrInvalidCommand, level)
	}
	return e.toggleBlocks(
		func(b *Block) bool { return b.Type == Heading && b.Level == level },
		func(b *Block, on bool) {
			if on {
				b.Type, b.Level = Heading, level
			} else {
				b.Type, b.Level = Paragraph, 0
			}
		},
	), nil
}

// ToggleBulletList wraps or unwraps the selected blocks in a bullet list.
func (e *Editor) ToggleBulletList() bool {
	return e.toggleList(BulletItem)
}

// ToggleOrderedList wraps or unwraps the selected blocks in an ordered list.
func (e *Editor) ToggleOrderedList() bool {
	return e.toggleList(OrderedItem)
}

func (e *Editor) toggleList(kind BlockType) bool {
	return e.toggleBlocks(
		func(b *Block) bool { return b.Type == kind },
		func(b *Block, on bool) {
			if on {
				b.Type, b.Level = kind, 0
			} else {
				b.Type = Paragraph
			}
		},
	)
}

// ToggleBlockquote quotes or unquotes the selected blocks.
func (e *Editor) ToggleBlockquote() bool {
	return e.toggleBlocks(
		func(b *Block) bool { return b.Quoted },
		func(b *Block, on bool) { b.Quoted = on },
	)
}

func (e *Editor) toggleBlocks(is func(*Block) bool, set func(*Block, bool)) bool {
	from, to := e.sel.Range()
	return e.mutate(func(d *Document) (Selection, bool) {
		all := true
		for bi := from.Block; bi <= to.Block; bi++ {
			all = all && is(&d.Blocks[bi])
		}
		for bi := from.Block; bi <= to.Block; bi++ {
			set(&d.Blocks[bi], !all)
		}
		return e.sel, true
	})
}

// InsertLink links the selection to url. With a caret, the url itself is
// inserted as linked text. An empty url (cancelled prompt) changes nothing.
func (e *Editor) InsertLink(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	if e.sel.Collapsed() {
		marks := e.caretMarks()
		marks.Link = url
		return e.insertInline(Inline{Text: url, Marks: marks})
	}

	from, to := e.sel.Range()
	return e.mutate(func(d *Document) (Selection, bool) {
		changed := false
		d.eachRange(from, to, func(b *Block, i, j int) {
			for k := i; k < j; k++ {
				if b.Inlines[k].Marks.Link != url {
					b.Inlines[k].Marks.Link = url
					changed = true
				}
			}
		})
		return e.sel, changed
	})
}

// InsertImage inserts an image at the end of the selection. An empty url changes nothing.
func (e *Editor) InsertImage(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	_, to := e.sel.Range()
	e.sel = Caret(to)
	return e.insertInline(Inline{Image: url})
}

// InsertText replaces the selection with text typed using the caret's marks.
func (e *Editor) InsertText(text string) bool {
	if text == "" && e.sel.Collapsed() {
		return false
	}
	marks := e.caretMarks()
	marks.Link = ""
	return e.insertInline(Inline{Text: text, Marks: marks})
}

func (e *Editor) insertInline(in Inline) bool {
	from, to := e.sel.Range()
	return e.mutate(func(d *Document) (Selection, bool) {
		at := deleteRange(d, from, to)
		b := &d.Blocks[at.Block]
		i := b.splitAt(at.Offset)

		inlines := make([]Inline, 0, len(b.Inlines)+1)
		inlines = append(inlines, b.Inlines[:i]...)
		inlines = append(inlines, in)
		inlines = append(inlines, b.Inlines[i:]...)
		b.Inlines = inlines

		return Caret(Position{Block: at.Block, Offset: at.Offset + in.Len()}), true
	})
}

// SplitBlock deletes the selection and breaks the block at the caret.
// List items continue the list; a split heading continues as a paragraph.
func (e *Editor) SplitBlock() bool {
	from, to := e.sel.Range()
	return e.mutate(func(d *Document) (Selection, bool) {
		at := deleteRange(d, from, to)
		b := &d.Blocks[at.Block]
		i := b.splitAt(at.Offset)

		next := Block{Type: b.Type, Quoted: b.Quoted, Inlines: append([]Inline(nil), b.Inlines[i:]...)}
		if next.Type == Heading {
			next.Type = Paragraph
		}
		b.Inlines = b.Inlines[:i:i]

		blocks := make([]Block, 0, len(d.Blocks)+1)
		blocks = append(blocks, d.Blocks[:at.Block+1]...)
		blocks = append(blocks, next)
		blocks = append(blocks, d.Blocks[at.Block+1:]...)
		d.Blocks = blocks

		return Caret(Position{Block: at.Block + 1}), true
	})
}

// deleteRange removes [from, to) and returns the collapsed position.
func deleteRange(d *Document, from, to Position) Position {
	if from == to {
		return from
	}
	first := &d.Blocks[from.Block]
	i := first.splitAt(from.Offset)
	last := &d.Blocks[to.Block]
	j := last.splitAt(to.Offset)

	tail := append([]Inline(nil), last.Inlines[j:]...)
	first.Inlines = append(first.Inlines[:i:i], tail...)

	if to.Block > from.Block {
		d.Blocks = append(d.Blocks[:from.Block+1], d.Blocks[to.Block+1:]...)
	}
	return from
}

// Undo restores the previous state.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, snapshot{doc: e.doc, sel: e.sel})
	e.doc, e.sel, e.stored = prev.doc, prev.sel, nil
	e.emit()
	return true
}

// Redo re-applies the last undone change.
func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, snapshot{doc: e.doc, sel: e.sel})
	e.doc, e.sel, e.stored = next.doc, next.sel, nil
	e.emit()
	return true
}

// mutate applies fn to a copy of the document and commits it when fn reports a change.
func (e *Editor) mutate(fn func(d *Document) (Selection, bool)) bool {
	next := e.doc.Clone()
	sel, changed := fn(next)
	if !changed {
		return false
	}
	next.normalize()

	e.undo = append(e.undo, snapshot{doc: e.doc, sel: e.sel})
	if len(e.undo) > e.depth {
		e.undo = e.undo[len(e.undo)-e.depth:]
	}
	e.redo = nil
	e.doc = next
	e.sel = sel
	e.stored = nil
	e.emit()
	return true
}

func (e *Editor) emit() {
	if e.onChange != nil {
		e.onChange(e.Markup())
	}
}

func (e *Editor) caretMarks() Marks {
	if e.stored != nil {
		return *e.stored
	}
	from, _ := e.sel.Range()
	return e.doc.Blocks[from.Block].marksAt(from.Offset)
}

// ActiveFormats describes the formatting at the selection, used to highlight toolbar buttons.
type ActiveFormats struct {
	Bold         bool   `json:"bold"`
	Italic       bool   `json:"italic"`
	Link         string `json:"link,omitempty"`
	HeadingLevel int    `json:"heading_level,omitempty"`
	BulletList   bool   `json:"bullet_list"`
	OrderedList  bool   `json:"ordered_list"`
	Blockquote   bool   `json:"blockquote"`
	CanUndo      bool   `json:"can_undo"`
	CanRedo      bool   `json:"can_redo"`
}

// Active reports the formatting at the caret, or shared by all selected text.
func (e *Editor) Active() ActiveFormats {
	from, to := e.sel.Range()
	block := e.doc.Blocks[from.Block]

	var marks Marks
	if e.sel.Collapsed() {
		marks = e.caretMarks()
	} else {
		marks = e.sharedMarks(from, to)
	}

	active := ActiveFormats{
		Bold:        marks.Bold,
		Italic:      marks.Italic,
		Link:        marks.Link,
		BulletList:  block.Type == BulletItem,
		OrderedList: block.Type == OrderedItem,
		Blockquote:  block.Quoted,
		CanUndo:     e.CanUndo(),
		CanRedo:     e.CanRedo(),
	}
	if block.Type == Heading {
		active.HeadingLevel = block.Level
	}
	return active
}

func (e *Editor) sharedMarks(from, to Position) Marks {
	scratch := e.doc.Clone()
	shared := Marks{Bold: true, Italic: true}
	first := true
	scratch.eachRange(from, to, func(b *Block, i, j int) {
		for k := i; k < j; k++ {
			in := b.Inlines[k]
			if !in.isText() {
				continue
			}
			shared.Bold = shared.Bold && in.Marks.Bold
			shared.Italic = shared.Italic && in.Marks.Italic
			if first {
				shared.Link = in.Marks.Link
				first = false
			} else if shared.Link != in.Marks.Link {
				shared.Link = ""
			}
		}
	})
	if first {
		return Marks{}
	}
	return shared
}
