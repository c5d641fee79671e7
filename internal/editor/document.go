// Package editor implements the rich content editor behind the article body:
// a small block/inline document model, selection-based formatting commands,
// bounded undo/redo history and an HTML codec.
package editor

import "unicode/utf8"

// BlockType is the structural kind of a block.
type BlockType int

const (
	Paragraph BlockType = iota
	Heading
	BulletItem
	OrderedItem
)

func (t BlockType) String() string {
	switch t {
	case Heading:
		return "heading"
	case BulletItem:
		return "bullet_list"
	case OrderedItem:
		return "ordered_list"
	default:
		return "paragraph"
	}
}

// Marks are the inline formats applied to a run of text.
type Marks struct {
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Inline is either a text run or, when Image is set, an image occupying one position.
type Inline struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
	Marks Marks  `json:"marks"`
}

// Len is the number of cursor positions the inline spans.
func (in Inline) Len() int {
	if in.Image != "" {
		return 1
	}
	return utf8.RuneCountInString(in.Text)
}

func (in Inline) isText() bool {
	return in.Image == ""
}

// Block is a paragraph, heading or list item, optionally inside a blockquote.
type Block struct {
	Type    BlockType `json:"type"`
	Level   int       `json:"level,omitempty"`
	Quoted  bool      `json:"quoted,omitempty"`
	Inlines []Inline  `json:"inlines"`
}

// Len is the number of cursor positions in the block.
func (b *Block) Len() int {
	n := 0
	for _, in := range b.Inlines {
		n += in.Len()
	}
	return n
}

// Text returns the plain text of the block; images contribute nothing.
func (b *Block) Text() string {
	var s string
	for _, in := range b.Inlines {
		if in.isText() {
			s += in.Text
		}
	}
	return s
}

// splitAt makes offset an inline boundary and returns the index of the first
// inline starting at or after it.
func (b *Block) splitAt(offset int) int {
	pos := 0
	for i, in := range b.Inlines {
		if pos == offset {
			return i
		}
		n := in.Len()
		if offset < pos+n {
			runes := []rune(in.Text)
			k := offset - pos
			left, right := in, in
			left.Text = string(runes[:k])
			right.Text = string(runes[k:])

			inlines := make([]Inline, 0, len(b.Inlines)+1)
			inlines = append(inlines, b.Inlines[:i]...)
			inlines = append(inlines, left, right)
			inlines = append(inlines, b.Inlines[i+1:]...)
			b.Inlines = inlines
			return i + 1
		}
		pos += n
	}
	return len(b.Inlines)
}

// marksAt returns the marks a caret at offset picks up: the inline before it,
// or the first inline when the caret sits at the block start.
func (b *Block) marksAt(offset int) Marks {
	pos := 0
	for _, in := range b.Inlines {
		n := in.Len()
		if offset > pos && offset <= pos+n {
			return in.Marks
		}
		pos += n
	}
	if offset == 0 && len(b.Inlines) > 0 {
		return b.Inlines[0].Marks
	}
	return Marks{}
}

// normalize drops empty text runs and merges neighbours with identical marks.
func (b *Block) normalize() {
	out := b.Inlines[:0:0]
	for _, in := range b.Inlines {
		if in.isText() && in.Text == "" {
			continue
		}
		if n := len(out); n > 0 && in.isText() && out[n-1].isText() && out[n-1].Marks == in.Marks {
			out[n-1].Text += in.Text
			continue
		}
		out = append(out, in)
	}
	b.Inlines = out
	if b.Type != Heading {
		b.Level = 0
	}
}

// Document is the whole editor content.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// NewDocument returns a document holding one empty paragraph.
func NewDocument() *Document {
	return &Document{Blocks: []Block{{Type: Paragraph}}}
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	cp := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		cp.Blocks[i] = b
		cp.Blocks[i].Inlines = append([]Inline(nil), b.Inlines...)
	}
	return cp
}

func (d *Document) normalize() {
	if len(d.Blocks) == 0 {
		d.Blocks = []Block{{Type: Paragraph}}
		return
	}
	for i := range d.Blocks {
		d.Blocks[i].normalize()
	}
}

// End returns the position after the last character of the document.
func (d *Document) End() Position {
	last := len(d.Blocks) - 1
	return Position{Block: last, Offset: d.Blocks[last].Len()}
}

func (d *Document) contains(p Position) bool {
	return p.Block >= 0 && p.Block < len(d.Blocks) && p.Offset >= 0 && p.Offset <= d.Blocks[p.Block].Len()
}

// eachRange calls fn for every block touched by [from, to) with inline indexes
// [i, j) covering exactly the selected part of that block.
func (d *Document) eachRange(from, to Position, fn func(b *Block, i, j int)) {
	for bi := from.Block; bi <= to.Block; bi++ {
		b := &d.Blocks[bi]
		start, end := 0, b.Len()
		if bi == from.Block {
			start = from.Offset
		}
		if bi == to.Block {
			end = to.Offset
		}
		i := b.splitAt(start)
		j := b.splitAt(end)
		fn(b, i, j)
	}
}

// Position addresses a caret location as a block index and a rune offset inside it.
type Position struct {
	Block  int `json:"block"`
	Offset int `json:"offset"`
}

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	if p.Block != q.Block {
		return p.Block < q.Block
	}
	return p.Offset < q.Offset
}

// Selection is an anchor/head pair; head is where the caret is drawn.
type Selection struct {
	Anchor Position `json:"anchor"`
	Head   Position `json:"head"`
}

// Collapsed reports whether the selection is a bare caret.
func (s Selection) Collapsed() bool {
	return s.Anchor == s.Head
}

// Range returns the selection bounds in document order.
func (s Selection) Range() (from, to Position) {
	if s.Head.Before(s.Anchor) {
		return s.Head, s.Anchor
	}
	return s.Anchor, s.Head
}

// Caret returns a collapsed selection at p.
func Caret(p Position) Selection {
	return Selection{Anchor: p, Head: p}
}
