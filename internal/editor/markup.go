package editor

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Serialize renders the document as HTML. Quoted blocks are grouped into one
// blockquote, consecutive list items of the same kind into one list.
func Serialize(d *Document) string {
	var sb strings.Builder
	blocks := d.Blocks
	for i := 0; i < len(blocks); {
		j := i
		for j < len(blocks) && blocks[j].Quoted == blocks[i].Quoted {
			j++
		}
		if blocks[i].Quoted {
			sb.WriteString("<blockquote>")
			writeFlow(&sb, blocks[i:j])
			sb.WriteString("</blockquote>")
		} else {
			writeFlow(&sb, blocks[i:j])
		}
		i = j
	}
	return sb.String()
}

func writeFlow(sb *strings.Builder, blocks []Block) {
	for i := 0; i < len(blocks); {
		b := blocks[i]
		switch b.Type {
		case BulletItem, OrderedItem:
			tag := "ul"
			if b.Type == OrderedItem {
				tag = "ol"
			}
			j := i
			for j < len(blocks) && blocks[j].Type == b.Type {
				j++
			}
			sb.WriteString("<" + tag + ">")
			for _, item := range blocks[i:j] {
				sb.WriteString("<li>")
				writeInlines(sb, item.Inlines)
				sb.WriteString("</li>")
			}
			sb.WriteString("</" + tag + ">")
			i = j
			continue
		case Heading:
			fmt.Fprintf(sb, "<h%d>", b.Level)
			writeInlines(sb, b.Inlines)
			fmt.Fprintf(sb, "</h%d>", b.Level)
		default:
			sb.WriteString("<p>")
			writeInlines(sb, b.Inlines)
			sb.WriteString("</p>")
		}
		i++
	}
}

func writeInlines(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		if in.Marks.Link != "" {
			sb.WriteString(`<a href="` + html.EscapeString(in.Marks.Link) + `">`)
		}
		if in.Marks.Bold {
			sb.WriteString("<strong>")
		}
		if in.Marks.Italic {
			sb.WriteString("<em>")
		}
		if in.Image != "" {
			sb.WriteString(`<img src="` + html.EscapeString(in.Image) + `">`)
		} else {
			sb.WriteString(html.EscapeString(in.Text))
		}
		if in.Marks.Italic {
			sb.WriteString("</em>")
		}
		if in.Marks.Bold {
			sb.WriteString("</strong>")
		}
		if in.Marks.Link != "" {
			sb.WriteString("</a>")
		}
	}
}

// Parse builds a document from HTML. Unknown elements are unwrapped and
// script/style content is dropped, so only the supported structure survives.
func Parse(markup string) (*Document, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	p := &parser{}
	for _, n := range nodes {
		p.block(n, false)
	}
	p.flush()
	doc := &Document{Blocks: p.blocks}
	doc.normalize()
	return doc, nil
}

type parser struct {
	blocks []Block
	// loose collects inline content found outside any block element.
	loose *Block
}

func (p *parser) flush() {
	if p.loose != nil {
		p.blocks = append(p.blocks, *p.loose)
		p.loose = nil
	}
}

func (p *parser) push(b Block) {
	p.flush()
	p.blocks = append(p.blocks, b)
}

func (p *parser) looseInline(n *html.Node, quoted bool) {
	if p.loose != nil && p.loose.Quoted != quoted {
		p.flush()
	}
	if p.loose == nil {
		p.loose = &Block{Type: Paragraph, Quoted: quoted}
	}
	p.loose.Inlines = collectInlines(p.loose.Inlines, n, Marks{})
}

func (p *parser) block(n *html.Node, quoted bool) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) != "" {
			p.looseInline(n, quoted)
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.P:
		p.push(Block{Type: Paragraph, Quoted: quoted, Inlines: childInlines(n, Marks{})})
	case atom.H1:
		p.push(Block{Type: Heading, Level: 1, Quoted: quoted, Inlines: childInlines(n, Marks{})})
	case atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p.push(Block{Type: Heading, Level: 2, Quoted: quoted, Inlines: childInlines(n, Marks{})})
	case atom.Ul, atom.Ol:
		kind := BulletItem
		if n.DataAtom == atom.Ol {
			kind = OrderedItem
		}
		p.flush()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Li {
				p.push(Block{Type: kind, Quoted: quoted, Inlines: childInlines(c, Marks{})})
			}
		}
	case atom.Blockquote:
		p.flush()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.block(c, true)
		}
		p.flush()
	case atom.Script, atom.Style:
	case atom.Strong, atom.B, atom.Em, atom.I, atom.A, atom.Img, atom.Span, atom.Br, atom.U, atom.Code:
		p.looseInline(n, quoted)
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.block(c, quoted)
		}
		p.flush()
	}
}

func childInlines(n *html.Node, marks Marks) []Inline {
	var out []Inline
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = collectInlines(out, c, marks)
	}
	return out
}

func collectInlines(out []Inline, n *html.Node, marks Marks) []Inline {
	switch n.Type {
	case html.TextNode:
		return append(out, Inline{Text: n.Data, Marks: marks})
	case html.ElementNode:
	default:
		return out
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		marks.Bold = true
	case atom.Em, atom.I:
		marks.Italic = true
	case atom.A:
		if href := attr(n, "href"); href != "" {
			marks.Link = href
		}
	case atom.Img:
		if src := attr(n, "src"); src != "" {
			out = append(out, Inline{Image: src, Marks: marks})
		}
		return out
	case atom.Br:
		return append(out, Inline{Text: "\n", Marks: marks})
	case atom.Script, atom.Style:
		return out
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = collectInlines(out, c, marks)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
