// Package layout turns resume text into the HTML document that gets printed
// to PDF. Text goes through Parse, which yields an ordered list of blocks, and
// Render, which places those blocks into the print shell. The heuristics live
// entirely in Parse so a real markup parser can replace it later.
package layout

import (
	"regexp"
	"strings"
)

type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindHeading   Kind = "heading"
	KindList      Kind = "list"
	KindContact   Kind = "contact"
)

// Field is one "label: value" line of a contact block.
type Field struct {
	Label string
	Sep   string
	Value string
}

// Block is one rendered unit. Which of Lines/Fields is set depends on Kind:
// paragraphs and lists use Lines, headings use Lines[0], contacts use Fields.
type Block struct {
	Kind   Kind
	Lines  []string
	Fields []Field
}

var (
	contactLine = regexp.MustCompile(`^(姓名|联系方式|邮箱|电话|地址|Name|Email|Phone|Address)\s*([：:])\s*(.+)$`)
	headingLine = regexp.MustCompile(`^(.+?)\s*[：:]$`)
	bulletLine  = regexp.MustCompile(`^[-•]\s*(.+)$`)
	blankLines  = regexp.MustCompile(`\n[ \t]*\n`)
)

// Parse splits text into blocks. Blank lines separate paragraphs; within a
// paragraph, lines ending in a colon become headings, lines starting with a
// dash or bullet become list items (consecutive items share one list) and
// known contact labels become contact fields. Order is preserved and empty
// paragraphs are dropped.
func Parse(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks []Block
	for _, para := range blankLines.Split(text, -1) {
		blocks = appendParagraph(blocks, para)
	}
	return mergeAdjacent(blocks)
}

// mergeAdjacent joins list and contact blocks that were only separated by a
// blank line.
func mergeAdjacent(blocks []Block) []Block {
	out := blocks[:0]
	for _, b := range blocks {
		if n := len(out); n > 0 && out[n-1].Kind == b.Kind && (b.Kind == KindList || b.Kind == KindContact) {
			out[n-1].Lines = append(out[n-1].Lines, b.Lines...)
			out[n-1].Fields = append(out[n-1].Fields, b.Fields...)
			continue
		}
		out = append(out, b)
	}
	return out
}

func appendParagraph(blocks []Block, para string) []Block {
	var cur *Block
	flush := func() {
		if cur != nil {
			blocks = append(blocks, *cur)
			cur = nil
		}
	}
	extend := func(kind Kind) *Block {
		if cur == nil || cur.Kind != kind {
			flush()
			cur = &Block{Kind: kind}
		}
		return cur
	}

	for _, raw := range strings.Split(para, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case contactLine.MatchString(line):
			m := contactLine.FindStringSubmatch(line)
			b := extend(KindContact)
			b.Fields = append(b.Fields, Field{Label: m[1], Sep: m[2], Value: m[3]})
		case headingLine.MatchString(line):
			flush()
			m := headingLine.FindStringSubmatch(line)
			blocks = append(blocks, Block{Kind: KindHeading, Lines: []string{m[1]}})
		case bulletLine.MatchString(line):
			m := bulletLine.FindStringSubmatch(line)
			b := extend(KindList)
			b.Lines = append(b.Lines, m[1])
		default:
			b := extend(KindParagraph)
			b.Lines = append(b.Lines, line)
		}
	}
	flush()
	return blocks
}
