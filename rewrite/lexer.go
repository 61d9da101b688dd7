package rewrite

import "strings"

// Kind tags a lexed segment.
type Kind int

const (
	// Literal is text outside any quotes.
	Literal Kind = iota
	// Quoted is the content between a matched pair of double quotes,
	// without the quotes themselves.
	Quoted
	// Unterminated is an opening quote with no closing partner on the
	// line. Its Text keeps the leading quote so Join restores it; the
	// translatable content is Text[1:].
	Unterminated
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Quoted:
		return "quoted"
	case Unterminated:
		return "unterminated"
	}
	return "unknown"
}

// Segment is one piece of a lexed line.
type Segment struct {
	Kind Kind
	Text string
}

// Lex splits line on double quotes. Literal and Quoted segments alternate,
// starting and ending with a Literal (possibly empty). A dangling opening
// quote produces a final Unterminated segment instead of a closing Literal.
func Lex(line string) []Segment {
	parts := strings.Split(line, `"`)
	segs := make([]Segment, 0, len(parts))

	// An even part count means an odd number of quotes: the last quote
	// never closed.
	dangling := len(parts)%2 == 0

	for i, p := range parts {
		switch {
		case dangling && i == len(parts)-1:
			segs = append(segs, Segment{Kind: Unterminated, Text: `"` + p})
		case i%2 == 1:
			segs = append(segs, Segment{Kind: Quoted, Text: p})
		default:
			segs = append(segs, Segment{Kind: Literal, Text: p})
		}
	}
	return segs
}

// Join reassembles segments. Quoted segments get their quotes back, so
// Join(Lex(s)) == s for every s.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Kind == Quoted {
			b.WriteByte('"')
			b.WriteString(s.Text)
			b.WriteByte('"')
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
