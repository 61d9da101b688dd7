package rewrite

import "github.com/minios-linux/chlang/pofile"

// DefaultWrapper is the localization call placed around translated text.
const DefaultWrapper = "_"

// Translator rewrites the quoted segments of a single line.
type Translator struct {
	// Table supplies the translations. Required.
	Table *pofile.Table
	// Wrapper is the call name; empty means DefaultWrapper.
	Wrapper string
	// Verbose enables OnMiss reporting.
	Verbose bool

	// OnHit is called for every replaced segment.
	OnHit func(original, translated string)
	// OnMiss is called in verbose mode for segments left as they are.
	OnMiss func(text string)
}

func (t *Translator) wrap(value string) string {
	w := t.Wrapper
	if w == "" {
		w = DefaultWrapper
	}
	return w + `("` + value + `")`
}

// TranslateLine replaces every translatable quoted segment of line with a
// wrapped translation. It returns changed == false when nothing was
// replaced; the caller must then keep the original line, since out is
// empty in that case.
//
// Segments of length 0 or 1 are never looked up. An unterminated segment
// (typically the last line of a file without a newline) is replaced only
// on an exact match; otherwise it is kept verbatim with its lone quote.
func (t *Translator) TranslateLine(line string) (out string, changed bool) {
	segs := Lex(line)
	if len(segs) < 2 {
		return "", false
	}

	for i, s := range segs {
		var text string
		switch s.Kind {
		case Quoted:
			text = s.Text
		case Unterminated:
			text = s.Text[1:]
		default:
			continue
		}
		if len(text) > 1 {
			if v, ok := t.Table.Lookup(text); ok {
				if t.OnHit != nil {
					t.OnHit(text, v)
				}
				segs[i] = Segment{Kind: Literal, Text: t.wrap(v)}
				changed = true
				continue
			}
		}
		if t.Verbose && t.OnMiss != nil {
			t.OnMiss(text)
		}
	}

	if !changed {
		return "", false
	}
	return Join(segs), true
}
