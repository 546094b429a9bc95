package report

import (
	"html"
	"strings"

	"github.com/go-pdf/fpdf"
)

// word is the unit of line wrapping. A break word forces a new line.
type word struct {
	text        string
	bold        bool
	italic      bool
	spaceBefore bool
	brk         bool
}

// parseMarkup splits paragraph markup into words. Only <b>, <i> and
// <br> are interpreted; other tags are dropped and entities decoded.
func parseMarkup(markup string) []word {
	words := []word{}
	bold, italic := 0, 0
	pendingSpace := false

	for _, seg := range fpdf.HTMLBasicTokenize(markup) {
		switch seg.Cat {
		case 'T':
			text := html.UnescapeString(seg.Str)
			if text == "" {
				continue
			}
			if startsWithSpace(text) {
				pendingSpace = true
			}
			for i, f := range strings.Fields(text) {
				words = append(words, word{
					text:        f,
					bold:        bold > 0,
					italic:      italic > 0,
					spaceBefore: i > 0 || pendingSpace,
				})
				pendingSpace = false
			}
			if endsWithSpace(text) {
				pendingSpace = true
			}
		case 'O':
			switch strings.TrimSuffix(seg.Str, "/") {
			case "b", "strong":
				bold++
			case "i", "em":
				italic++
			case "br":
				words = append(words, word{brk: true})
				pendingSpace = false
			}
		case 'C':
			switch seg.Str {
			case "b", "strong":
				if bold > 0 {
					bold--
				}
			case "i", "em":
				if italic > 0 {
					italic--
				}
			}
		}
	}
	return words
}

func startsWithSpace(s string) bool {
	return strings.TrimLeft(s, " \t") != s
}

func endsWithSpace(s string) bool {
	return strings.TrimRight(s, " \t") != s
}

// fontFor applies the emphasis of w to the paragraph font.
func fontFor(base Font, bold bool, italic bool) Font {
	f := base
	if bold && !strings.Contains(f.Style, "B") {
		f.Style += "B"
	}
	if italic && !strings.Contains(f.Style, "I") {
		f.Style += "I"
	}
	return f
}
