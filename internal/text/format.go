package text

import "strings"

// Formatter turns an ampersand-coded string into the representation expected
// by the placeholder consumer.
type Formatter interface {
	Format(s string) string
}

// CodeTranslator rewrites formatting codes from one escape character to
// another. Only valid code characters are translated; a lone '&' stays.
type CodeTranslator struct {
	From rune
	To   rune
}

var _ Formatter = CodeTranslator{}

// NewSectionFormatter returns a Formatter translating '&' codes to '§' codes.
func NewSectionFormatter() CodeTranslator {
	return CodeTranslator{From: AmpersandChar, To: SectionChar}
}

// Format implements Formatter.
func (t CodeTranslator) Format(s string) string {
	if !strings.ContainsRune(s, t.From) {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); i++ {
		if runes[i] == t.From && i+1 < len(runes) && isCode(runes[i+1]) {
			b.WriteRune(t.To)
			b.WriteRune(toLower(runes[i+1]))
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// Strip removes ampersand and section formatting codes from s.
func Strip(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); i++ {
		if (runes[i] == AmpersandChar || runes[i] == SectionChar) && i+1 < len(runes) && isCode(runes[i+1]) {
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

func isCode(r rune) bool {
	return strings.ContainsRune("0123456789abcdefklmnorABCDEFKLMNOR", r)
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
