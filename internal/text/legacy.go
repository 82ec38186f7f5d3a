package text

import "strings"

const (
	// AmpersandChar is the escape character of ampersand-coded strings.
	AmpersandChar = '&'
	// SectionChar is the escape character understood by game clients.
	SectionChar = '§'
	// ResetCode clears colour and decorations.
	ResetCode = 'r'
)

// Legacy serializes c using ampersand formatting codes. Hex colours are
// downsampled to the closest of the 16 named colours.
func Legacy(c Component) string {
	return Serialize(c, AmpersandChar)
}

// Serialize writes c as a string of code-character pairs and text, emitting a
// code sequence only where the effective style changes.
func Serialize(c Component, char rune) string {
	w := &legacyWriter{char: char}
	c.walk(Style{}, w.write)
	return w.b.String()
}

type legacyWriter struct {
	b    strings.Builder
	char rune
	last Style
}

func (w *legacyWriter) write(text string, style Style) {
	if style != w.last {
		sameColor := style.Colored == w.last.Colored && (!style.Colored || legacyCode(style.Color) == legacyCode(w.last.Color))
		adding := style.Decorations&w.last.Decorations == w.last.Decorations

		switch {
		case sameColor && adding:
			w.decorations(style.Decorations &^ w.last.Decorations)
		case style.Colored:
			// A colour code also clears every decoration on the client.
			w.code(legacyCode(style.Color))
			w.decorations(style.Decorations)
		default:
			w.code(ResetCode)
			w.decorations(style.Decorations)
		}
		w.last = style
	}
	w.b.WriteString(text)
}

func (w *legacyWriter) code(c byte) {
	w.b.WriteRune(w.char)
	w.b.WriteByte(c)
}

func (w *legacyWriter) decorations(d Decoration) {
	for _, dc := range decorationCodes {
		if d&dc.decoration != 0 {
			w.code(dc.code)
		}
	}
}
