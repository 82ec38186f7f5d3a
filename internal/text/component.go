// Package text renders tag-based message templates into legacy
// formatting-code strings.
//
// Templates use a MiniMessage-like syntax: <red>, <bold>, <#ff8800>,
// <color:gold>, closing tags such as </red>, <reset>, and token tags such as
// <playername> that are filled from a Tokens map. The parsed template is a
// Component tree which is then serialized with ampersand codes (&c, &l, ...).
package text

import "strings"

// Color is an RGB colour.
type Color struct {
	R, G, B uint8
}

// Decoration is a bit set of text decorations.
type Decoration uint8

const (
	Obfuscated Decoration = 1 << iota
	Bold
	Strikethrough
	Underlined
	Italic
)

// decorationCodes lists the legacy code of every decoration in emission order.
var decorationCodes = []struct {
	decoration Decoration
	code       byte
}{
	{Obfuscated, 'k'},
	{Bold, 'l'},
	{Strikethrough, 'm'},
	{Underlined, 'n'},
	{Italic, 'o'},
}

// Style is the styling applied to a component and inherited by its children.
type Style struct {
	Color       Color
	Colored     bool
	Decorations Decoration
}

// IsZero reports whether the style carries no colour and no decorations.
func (s Style) IsZero() bool {
	return !s.Colored && s.Decorations == 0
}

// merge applies child on top of s.
func (s Style) merge(child Style) Style {
	out := s
	if child.Colored {
		out.Color = child.Color
		out.Colored = true
	}
	out.Decorations |= child.Decorations
	return out
}

// Component is a node of a styled text document.
type Component struct {
	Text     string
	Style    Style
	Children []Component
}

// PlainText returns the text of c and its children without any styling.
func (c Component) PlainText() string {
	var b strings.Builder
	c.walk(Style{}, func(text string, _ Style) {
		b.WriteString(text)
	})
	return b.String()
}

// walk visits every text run of the tree with its effective style.
func (c Component) walk(parent Style, visit func(text string, style Style)) {
	style := parent.merge(c.Style)
	if c.Text != "" {
		visit(c.Text, style)
	}
	for _, child := range c.Children {
		child.walk(style, visit)
	}
}

type namedColor struct {
	name  string
	code  byte
	color Color
}

var namedColors = []namedColor{
	{"black", '0', Color{0x00, 0x00, 0x00}},
	{"dark_blue", '1', Color{0x00, 0x00, 0xaa}},
	{"dark_green", '2', Color{0x00, 0xaa, 0x00}},
	{"dark_aqua", '3', Color{0x00, 0xaa, 0xaa}},
	{"dark_red", '4', Color{0xaa, 0x00, 0x00}},
	{"dark_purple", '5', Color{0xaa, 0x00, 0xaa}},
	{"gold", '6', Color{0xff, 0xaa, 0x00}},
	{"gray", '7', Color{0xaa, 0xaa, 0xaa}},
	{"dark_gray", '8', Color{0x55, 0x55, 0x55}},
	{"blue", '9', Color{0x55, 0x55, 0xff}},
	{"green", 'a', Color{0x55, 0xff, 0x55}},
	{"aqua", 'b', Color{0x55, 0xff, 0xff}},
	{"red", 'c', Color{0xff, 0x55, 0x55}},
	{"light_purple", 'd', Color{0xff, 0x55, 0xff}},
	{"yellow", 'e', Color{0xff, 0xff, 0x55}},
	{"white", 'f', Color{0xff, 0xff, 0xff}},
}

var colorAliases = map[string]string{
	"grey":      "gray",
	"dark_grey": "dark_gray",
}

func lookupNamedColor(name string) (Color, bool) {
	if alias, ok := colorAliases[name]; ok {
		name = alias
	}
	for _, nc := range namedColors {
		if nc.name == name {
			return nc.color, true
		}
	}
	return Color{}, false
}

// legacyCode returns the code of the named colour closest to c.
func legacyCode(c Color) byte {
	best := namedColors[0]
	bestDistance := -1
	for _, nc := range namedColors {
		dr := int(c.R) - int(nc.color.R)
		dg := int(c.G) - int(nc.color.G)
		db := int(c.B) - int(nc.color.B)
		distance := dr*dr + dg*dg + db*db
		if bestDistance == -1 || distance < bestDistance {
			best = nc
			bestDistance = distance
		}
	}
	return best.code
}
