package text

import (
	"strconv"
	"strings"
)

// Render parses template, substitutes tokens and serializes the result with
// ampersand formatting codes.
func Render(template string, tokens Tokens) string {
	return Legacy(Parse(template, tokens))
}

// Parse builds a styled document from template. Tags that are neither a known
// style nor a token are kept as literal text, so Parse never fails.
func Parse(template string, tokens Tokens) Component {
	p := &parser{tokens: tokens}
	p.stack = []frame{{node: &p.root}}

	for i := 0; i < len(template); {
		ch := template[i]
		if ch == '\\' && i+1 < len(template) && (template[i+1] == '<' || template[i+1] == '\\') {
			p.buf.WriteByte(template[i+1])
			i += 2
			continue
		}
		if ch != '<' {
			p.buf.WriteByte(ch)
			i++
			continue
		}

		end := strings.IndexByte(template[i+1:], '>')
		if end < 0 {
			p.buf.WriteString(template[i:])
			break
		}
		if p.tag(template[i+1 : i+1+end]) {
			i += end + 2
			continue
		}
		p.buf.WriteByte('<')
		i++
	}
	p.flush()
	return p.root
}

type frame struct {
	name string
	node *Component
}

type parser struct {
	tokens Tokens
	root   Component
	stack  []frame
	buf    strings.Builder
}

func (p *parser) current() *Component {
	return p.stack[len(p.stack)-1].node
}

func (p *parser) flush() {
	if p.buf.Len() == 0 {
		return
	}
	node := p.current()
	node.Children = append(node.Children, Component{Text: p.buf.String()})
	p.buf.Reset()
}

// tag handles the content between '<' and '>' and reports whether it was
// consumed as a tag.
func (p *parser) tag(inner string) bool {
	if closing, ok := strings.CutPrefix(inner, "/"); ok {
		name, _, _ := strings.Cut(strings.ToLower(closing), ":")
		if !validName(name) {
			return false
		}
		for j := len(p.stack) - 1; j > 0; j-- {
			if p.stack[j].name == name {
				p.flush()
				p.stack = p.stack[:j]
				return true
			}
		}
		return false
	}

	name, arg, _ := strings.Cut(inner, ":")
	name = strings.ToLower(name)
	if !validName(name) {
		return false
	}

	if name == "reset" && arg == "" {
		p.flush()
		p.stack = p.stack[:1]
		return true
	}

	if tok, ok := p.tokens[name]; ok && arg == "" {
		p.flush()
		node := p.current()
		node.Children = append(node.Children, tok.component())
		return true
	}

	style, ok := styleTag(name, arg)
	if !ok {
		return false
	}
	p.flush()
	node := p.current()
	node.Children = append(node.Children, Component{Style: style})
	p.stack = append(p.stack, frame{name: name, node: &node.Children[len(node.Children)-1]})
	return true
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		case r == '#' && i == 0:
		default:
			return false
		}
	}
	return true
}

func styleTag(name, arg string) (Style, bool) {
	switch name {
	case "color", "colour", "c":
		return colorStyle(strings.ToLower(arg))
	case "bold", "b":
		return Style{Decorations: Bold}, arg == ""
	case "italic", "i", "em":
		return Style{Decorations: Italic}, arg == ""
	case "underlined", "u":
		return Style{Decorations: Underlined}, arg == ""
	case "strikethrough", "st":
		return Style{Decorations: Strikethrough}, arg == ""
	case "obfuscated", "obf":
		return Style{Decorations: Obfuscated}, arg == ""
	}
	if arg != "" {
		return Style{}, false
	}
	return colorStyle(name)
}

func colorStyle(value string) (Style, bool) {
	if hex, ok := strings.CutPrefix(value, "#"); ok {
		if len(hex) != 6 {
			return Style{}, false
		}
		rgb, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Style{}, false
		}
		return Style{
			Color:   Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)},
			Colored: true,
		}, true
	}
	c, ok := lookupNamedColor(value)
	if !ok {
		return Style{}, false
	}
	return Style{Color: c, Colored: true}, true
}
