package text

// Token is a value substituted for a token tag. It is either plain text,
// inserted literally and never parsed for tags, or a rich Component inserted
// with its own styling.
type Token struct {
	plain string
	rich  *Component
}

// Tokens maps token tag names to their values.
type Tokens map[string]Token

// Plain returns a token that inserts s as unstyled literal text.
func Plain(s string) Token {
	return Token{plain: s}
}

// Rich returns a token that inserts c as a styled sub-document.
func Rich(c Component) Token {
	return Token{rich: &c}
}

// IsRich reports whether the token carries a styled component.
func (t Token) IsRich() bool {
	return t.rich != nil
}

// String returns the plain text of the token.
func (t Token) String() string {
	if t.rich != nil {
		return t.rich.PlainText()
	}
	return t.plain
}

func (t Token) component() Component {
	if t.rich != nil {
		return *t.rich
	}
	return Component{Text: t.plain}
}
