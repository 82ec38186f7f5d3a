// Package messages holds the localized message bundles used to render
// placeholders.
package messages

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Keys of the messages used by the placeholder expansion.
const (
	PlaytimeTop       = "playtime-top"
	PlaytimeTopHeader = "playtime-top-header"
)

//go:embed bundles/*.yaml
var embedded embed.FS

// Lookup returns the message template stored under key for a locale.
type Lookup interface {
	Message(locale, key string) string
}

// Bundle is a set of per-language message maps. Locales are matched to the
// closest available language; unknown keys fall back to the default language
// and finally to the key itself.
type Bundle struct {
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	messages map[language.Tag]map[string]string
}

var _ Lookup = (*Bundle)(nil)

// Load reads the bundles shipped with the binary.
func Load(fallback string) (*Bundle, error) {
	sub, err := fs.Sub(embedded, "bundles")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, fallback)
}

// LoadFS reads every <language>.yaml file at the root of fsys.
func LoadFS(fsys fs.FS, fallback string) (*Bundle, error) {
	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback language %q: %w", fallback, err)
	}

	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		fallback: fallbackTag,
		messages: make(map[language.Tag]map[string]string),
	}
	for _, file := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(file), ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", file, err)
		}
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", file, err)
		}
		entries := make(map[string]string)
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("bundle %s: %w", file, err)
		}
		b.messages[tag] = entries
		log.Debug("Loaded message bundle", "language", tag, "messages", len(entries))
	}

	if _, ok := b.messages[fallbackTag]; !ok {
		return nil, fmt.Errorf("no bundle for fallback language %s", fallbackTag)
	}

	// The matcher answers with the first tag when nothing matches.
	b.tags = append(b.tags, fallbackTag)
	for tag := range b.messages {
		if tag != fallbackTag {
			b.tags = append(b.tags, tag)
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Message implements Lookup.
func (b *Bundle) Message(locale, key string) string {
	tag := b.match(locale)
	if msg, ok := b.messages[tag][key]; ok {
		return msg
	}
	if msg, ok := b.messages[b.fallback][key]; ok {
		return msg
	}
	log.Warn("Missing message", "locale", locale, "key", key)
	return key
}

// Languages returns the languages for which a bundle is loaded, default first.
func (b *Bundle) Languages() []string {
	out := make([]string, 0, len(b.tags))
	for _, tag := range b.tags {
		out = append(out, tag.String())
	}
	return out
}

func (b *Bundle) match(locale string) language.Tag {
	if locale == "" {
		return b.fallback
	}
	requested, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return b.fallback
	}
	_, index, confidence := b.matcher.Match(requested)
	if confidence == language.No {
		return b.fallback
	}
	return b.tags[index]
}
