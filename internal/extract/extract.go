// Package extract parses raw source content into a corpus of translatable
// UI strings. Two source shapes are supported: a JSON object embedded in a
// larger text document between fixed markers, and a flat key/value document
// (JSON or YAML).
//
// Reserved @@-prefixed keys (@@locale, @@language, @@native, @@notice) are
// document metadata, not translatable content, and are excluded. An entry
// with an empty value normalizes to its own key — the source-document
// convention for "the English text is the key itself".
package extract

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valko/pereklad/internal/corpus"
)

// Default markers delimiting an embedded translation block.
const (
	DefaultBlockBegin = "@i18n-begin"
	DefaultBlockEnd   = "@i18n-end"
)

// MetaPrefix marks reserved document-metadata keys.
const MetaPrefix = "@@"

// Reserved metadata keys written into artifacts and skipped on extraction.
const (
	MetaLocale   = "@@locale"
	MetaLanguage = "@@language"
	MetaNative   = "@@native"
	MetaNotice   = "@@notice"
)

// ParseError indicates malformed source content.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parsing source document: " + e.Reason
}

// Format identifies a source document shape.
type Format int

const (
	// FormatEmbedded is a JSON object between block markers inside a
	// larger text document (script, config, page).
	FormatEmbedded Format = iota
	// FormatJSON is a flat JSON key/value document.
	FormatJSON
	// FormatYAML is a flat YAML key/value document.
	FormatYAML
)

// DetectFormat chooses the source shape from a location's file extension.
// .json selects the flat JSON document, .yaml/.yml the flat YAML document;
// everything else is treated as a document with an embedded block. For URLs
// the extension is taken from the path, ignoring query and fragment.
func DetectFormat(location string) Format {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if u, err := url.Parse(location); err == nil {
			location = u.Path
		}
	}
	switch strings.ToLower(filepath.Ext(strings.TrimSuffix(location, "/"))) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatEmbedded
	}
}

// Parse extracts a corpus from raw using the given format. Empty marker
// strings select the defaults.
func Parse(raw string, format Format, blockBegin, blockEnd string) (*corpus.Corpus, error) {
	switch format {
	case FormatJSON:
		return FlatJSON([]byte(raw))
	case FormatYAML:
		return FlatYAML([]byte(raw))
	default:
		return EmbeddedBlock(raw, blockBegin, blockEnd)
	}
}

// EmbeddedBlock locates the JSON object between begin and end markers and
// extracts it. Missing markers or a malformed object yield a ParseError.
func EmbeddedBlock(raw, begin, end string) (*corpus.Corpus, error) {
	if begin == "" {
		begin = DefaultBlockBegin
	}
	if end == "" {
		end = DefaultBlockEnd
	}

	start := strings.Index(raw, begin)
	if start == -1 {
		return nil, &ParseError{Reason: fmt.Sprintf("begin marker %q not found", begin)}
	}
	rest := raw[start+len(begin):]
	stop := strings.Index(rest, end)
	if stop == -1 {
		return nil, &ParseError{Reason: fmt.Sprintf("end marker %q not found", end)}
	}
	block := rest[:stop]

	open := strings.Index(block, "{")
	close := strings.LastIndex(block, "}")
	if open == -1 || close <= open {
		return nil, &ParseError{Reason: "no JSON object between markers"}
	}

	c, err := corpus.ParseOrderedObject([]byte(block[open : close+1]))
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("embedded block: %v", err)}
	}
	return normalize(c), nil
}

// FlatJSON extracts a corpus from a flat JSON key/value document.
func FlatJSON(data []byte) (*corpus.Corpus, error) {
	c, err := corpus.ParseOrderedObject(data)
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	return normalize(c), nil
}

// FlatYAML extracts a corpus from a flat YAML key/value document. The YAML
// node tree is walked directly because map decoding would lose key order.
func FlatYAML(data []byte) (*corpus.Corpus, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	c := corpus.New()
	if len(root.Content) == 0 {
		return c, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &ParseError{Reason: "expected a top-level mapping"}
	}
	// Mapping content alternates key, value.
	for i := 0; i+1 < len(doc.Content); i += 2 {
		k, v := doc.Content[i], doc.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, &ParseError{Reason: fmt.Sprintf("non-scalar value for key %q", k.Value)}
		}
		c.Set(k.Value, v.Value)
	}
	return normalize(c), nil
}

// normalize drops reserved metadata keys and replaces empty values with the
// key itself.
func normalize(in *corpus.Corpus) *corpus.Corpus {
	out := corpus.New()
	for _, k := range in.Keys() {
		if strings.HasPrefix(k, MetaPrefix) {
			continue
		}
		v, _ := in.Get(k)
		if v == "" {
			v = k
		}
		out.Set(k, v)
	}
	return out
}
