// Package corpus defines the ordered key→source-text mapping extracted from
// an authoritative source document for one translation run.
//
// Key order is the order of first appearance in the source document; a
// Corpus is never mutated after extraction. Ordering matters because the
// persisted artifact is rebuilt in corpus order on every run.
package corpus

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Corpus is an ordered mapping of unique string keys to source text.
type Corpus struct {
	keys   []string
	values map[string]string
}

// New returns an empty Corpus.
func New() *Corpus {
	return &Corpus{values: make(map[string]string)}
}

// Set inserts or updates an entry. A new key is appended to the order;
// setting an existing key overwrites its value but keeps its position.
func (c *Corpus) Set(key, value string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the source text for key.
func (c *Corpus) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is present.
func (c *Corpus) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.keys)
}

// Keys returns the keys in first-appearance order. The returned slice is a
// copy; callers may modify it freely.
func (c *Corpus) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Map returns an unordered copy of the entries.
func (c *Corpus) Map() map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// ParseOrderedObject decodes a flat JSON object into a Corpus, preserving
// the order keys appear in the document. encoding/json maps are unordered,
// so the object is walked token by token instead.
func ParseOrderedObject(data []byte) (*Corpus, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected {, got %v", t)
	}

	c := New()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}

		vt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		value, ok := vt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string value for key %q, got %T", key, vt)
		}

		c.Set(key, value)
	}

	return c, nil
}
