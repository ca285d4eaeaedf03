package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/valko/pereklad/internal/corpus"
	"github.com/valko/pereklad/internal/extract"
	"github.com/valko/pereklad/internal/langcat"
	"github.com/valko/pereklad/internal/provider"
)

// Notice is written into every artifact so hand editors know regeneration
// will overwrite their changes.
const Notice = "Do not edit directly. Generated by pereklad; manual changes are overwritten on the next run."

// Load reads an existing per-language artifact and returns its translations
// keyed by corpus key, metadata excluded. A missing file is not an error:
// the language simply has no translations yet.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	parsed, err := extract.FlatJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return parsed.Map(), nil
}

// Merge folds batch outcomes into the existing translations. Successful
// outcomes insert or overwrite their key; failed outcomes are dropped so a
// stale-but-real translation is never replaced by a fallback.
func Merge(existing map[string]string, outcomes map[string]provider.Outcome) map[string]string {
	merged := make(map[string]string, len(existing)+len(outcomes))
	for k, v := range existing {
		merged[k] = v
	}
	for k, out := range outcomes {
		if out.Succeeded {
			merged[k] = out.ResultText
		}
	}
	return merged
}

// Reorder rebuilds the artifact body in source-corpus key order, dropping
// every key absent from the corpus. Keys the corpus has but merged lacks are
// skipped rather than written empty.
func Reorder(merged map[string]string, source *corpus.Corpus) *corpus.Corpus {
	out := corpus.New()
	for _, key := range source.Keys() {
		if v, ok := merged[key]; ok {
			out.Set(key, v)
		}
	}
	return out
}

// Write serialises the artifact with its @@-metadata header and writes it
// atomically (temp file in the same directory, then rename).
func Write(path string, desc langcat.Descriptor, body *corpus.Corpus) error {
	data := marshal(desc, body)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// marshal emits a flat JSON object with 2-space indentation. Metadata keys
// come first, then the translations in corpus order.
func marshal(desc langcat.Descriptor, body *corpus.Corpus) []byte {
	var buf bytes.Buffer
	buf.WriteString("{\n")

	writePair := func(key, value string, last bool) {
		k, _ := json.Marshal(key)
		v, _ := json.Marshal(value)
		buf.WriteString("  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if !last {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}

	n := body.Len()
	writePair(extract.MetaLocale, desc.Code, false)
	writePair(extract.MetaLanguage, desc.Name, false)
	writePair(extract.MetaNative, desc.NativeName, false)
	writePair(extract.MetaNotice, Notice, n == 0)

	for i, key := range body.Keys() {
		v, _ := body.Get(key)
		writePair(key, v, i == n-1)
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// Path returns the artifact location for a language code, lowercased with
// region separators normalised, e.g. "pt-BR" -> <dir>/pt-br.json.
func Path(dir, code string) string {
	name := strings.ToLower(strings.ReplaceAll(code, "_", "-"))
	return filepath.Join(dir, name+".json")
}
