// Package placeholder protects the non-translatable parts of a UI string —
// shell-style variables ($USER, ${HOME}), printf verbs (%s, %d), HTML/XML
// tags, and URLs — by replacing them with numbered markers ([PH0], [PH1],
// …) that the provider is instructed to preserve. After translation,
// Restore substitutes the originals back.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reShellVar  = regexp.MustCompile(`\$\{[A-Za-z0-9_.]+\}|\$[A-Za-z_][A-Za-z0-9_.]*`)
	rePrintfFmt = regexp.MustCompile(`%[+\-# 0]*\d*(?:\.\d+)?[bcdeEfgGoqstuvxX]`)
	reMarkupTag = regexp.MustCompile(`<[^<>]+>`)
	reURL       = regexp.MustCompile(`https?://[^\s"']+`)

	reMarker = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Protect replaces protected segments with numbered markers in the order
// they appear. It returns the modified text and the captured originals for
// Restore.
func Protect(text string) (string, []string) {
	var originals []string

	replace := func(match string) string {
		marker := fmt.Sprintf("[PH%d]", len(originals))
		originals = append(originals, match)
		return marker
	}

	// URLs first (they may contain characters the other patterns match),
	// then markup, then variables and format verbs.
	text = reURL.ReplaceAllStringFunc(text, replace)
	text = reMarkupTag.ReplaceAllStringFunc(text, replace)
	text = reShellVar.ReplaceAllStringFunc(text, replace)
	text = rePrintfFmt.ReplaceAllStringFunc(text, replace)

	return text, originals
}

// Restore substitutes [PHn] markers back with the originals captured by
// Protect. Unknown indices are left as-is.
func Restore(text string, originals []string) string {
	return reMarker.ReplaceAllStringFunc(text, func(match string) string {
		sub := reMarker.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		idx := 0
		fmt.Sscanf(sub[1], "%d", &idx)
		if idx < 0 || idx >= len(originals) {
			return match
		}
		return originals[idx]
	})
}

// Missing returns the indices of markers created by Protect that no longer
// appear in the translated text. A non-empty result means the provider
// dropped content and the outcome must be treated as a failure.
func Missing(text string, originals []string) []int {
	var missing []int
	for i := range originals {
		if !strings.Contains(text, fmt.Sprintf("[PH%d]", i)) {
			missing = append(missing, i)
		}
	}
	return missing
}

// InstructionHint is appended to the provider's system instruction so the
// model knows to leave markers intact.
func InstructionHint() string {
	return "Preserve all [PHn] markers exactly as they appear — do not translate, move, or remove them."
}
