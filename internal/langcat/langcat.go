// Package langcat is the static language catalog: code → display name and
// native name. Locale variants (pt_BR, pt-BR) are resolved via
// normalization and base-language fallback; codes outside the registry fall
// back to CLDR display names from golang.org/x/text.
package langcat

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Descriptor describes one target language.
type Descriptor struct {
	Code       string
	Name       string // English display name
	NativeName string
}

var registry = map[string]Descriptor{
	"ar":    {Code: "ar", Name: "Arabic", NativeName: "العربية"},
	"bg":    {Code: "bg", Name: "Bulgarian", NativeName: "Български"},
	"cs":    {Code: "cs", Name: "Czech", NativeName: "Čeština"},
	"da":    {Code: "da", Name: "Danish", NativeName: "Dansk"},
	"de":    {Code: "de", Name: "German", NativeName: "Deutsch"},
	"el":    {Code: "el", Name: "Greek", NativeName: "Ελληνικά"},
	"en":    {Code: "en", Name: "English", NativeName: "English"},
	"es":    {Code: "es", Name: "Spanish", NativeName: "Español"},
	"et":    {Code: "et", Name: "Estonian", NativeName: "Eesti"},
	"fa":    {Code: "fa", Name: "Persian", NativeName: "فارسی"},
	"fi":    {Code: "fi", Name: "Finnish", NativeName: "Suomi"},
	"fr":    {Code: "fr", Name: "French", NativeName: "Français"},
	"he":    {Code: "he", Name: "Hebrew", NativeName: "עברית"},
	"hi":    {Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	"hr":    {Code: "hr", Name: "Croatian", NativeName: "Hrvatski"},
	"hu":    {Code: "hu", Name: "Hungarian", NativeName: "Magyar"},
	"id":    {Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia"},
	"is":    {Code: "is", Name: "Icelandic", NativeName: "Íslenska"},
	"it":    {Code: "it", Name: "Italian", NativeName: "Italiano"},
	"ja":    {Code: "ja", Name: "Japanese", NativeName: "日本語"},
	"ko":    {Code: "ko", Name: "Korean", NativeName: "한국어"},
	"lt":    {Code: "lt", Name: "Lithuanian", NativeName: "Lietuvių"},
	"lv":    {Code: "lv", Name: "Latvian", NativeName: "Latviešu"},
	"nl":    {Code: "nl", Name: "Dutch", NativeName: "Nederlands"},
	"no":    {Code: "no", Name: "Norwegian", NativeName: "Norsk"},
	"pl":    {Code: "pl", Name: "Polish", NativeName: "Polski"},
	"pt":    {Code: "pt", Name: "Portuguese", NativeName: "Português"},
	"pt-BR": {Code: "pt-BR", Name: "Brazilian Portuguese", NativeName: "Português (Brasil)"},
	"pt-PT": {Code: "pt-PT", Name: "European Portuguese", NativeName: "Português (Portugal)"},
	"ro":    {Code: "ro", Name: "Romanian", NativeName: "Română"},
	"ru":    {Code: "ru", Name: "Russian", NativeName: "Русский"},
	"sk":    {Code: "sk", Name: "Slovak", NativeName: "Slovenčina"},
	"sl":    {Code: "sl", Name: "Slovenian", NativeName: "Slovenščina"},
	"sr":    {Code: "sr", Name: "Serbian", NativeName: "Српски"},
	"sv":    {Code: "sv", Name: "Swedish", NativeName: "Svenska"},
	"th":    {Code: "th", Name: "Thai", NativeName: "ไทย"},
	"tr":    {Code: "tr", Name: "Turkish", NativeName: "Türkçe"},
	"uk":    {Code: "uk", Name: "Ukrainian", NativeName: "Українська"},
	"vi":    {Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt"},
	"zh-CN": {Code: "zh-CN", Name: "Simplified Chinese", NativeName: "简体中文"},
	"zh-TW": {Code: "zh-TW", Name: "Traditional Chinese", NativeName: "繁體中文"},
}

// canonicalize maps variants like pt_br and PT-br to pt-BR.
func canonicalize(code string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Lookup returns the descriptor for a language code. Registry entries win;
// unknown-but-parseable codes get CLDR display and self names; anything
// else is not found.
func Lookup(code string) (Descriptor, bool) {
	if d, ok := registry[code]; ok {
		return d, true
	}
	normalized := canonicalize(code)
	if d, ok := registry[normalized]; ok {
		return d, true
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if d, ok := registry[parts[0]]; ok {
			// Keep the caller's region in the code so artifacts stay
			// distinguishable (pt-MZ resolves to Portuguese metadata).
			d.Code = normalized
			return d, true
		}
	}

	tag, err := language.Parse(normalized)
	if err != nil {
		return Descriptor{}, false
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return Descriptor{}, false
	}
	native := display.Self.Name(tag)
	if native == "" {
		native = name
	}
	return Descriptor{Code: normalized, Name: name, NativeName: native}, true
}

// All returns the registry entries sorted by code, for display purposes.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
