// Package postprocess removes common LLM artifacts from translated UI
// strings before they are merged into an artifact: reasoning blocks,
// echoed instructions, and wrapping quotes the model added on its own.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean strips LLM artifacts from text and returns the trimmed result.
func Clean(text string) string {
	text = stripReasoningBlocks(text)
	text = stripEchoPrefix(text)
	text = stripWrappingQuotes(text)
	return strings.TrimSpace(text)
}

// reasoningBlockRe matches complete <think>…</think> style blocks. Each tag
// variant is listed explicitly because RE2 has no backreferences.
var reasoningBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// openReasoningRe matches a reasoning tag whose closing tag never arrived
// (the model was cut off mid-thought).
var openReasoningRe = regexp.MustCompile(`(?is)(?:<thinking>|<think>|<reasoning>).*$`)

func stripReasoningBlocks(text string) string {
	text = reasoningBlockRe.ReplaceAllString(text, "")
	text = openReasoningRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// echoPrefixRe matches introductory phrases models prepend even when told
// not to. Anchored at the start and requiring a colon to avoid eating
// legitimate content.
var echoPrefixRe = regexp.MustCompile(
	`(?i)^(?:(?:certainly|sure|of course)[,.]? )?(?:here(?:'s| is)(?: the)? )?(?:the )?(?:translated (?:text|string)|translation|output)\s*:\s*`,
)

func stripEchoPrefix(text string) string {
	text = strings.TrimSpace(text)
	if loc := echoPrefixRe.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[loc[1]:])
	}
	return text
}

// stripWrappingQuotes removes one pair of outer quotes when the entire
// string is wrapped in them. UI strings are short, so a leading and a
// trailing quote almost always means the model quoted its answer.
func stripWrappingQuotes(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	switch {
	case first == '"' && last == '"',
		first == '\'' && last == '\'',
		first == '«' && last == '»',
		first == '“' && last == '”',
		first == '‘' && last == '’':
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
