package translit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Script identifies the source writing system of the text to transliterate.
type Script string

const (
	// ScriptUkrainian selects the Ukrainian BGN/PCGN table.
	ScriptUkrainian Script = "ukrainian"

	// ScriptRussian selects the Russian BGN/PCGN table.
	ScriptRussian Script = "russian"
)

var tables = map[Script]*table{
	ScriptUkrainian: ukrainianBGN,
	ScriptRussian:   russianBGN,
}

// icuIDs maps ICU transliterator ids to scripts.
var icuIDs = map[string]Script{
	"ukrainian-latin/bgn": ScriptUkrainian,
	"russian-latin/bgn":   ScriptRussian,
}

// ParseScript resolves a script name. Both the short names ("ukrainian",
// "russian") and ICU ids ("Ukrainian-Latin/BGN") are accepted, case-insensitively.
func ParseScript(name string) (Script, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if s, ok := icuIDs[key]; ok {
		return s, nil
	}
	if _, ok := tables[Script(key)]; ok {
		return Script(key), nil
	}
	return "", fmt.Errorf("unknown source script %q", name)
}

// Scripts returns the supported scripts in a stable order.
func Scripts() []Script {
	return []Script{ScriptUkrainian, ScriptRussian}
}

// ID returns the ICU transliterator id equivalent to s.
func (s Script) ID() string {
	switch s {
	case ScriptUkrainian:
		return "Ukrainian-Latin/BGN"
	case ScriptRussian:
		return "Russian-Latin/BGN"
	}
	return string(s)
}

// Engine transliterates text from a Cyrillic script to Latin.
//
// Engine is stateless and safe for concurrent use.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Transliterate converts text written in script to Latin script.
//
// Characters the table does not know, including all Latin text, pass
// through unchanged. An unknown script returns text as is.
func (e *Engine) Transliterate(script Script, text string) string {
	tbl, ok := tables[script]
	if !ok || !hasCyrillic(text) {
		return text
	}

	t := transform.Chain(norm.NFC, &transformer{table: tbl})
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Func returns a function bound to script, for callers that only need
// a string mapping.
func (e *Engine) Func(script Script) func(string) string {
	return func(text string) string {
		return e.Transliterate(script, text)
	}
}

func hasCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

// transformer applies a table rune by rune. It needs one rune of
// lookahead for case and separator decisions, and remembers the previous
// rune across calls for word-initial rules.
type transformer struct {
	table *table
	prev  rune
}

func (t *transformer) Reset() {
	t.prev = 0
}

func (t *transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		next := rune(-1)
		rest := src[nSrc+size:]
		switch {
		case len(rest) > 0:
			if !atEOF && !utf8.FullRune(rest) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			next, _ = utf8.DecodeRune(rest)
		case !atEOF:
			return nDst, nSrc, transform.ErrShortSrc
		}

		out, ok := t.table.render(t.prev, r, next)
		if !ok {
			out = string(src[nSrc : nSrc+size])
		}
		if nDst+len(out) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += size
		t.prev = r
	}
	return nDst, nSrc, nil
}

// render returns the Latin form of r given its neighbours. ok is false
// when r is not handled by the table.
func (tb *table) render(prev, r, next rune) (string, bool) {
	if isApostrophe(r) {
		if tb.apostrophe != "" && unicode.Is(unicode.Cyrillic, prev) {
			return tb.apostrophe, true
		}
		return "", false
	}

	lower := unicode.ToLower(r)
	out, ok := tb.letters[lower]
	if !ok {
		return "", false
	}
	if alt, ok := tb.initial[lower]; ok && tb.wordInitial(prev) {
		out = alt
	}
	out = applyCase(out, r, prev, next)
	if tb.separators[[2]rune{lower, unicode.ToLower(next)}] {
		out += middleDot
	}
	return out, true
}

func (tb *table) wordInitial(prev rune) bool {
	if prev == 0 || !unicode.IsLetter(prev) {
		return true
	}
	return tb.afterInitial[unicode.ToLower(prev)]
}

// applyCase carries the case of r over to its Latin form. Multi-letter
// forms are fully upper-cased inside upper-case words ("SHCH") and
// title-cased otherwise ("Shch").
func applyCase(out string, r, prev, next rune) string {
	if !unicode.IsUpper(r) || out == "" {
		return out
	}
	if utf8.RuneCountInString(out) > 1 &&
		(unicode.IsUpper(next) || (!unicode.IsLetter(next) && unicode.IsUpper(prev))) {
		return strings.ToUpper(out)
	}
	first, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(first)) + out[size:]
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}
