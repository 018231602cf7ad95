// Package mention implements @username autocomplete for the post composer.
//
// Offsets are rune indexes into the text, not byte offsets.
package mention

import (
	"strings"
	"unicode"
)

const maxUsernameLength = 30

// Token is the "@query" fragment that ends at the caret.
type Token struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Query string `json:"query"`
}

// ActiveToken returns the mention being typed at caret, if any. The '@' must
// open the text or follow whitespace so e-mail addresses are ignored.
func ActiveToken(text string, caret int) (Token, bool) {
	runes := []rune(text)
	if caret < 0 || caret > len(runes) {
		return Token{}, false
	}
	start := caret
	for start > 0 && isUsernameRune(runes[start-1]) {
		start--
		if caret-start > maxUsernameLength {
			return Token{}, false
		}
	}
	if start == 0 || runes[start-1] != '@' {
		return Token{}, false
	}
	at := start - 1
	if at > 0 && !unicode.IsSpace(runes[at-1]) {
		return Token{}, false
	}
	return Token{Start: at, End: caret, Query: string(runes[start:caret])}, true
}

// Extract returns the distinct lower-case usernames mentioned in text.
func Extract(text string) []string {
	var mentions []string
	seen := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		word = strings.TrimLeft(word, "([\"'")
		if !strings.HasPrefix(word, "@") {
			continue
		}
		username := strings.TrimRight(strings.TrimPrefix(word, "@"), ".,!?;:)]\"'")
		username = strings.ToLower(username)
		if !ValidUsername(username) || seen[username] {
			continue
		}
		seen[username] = true
		mentions = append(mentions, username)
	}
	return mentions
}

// Apply replaces tok with "@username " and returns the new text and caret.
func Apply(text string, tok Token, username string) (string, int) {
	runes := []rune(text)
	if tok.Start < 0 || tok.End > len(runes) || tok.Start > tok.End {
		return text, len(runes)
	}
	replacement := []rune("@" + username)
	caret := tok.Start + len(replacement) + 1
	if tok.End >= len(runes) || !unicode.IsSpace(runes[tok.End]) {
		replacement = append(replacement, ' ')
	}
	out := make([]rune, 0, len(runes)+len(replacement))
	out = append(out, runes[:tok.Start]...)
	out = append(out, replacement...)
	out = append(out, runes[tok.End:]...)
	return string(out), caret
}

// ValidUsername reports whether username is 1 to 30 letters, digits, '_', '.'
// or '-'.
func ValidUsername(username string) bool {
	n := 0
	for _, r := range username {
		if !isUsernameRune(r) {
			return false
		}
		n++
	}
	return n >= 1 && n <= maxUsernameLength
}

func isUsernameRune(r rune) bool {
	return r == '_' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
