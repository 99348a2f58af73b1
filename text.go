package ska

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// javaCommentRe matches line and block comments in Java source.
var javaCommentRe = regexp.MustCompile(`(?ms)(//.*?$)|(/\*.*?\*/)`)

// StripJavaComments removes line and block comments from Java source before
// it is fed to the model, and trims surrounding whitespace.
func StripJavaComments(source string) string {
	return strings.TrimSpace(javaCommentRe.ReplaceAllString(source, ""))
}

// sentenceEnders are the characters accepted as terminal punctuation.
const sentenceEnders = ".?!…~–—"

// Sentence capitalizes the first letter of s and ensures it ends with a
// period unless it already carries terminal punctuation.
func Sentence(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return t
	}
	r := []rune(t)
	r[0] = unicode.ToUpper(r[0])
	t = string(r)
	if strings.ContainsRune(sentenceEnders, r[len(r)-1]) {
		return t
	}
	return t + "."
}

// Lower1 converts the first character of a string to lowercase.
func Lower1(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// PrettyJSON renders a value as 2-space indented JSON, for prompt context
// and debug output.
func PrettyJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ska: marshaling: %w", err)
	}
	return string(data), nil
}
