package application

import (
	"regexp"
	"strings"
)

var (
	codeTriggerRe   = regexp.MustCompile(`^(?:\$|~|\\code|\\c)\s+(?P<code>[\s\S]+)$`)
	ticketTriggerRe = regexp.MustCompile(`\b(?P<ticket>[A-Z][A-Z0-9]*-\d+)\b`)
)

// MatchCode reports whether text asks to be formatted as code: it starts
// with "$", "~", "\c" or "\code" followed by whitespace.
func MatchCode(text string) (string, bool) {
	m := codeTriggerRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	code := strings.TrimSpace(m[codeTriggerRe.SubexpIndex("code")])
	return code, code != ""
}

// MatchTicket returns the first issue id (like "OPS-123") found in text.
func MatchTicket(text string) (string, bool) {
	m := ticketTriggerRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[ticketTriggerRe.SubexpIndex("ticket")], true
}
