// Package format holds the pure text helpers shared by every command formatter.
package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"telegram-scraper-bot/internal/domain/model"
)

// MaxMessageLength is the Telegram limit for a single text message, in runes.
const MaxMessageLength = 4096

const (
	codeFence      = "```"
	columnSep      = " | "
	currencyMarker = "$ "
	// NumericWidth is how many characters of a numeric value are kept after the marker.
	NumericWidth = 5
)

// Monospace wraps text in a code block so the client keeps column alignment.
// Backticks inside text are neutralized so scraped content cannot close the block,
// and the result is clipped to MaxMessageLength.
func Monospace(text string) string {
	text = strings.ReplaceAll(text, "`", "'")
	budget := MaxMessageLength - utf8.RuneCountInString(codeFence)*2 - 2
	return codeFence + "\n" + Clip(text, budget) + "\n" + codeFence
}

// Clip cuts s to at most max runes.
func Clip(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// Normalize trims text to limit runes and appends trimEnd when it was too long.
// Shorter text is returned unmodified.
func Normalize(text string, limit int, trimEnd string) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return Clip(text, limit) + trimEnd
}

// CleanText trims whitespace and folds newlines and repeated spaces into single spaces.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CompactLabel turns "Octubre 2018" into "Oct. '18".
// Anything that is not exactly two tokens is returned unmodified.
func CompactLabel(label string) string {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return label
	}
	month, year := []rune(parts[0]), []rune(parts[1])
	if len(month) > 3 {
		month = month[:3]
	}
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	return fmt.Sprintf("%s. '%s", string(month), string(year))
}

// Currency prefixes numeric fields with the currency marker and keeps the first
// NumericWidth characters. Textual fields pass through.
func Currency(f model.Field) string {
	if !f.Numeric {
		return f.Value
	}
	return currencyMarker + Clip(f.Value, NumericWidth)
}

// Columns pads each value to its width and joins them with " | ".
// Values longer than their width are kept whole. Missing widths mean no padding.
func Columns(widths []int, values ...string) string {
	cells := make([]string, len(values))
	for i, v := range values {
		if i < len(widths) {
			cells[i] = fmt.Sprintf("%-*s", widths[i], v)
			continue
		}
		cells[i] = v
	}
	return strings.Join(cells, columnSep)
}

var linkLabelReplacer = strings.NewReplacer("[", "(", "]", ")")

// LinkLabel makes text safe to use as the label of a Markdown link.
func LinkLabel(text string) string {
	return linkLabelReplacer.Replace(text)
}

var linkTargetReplacer = strings.NewReplacer("(", "%28", ")", "%29")

// LinkTarget percent-encodes parentheses so a URL cannot close a Markdown link early.
func LinkTarget(url string) string {
	return linkTargetReplacer.Replace(url)
}

var markdownReplacer = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown escapes the characters legacy Telegram Markdown treats as entities.
func EscapeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}
