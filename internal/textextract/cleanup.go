package textextract

import (
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t]{2,}`)
	newlineRun = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extractor output before it reaches a parser. OCR
// commonly misreads table rules as pipe characters, so those become "I";
// runs of horizontal whitespace collapse to a single space and runs of
// blank lines collapse to one.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "|", "I")
	text = spaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
