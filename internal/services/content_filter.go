package services

import (
	"regexp"
	"strings"
)

const (
	RejectLanguage = "inappropriate_language"
	RejectSpam     = "spam_detected"
	RejectCaps     = "excessive_caps"
)

var blockedTerms = []string{
	"fuck", "shit", "bitch", "cunt", "asshole",
	"nigger", "faggot", "retard",
	"scam", "phishing", "malware",
}

// ContentFilter screens text published to external platforms on a user's
// behalf. Compiled patterns are read-only after construction.
type ContentFilter struct {
	terms    []*regexp.Regexp
	shouting *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		terms:    make([]*regexp.Regexp, 0, len(blockedTerms)),
		shouting: regexp.MustCompile(`\b[A-Z]{5,}\b`),
	}
	for _, term := range blockedTerms {
		f.terms = append(f.terms, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return f
}

// Check returns ok=false and a rejection code when text is not allowed.
func (f *ContentFilter) Check(text string) (bool, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return true, ""
	}
	for _, re := range f.terms {
		if re.MatchString(text) {
			return false, RejectLanguage
		}
	}
	if longestRun(text) >= 8 {
		return false, RejectSpam
	}
	if len(f.shouting.FindAllString(text, -1)) > 3 {
		return false, RejectCaps
	}
	return true, ""
}

// longestRun returns the length of the longest run of one repeated rune.
func longestRun(text string) int {
	longest, run := 0, 0
	var prev rune = -1
	for _, r := range text {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// RejectionMessage turns a rejection code into client-facing text.
func RejectionMessage(code string) string {
	switch code {
	case RejectLanguage:
		return "Your post contains inappropriate language."
	case RejectSpam:
		return "Your post appears to be spam."
	case RejectCaps:
		return "Please avoid using excessive capital letters."
	}
	return "Your post does not meet our content guidelines."
}
