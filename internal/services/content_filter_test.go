package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilter(t *testing.T) {
	f := NewContentFilter()

	tests := []struct {
		name string
		text string
		ok   bool
		code string
	}{
		{"clean", "Our launch went great this week", true, ""},
		{"empty", "   ", true, ""},
		{"profanity", "what the FUCK is this", false, RejectLanguage},
		{"substring is fine", "classic Scunthorpe assessment", true, ""},
		{"repeated", "buy nowwwwwwwwww", false, RejectSpam},
		{"shouting", "HELLO THERE EVERY SINGLE PERSON", false, RejectCaps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, code := f.Check(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRejectionMessage(t *testing.T) {
	assert.Equal(t, "Your post appears to be spam.", RejectionMessage(RejectSpam))
	assert.Equal(t, "Your post does not meet our content guidelines.", RejectionMessage("other"))
}
