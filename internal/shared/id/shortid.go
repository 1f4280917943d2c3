// Package id generates Stripe-style prefixed identifiers such as
// "san_4fK2mPq9XbZ1".
package id

import (
	"crypto/rand"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the length of the random part.
	DefaultLength = 12

	// bytes at or above this value would bias the modulo and are redrawn
	maxUnbiased = 256 - 256%len(alphabet)
)

const (
	PrefixUser          = "u"
	PrefixSanction      = "san"
	PrefixNote          = "note"
	PrefixReport        = "rep"
	PrefixContent       = "content"
	PrefixTicket        = "tic"
	PrefixTicketMessage = "msg"
	PrefixAppeal        = "apl"
	PrefixAIRule        = "air"
)

// Generate returns a uniformly random base62 string of length characters.
// A non-positive length means DefaultLength.
func Generate(length int) string {
	if length <= 0 {
		length = DefaultLength
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4)
	for len(out) < length {
		// crypto/rand.Read never returns an error on supported platforms
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out)
}

// New returns prefix + "_" + a random part of DefaultLength.
func New(prefix string) string {
	return prefix + "_" + Generate(DefaultLength)
}

// HasPrefix reports whether s is a well-formed id with the given prefix.
func HasPrefix(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok || rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if strings.IndexByte(alphabet, rest[i]) < 0 {
			return false
		}
	}
	return true
}

func NewUserID() string          { return New(PrefixUser) }
func NewSanctionID() string      { return New(PrefixSanction) }
func NewNoteID() string          { return New(PrefixNote) }
func NewReportID() string        { return New(PrefixReport) }
func NewContentID() string       { return New(PrefixContent) }
func NewTicketID() string        { return New(PrefixTicket) }
func NewTicketMessageID() string { return New(PrefixTicketMessage) }
func NewAppealID() string        { return New(PrefixAppeal) }
func NewAIRuleID() string        { return New(PrefixAIRule) }
