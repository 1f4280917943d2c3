package valueobjects

import (
	"fmt"
	"strings"
)

type ContentType string

const (
	ContentTypeNode    ContentType = "node"
	ContentTypeComment ContentType = "comment"
	ContentTypeTrail   ContentType = "trail"
	ContentTypeMedia   ContentType = "media"
)

var validContentTypes = map[ContentType]bool{
	ContentTypeNode:    true,
	ContentTypeComment: true,
	ContentTypeTrail:   true,
	ContentTypeMedia:   true,
}

func (t ContentType) String() string {
	return string(t)
}

func (t ContentType) IsValid() bool {
	return validContentTypes[t]
}

func NewContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid content type: %s", s)
	}
	return t, nil
}

type ContentStatus string

const (
	ContentStatusPending    ContentStatus = "pending"
	ContentStatusResolved   ContentStatus = "resolved"
	ContentStatusHidden     ContentStatus = "hidden"
	ContentStatusRestricted ContentStatus = "restricted"
	ContentStatusEscalated  ContentStatus = "escalated"
)

var validContentStatuses = map[ContentStatus]bool{
	ContentStatusPending:    true,
	ContentStatusResolved:   true,
	ContentStatusHidden:     true,
	ContentStatusRestricted: true,
	ContentStatusEscalated:  true,
}

// decisionStatuses maps moderator actions onto the resulting content status.
var decisionStatuses = map[string]ContentStatus{
	"keep":     ContentStatusResolved,
	"allow":    ContentStatusResolved,
	"dismiss":  ContentStatusResolved,
	"hide":     ContentStatusHidden,
	"delete":   ContentStatusHidden,
	"remove":   ContentStatusHidden,
	"restrict": ContentStatusRestricted,
	"limit":    ContentStatusRestricted,
	"escalate": ContentStatusEscalated,
	"review":   ContentStatusEscalated,
}

func (s ContentStatus) String() string {
	return string(s)
}

func (s ContentStatus) IsValid() bool {
	return validContentStatuses[s]
}

func (s ContentStatus) IsPending() bool {
	return s == ContentStatusPending
}

func NewContentStatus(s string) (ContentStatus, error) {
	st := ContentStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid content status: %s", s)
	}
	return st, nil
}

// ContentStatusForAction returns the status a decision action leads to.
// Unknown actions leave the content pending.
func ContentStatusForAction(action string) ContentStatus {
	if st, ok := decisionStatuses[strings.ToLower(strings.TrimSpace(action))]; ok {
		return st
	}
	return ContentStatusPending
}
