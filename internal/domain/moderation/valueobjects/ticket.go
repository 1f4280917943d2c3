package valueobjects

import "fmt"

type TicketStatus string

const (
	TicketStatusNew       TicketStatus = "new"
	TicketStatusProgress  TicketStatus = "progress"
	TicketStatusWaiting   TicketStatus = "waiting"
	TicketStatusSolved    TicketStatus = "solved"
	TicketStatusClosed    TicketStatus = "closed"
	TicketStatusEscalated TicketStatus = "escalated"
)

var validTicketStatuses = map[TicketStatus]bool{
	TicketStatusNew:       true,
	TicketStatusProgress:  true,
	TicketStatusWaiting:   true,
	TicketStatusSolved:    true,
	TicketStatusClosed:    true,
	TicketStatusEscalated: true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

// IsOpen reports whether the ticket still needs moderator attention.
func (ts TicketStatus) IsOpen() bool {
	switch ts {
	case TicketStatusNew, TicketStatusProgress, TicketStatusEscalated:
		return true
	}
	return false
}

func (ts TicketStatus) IsWaiting() bool {
	return ts == TicketStatusWaiting
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

var validTicketPriorities = map[TicketPriority]bool{
	TicketPriorityLow:    true,
	TicketPriorityNormal: true,
	TicketPriorityHigh:   true,
	TicketPriorityUrgent: true,
}

func (p TicketPriority) String() string {
	return string(p)
}

func (p TicketPriority) IsValid() bool {
	return validTicketPriorities[p]
}

func NewTicketPriority(s string) (TicketPriority, error) {
	p := TicketPriority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid ticket priority: %s", s)
	}
	return p, nil
}
