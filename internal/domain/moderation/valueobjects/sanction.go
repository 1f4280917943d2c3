package valueobjects

import "fmt"

type SanctionType string

const (
	SanctionTypeBan       SanctionType = "ban"
	SanctionTypeMute      SanctionType = "mute"
	SanctionTypeLimit     SanctionType = "limit"
	SanctionTypeShadowban SanctionType = "shadowban"
	SanctionTypeWarning   SanctionType = "warning"
)

var validSanctionTypes = map[SanctionType]bool{
	SanctionTypeBan:       true,
	SanctionTypeMute:      true,
	SanctionTypeLimit:     true,
	SanctionTypeShadowban: true,
	SanctionTypeWarning:   true,
}

func (t SanctionType) String() string {
	return string(t)
}

func (t SanctionType) IsValid() bool {
	return validSanctionTypes[t]
}

func (t SanctionType) IsBan() bool {
	return t == SanctionTypeBan
}

func (t SanctionType) IsWarning() bool {
	return t == SanctionTypeWarning
}

func NewSanctionType(s string) (SanctionType, error) {
	t := SanctionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid sanction type: %s", s)
	}
	return t, nil
}

type SanctionStatus string

const (
	SanctionStatusActive   SanctionStatus = "active"
	SanctionStatusExpired  SanctionStatus = "expired"
	SanctionStatusCanceled SanctionStatus = "canceled"
)

var validSanctionStatuses = map[SanctionStatus]bool{
	SanctionStatusActive:   true,
	SanctionStatusExpired:  true,
	SanctionStatusCanceled: true,
}

func (s SanctionStatus) String() string {
	return string(s)
}

func (s SanctionStatus) IsValid() bool {
	return validSanctionStatuses[s]
}

func (s SanctionStatus) IsActive() bool {
	return s == SanctionStatusActive
}

func (s SanctionStatus) IsCanceled() bool {
	return s == SanctionStatusCanceled
}

func NewSanctionStatus(s string) (SanctionStatus, error) {
	st := SanctionStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid sanction status: %s", s)
	}
	return st, nil
}
