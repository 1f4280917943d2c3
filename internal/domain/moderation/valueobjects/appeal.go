package valueobjects

import "fmt"

type AppealStatus string

const (
	AppealStatusNew      AppealStatus = "new"
	AppealStatusPending  AppealStatus = "pending"
	AppealStatusApproved AppealStatus = "approved"
	AppealStatusRejected AppealStatus = "rejected"
)

var validAppealStatuses = map[AppealStatus]bool{
	AppealStatusNew:      true,
	AppealStatusPending:  true,
	AppealStatusApproved: true,
	AppealStatusRejected: true,
}

func (s AppealStatus) String() string {
	return string(s)
}

func (s AppealStatus) IsValid() bool {
	return validAppealStatuses[s]
}

// IsOpen reports whether the appeal still awaits a decision.
func (s AppealStatus) IsOpen() bool {
	return s == AppealStatusNew || s == AppealStatusPending
}

func (s AppealStatus) IsApproved() bool {
	return s == AppealStatusApproved
}

func NewAppealStatus(s string) (AppealStatus, error) {
	st := AppealStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid appeal status: %s", s)
	}
	return st, nil
}
