package valueobjects

import "fmt"

type ReportStatus string

const (
	ReportStatusNew       ReportStatus = "new"
	ReportStatusValid     ReportStatus = "valid"
	ReportStatusInvalid   ReportStatus = "invalid"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusEscalated ReportStatus = "escalated"
)

var validReportStatuses = map[ReportStatus]bool{
	ReportStatusNew:       true,
	ReportStatusValid:     true,
	ReportStatusInvalid:   true,
	ReportStatusResolved:  true,
	ReportStatusEscalated: true,
}

func (s ReportStatus) String() string {
	return string(s)
}

func (s ReportStatus) IsValid() bool {
	return validReportStatuses[s]
}

func (s ReportStatus) IsNew() bool {
	return s == ReportStatusNew
}

func NewReportStatus(s string) (ReportStatus, error) {
	st := ReportStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid report status: %s", s)
	}
	return st, nil
}
