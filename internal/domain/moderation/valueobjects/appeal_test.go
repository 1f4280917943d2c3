package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppealStatus(t *testing.T) {
	for _, valid := range []string{"new", "pending", "approved", "rejected"} {
		got, err := NewAppealStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, got.String())
	}

	_, err := NewAppealStatus("accepted")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid appeal status")
}

func TestAppealStatus_IsOpen(t *testing.T) {
	assert.True(t, AppealStatusNew.IsOpen())
	assert.True(t, AppealStatusPending.IsOpen())
	assert.False(t, AppealStatusApproved.IsOpen())
	assert.False(t, AppealStatusRejected.IsOpen())
	assert.True(t, AppealStatusApproved.IsApproved())
}

func TestNewReportStatus(t *testing.T) {
	for _, valid := range []string{"new", "valid", "invalid", "resolved", "escalated"} {
		_, err := NewReportStatus(valid)
		assert.NoError(t, err)
	}
	_, err := NewReportStatus("closed")
	assert.Error(t, err)
}

func TestNewUserStatus(t *testing.T) {
	st, err := NewUserStatus("banned")
	assert.NoError(t, err)
	assert.True(t, st.IsBanned())

	_, err = NewUserStatus("suspended")
	assert.Error(t, err)
}
