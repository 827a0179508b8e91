package permission

import (
	"testing"

	"forum_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(true))
	assert.Equal(t, StatusActive, InitialStatus(false))
}

func TestTransition_Allowed(t *testing.T) {
	tests := []struct {
		from   MembershipStatus
		action MembershipAction
		to     MembershipStatus
	}{
		{StatusPending, ActionApprove, StatusActive},
		{StatusPending, ActionReject, StatusRemoved},
		{StatusActive, ActionBan, StatusBanned},
		{StatusActive, ActionKick, StatusRemoved},
		{StatusActive, ActionLeave, StatusRemoved},
		{StatusBanned, ActionUnban, StatusActive},
	}
	for _, tt := range tests {
		got, err := Transition(tt.from, tt.action)
		require.NoError(t, err, "%s + %s", tt.from, tt.action)
		assert.Equal(t, tt.to, got)
	}
}

func TestTransition_Rejected(t *testing.T) {
	tests := []struct {
		from   MembershipStatus
		action MembershipAction
	}{
		{StatusBanned, ActionKick},
		{StatusBanned, ActionApprove},
		{StatusBanned, ActionLeave},
		{StatusActive, ActionApprove},
		{StatusActive, ActionUnban},
		{StatusPending, ActionBan},
		{StatusRemoved, ActionUnban},
	}
	for _, tt := range tests {
		got, err := Transition(tt.from, tt.action)
		require.Error(t, err, "%s + %s", tt.from, tt.action)
		assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
		assert.Equal(t, tt.from, got)
	}
}

func TestMembershipStatus_Valid(t *testing.T) {
	assert.True(t, StatusBanned.Valid())
	assert.False(t, StatusRemoved.Valid())
	assert.False(t, MembershipStatus("LEFT").Valid())
}
