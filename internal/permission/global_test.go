package permission

import (
	"testing"

	"forum_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanModifyMainContent_AuthorAlwaysWins(t *testing.T) {
	for _, caller := range GlobalRoles() {
		for _, snapshot := range GlobalRoles() {
			ok, err := CanModifyMainContent(caller, true, snapshot)
			require.NoError(t, err)
			assert.True(t, ok, "author %s with snapshot %s", caller, snapshot)
		}
	}
}

func TestCanModifyMainContent(t *testing.T) {
	tests := []struct {
		name     string
		caller   GlobalRole
		snapshot GlobalRole
		want     bool
	}{
		{"admin over admin", GlobalAdmin, GlobalAdmin, true},
		{"admin over user", GlobalAdmin, GlobalUser, true},
		{"manager over user", GlobalManager, GlobalUser, true},
		{"manager over manager", GlobalManager, GlobalManager, false},
		{"manager over admin", GlobalManager, GlobalAdmin, false},
		{"user over user", GlobalUser, GlobalUser, false},
		{"user over manager", GlobalUser, GlobalManager, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanModifyMainContent(tt.caller, false, tt.snapshot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A 以 USER 身份发帖，之后升为 MANAGER；另一个 MANAGER 按快照角色比较，可以编辑
func TestCanModifyMainContent_UsesSnapshotNotLiveRole(t *testing.T) {
	snapshot := GlobalUser
	ok, err := CanModifyMainContent(GlobalManager, false, snapshot)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanModifyMainContent(GlobalManager, false, GlobalManager)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanModifyMainContent_InvalidRole(t *testing.T) {
	_, err := CanModifyMainContent(GlobalRole("ROOT"), false, GlobalUser)
	assert.Equal(t, errorx.CodeInvalidRole, errorx.GetCode(err))

	_, err = CanModifyMainContent(GlobalManager, false, GlobalRole("??"))
	assert.Equal(t, errorx.CodeInvalidRole, errorx.GetCode(err))
}

func TestCanChangeGlobalRole(t *testing.T) {
	tests := []struct {
		name      string
		caller    GlobalRole
		current   GlobalRole
		requested GlobalRole
		isSelf    bool
		want      bool
		code      int
	}{
		{"admin promotes user", GlobalAdmin, GlobalUser, GlobalManager, false, true, 0},
		{"admin demotes other admin", GlobalAdmin, GlobalAdmin, GlobalUser, false, true, 0},
		{"admin self no-op", GlobalAdmin, GlobalAdmin, GlobalAdmin, true, true, 0},
		{"admin self demotion blocked", GlobalAdmin, GlobalAdmin, GlobalManager, true, false, 0},
		{"manager cannot change", GlobalManager, GlobalUser, GlobalManager, false, false, errorx.CodeForbidden},
		{"user cannot change", GlobalUser, GlobalUser, GlobalAdmin, false, false, errorx.CodeForbidden},
		{"unknown requested role", GlobalAdmin, GlobalUser, GlobalRole("OWNER"), false, false, errorx.CodeInvalidParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanChangeGlobalRole(tt.caller, tt.current, tt.requested, tt.isSelf)
			if tt.code != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.code, errorx.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckBanToggle(t *testing.T) {
	assert.NoError(t, CheckBanToggle(GlobalAdmin, false))
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(CheckBanToggle(GlobalAdmin, true)))
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(CheckBanToggle(GlobalManager, false)))
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(CheckBanToggle(GlobalUser, false)))
}

func TestCheckActivation(t *testing.T) {
	assert.NoError(t, CheckActivation(true, false))
	assert.NoError(t, CheckActivation(false, true))
	assert.NoError(t, CheckActivation(false, false))
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(CheckActivation(true, true)))
}

func TestCanModeratePosts(t *testing.T) {
	for role, want := range map[GlobalRole]bool{GlobalAdmin: true, GlobalManager: true, GlobalUser: false} {
		got, err := CanModeratePosts(role)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(role))
	}
	ok, _ := CanManageMainCategories(GlobalManager)
	assert.False(t, ok)
	ok, _ = CanManageMainCategories(GlobalAdmin)
	assert.True(t, ok)
}
