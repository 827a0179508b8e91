package permission

import (
	"testing"

	"forum_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_FollowsDeclaredOrder(t *testing.T) {
	for i, r := range GlobalRoles() {
		got, err := Rank(r)
		require.NoError(t, err)
		assert.Equal(t, i, got, "global role %s", r)
	}
	for i, r := range CommunityRoles() {
		got, err := Rank(r)
		require.NoError(t, err)
		assert.Equal(t, i, got, "community role %s", r)
	}
}

func TestRank_UnknownRoleIsInvalidRole(t *testing.T) {
	_, err := Rank(GlobalRole("ROOT"))
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidRole, errorx.GetCode(err))

	_, err = Rank(CommunityRole(""))
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidRole, errorx.GetCode(err))

	_, err = IsStrictlyHigher(CommunityOwner, CommunityRole("GUEST"))
	assert.Equal(t, errorx.CodeInvalidRole, errorx.GetCode(err))
}

func TestIsStrictlyHigher_IsAntisymmetric(t *testing.T) {
	for _, a := range GlobalRoles() {
		for _, b := range GlobalRoles() {
			ab, err := IsStrictlyHigher(a, b)
			require.NoError(t, err)
			ba, err := IsStrictlyHigher(b, a)
			require.NoError(t, err)
			if a == b {
				assert.False(t, ab)
				continue
			}
			assert.Equal(t, ab, !ba, "%s vs %s", a, b)
		}
	}
	for _, a := range CommunityRoles() {
		for _, b := range CommunityRoles() {
			ab, _ := IsStrictlyHigher(a, b)
			ba, _ := IsStrictlyHigher(b, a)
			if a != b {
				assert.Equal(t, ab, !ba, "%s vs %s", a, b)
			}
		}
	}
}

func TestIsEqualOrHigher(t *testing.T) {
	tests := []struct {
		a, b CommunityRole
		want bool
	}{
		{CommunityOwner, CommunityMember, true},
		{CommunityModerator, CommunityModerator, true},
		{CommunityMember, CommunityModerator, false},
		{CommunityAdmin, CommunityOwner, false},
	}
	for _, tt := range tests {
		got, err := IsEqualOrHigher(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s >= %s", tt.a, tt.b)
	}
}

func TestParseRoles(t *testing.T) {
	r, err := ParseGlobalRole("MANAGER")
	require.NoError(t, err)
	assert.Equal(t, GlobalManager, r)

	_, err = ParseGlobalRole("manager")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	c, err := ParseCommunityRole("MODERATOR")
	require.NoError(t, err)
	assert.Equal(t, CommunityModerator, c)

	_, err = ParseCommunityRole("OWNERS")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestRoleLists_ReturnCopies(t *testing.T) {
	roles := GlobalRoles()
	roles[0] = GlobalUser
	assert.Equal(t, GlobalAdmin, GlobalRoles()[0])
}
