package permission

import (
	"testing"

	"forum_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanModifyCommunityContent(t *testing.T) {
	tests := []struct {
		name     string
		caller   CommunityRole
		isAuthor bool
		snapshot CommunityRole
		want     bool
	}{
		{"member over moderator post", CommunityMember, false, CommunityModerator, false},
		{"admin over moderator post", CommunityAdmin, false, CommunityModerator, true},
		{"owner over owner post", CommunityOwner, false, CommunityOwner, true},
		{"moderator over moderator post", CommunityModerator, false, CommunityModerator, false},
		{"moderator over member post", CommunityModerator, false, CommunityMember, true},
		{"member author", CommunityMember, true, CommunityOwner, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanModifyCommunityContent(tt.caller, tt.isAuthor, tt.snapshot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanKickOrBan(t *testing.T) {
	tests := []struct {
		name          string
		caller        CommunityRole
		target        CommunityRole
		isSelf        bool
		targetIsOwner bool
		want          bool
	}{
		{"owner target is untouchable", CommunityAdmin, CommunityOwner, false, true, false},
		{"owner target even for owner-ranked caller", CommunityOwner, CommunityOwner, false, true, false},
		{"self", CommunityAdmin, CommunityAdmin, true, false, false},
		{"equal rank", CommunityModerator, CommunityModerator, false, false, false},
		{"moderator over member", CommunityModerator, CommunityMember, false, false, true},
		{"admin over moderator", CommunityAdmin, CommunityModerator, false, false, true},
		{"moderator over admin", CommunityModerator, CommunityAdmin, false, false, false},
		{"owner over admin", CommunityOwner, CommunityAdmin, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanKickOrBan(tt.caller, tt.target, tt.isSelf, tt.targetIsOwner)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanChangeCommunityRole(t *testing.T) {
	tests := []struct {
		name                  string
		caller, current, next CommunityRole
		want                  bool
	}{
		{"admin promotes member to moderator", CommunityAdmin, CommunityMember, CommunityModerator, true},
		{"admin cannot promote to admin", CommunityAdmin, CommunityMember, CommunityAdmin, false},
		{"admin cannot demote", CommunityAdmin, CommunityModerator, CommunityMember, false},
		{"owner demotes admin", CommunityOwner, CommunityAdmin, CommunityMember, true},
		{"owner promotes member to admin", CommunityOwner, CommunityMember, CommunityAdmin, true},
		{"owner cannot grant owner", CommunityOwner, CommunityAdmin, CommunityOwner, false},
		{"owner target is fixed", CommunityOwner, CommunityOwner, CommunityAdmin, false},
		{"moderator cannot change", CommunityModerator, CommunityMember, CommunityModerator, false},
		{"member cannot change", CommunityMember, CommunityMember, CommunityModerator, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanChangeCommunityRole(tt.caller, tt.current, tt.next)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := CanChangeCommunityRole(CommunityOwner, CommunityMember, CommunityRole("VIP"))
	assert.Equal(t, errorx.CodeInvalidRole, errorx.GetCode(err))
}

func TestRankThresholds(t *testing.T) {
	announce := map[CommunityRole]bool{
		CommunityOwner: true, CommunityAdmin: true, CommunityModerator: true, CommunityMember: false,
	}
	categories := map[CommunityRole]bool{
		CommunityOwner: true, CommunityAdmin: true, CommunityModerator: false, CommunityMember: false,
	}
	for role, want := range announce {
		got, err := CanCreateAnnouncement(role)
		require.NoError(t, err)
		assert.Equal(t, want, got, "announcement %s", role)

		review, err := CanReviewMembership(role)
		require.NoError(t, err)
		assert.Equal(t, want, review, "review %s", role)
	}
	for role, want := range categories {
		got, err := CanManageCategories(role)
		require.NoError(t, err)
		assert.Equal(t, want, got, "categories %s", role)
	}
}
