package permission

import (
	"testing"
	"time"

	"forum_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	out, err := Submit(PostDraft, true, now)
	require.NoError(t, err)
	assert.Equal(t, PostPending, out.Status)
	assert.False(t, out.IncrementTags)
	assert.Nil(t, out.ApprovedAt)

	out, err = Submit(PostDraft, false, now)
	require.NoError(t, err)
	assert.Equal(t, PostPublished, out.Status)
	assert.True(t, out.IncrementTags)
	assert.Nil(t, out.ApprovedAt, "direct publish is not an approval")
	assert.Empty(t, out.ApprovedById)

	_, err = Submit(PostPending, true, now)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestApprove(t *testing.T) {
	now := time.Now()

	out, err := Approve(PostPending, "u-admin", now)
	require.NoError(t, err)
	assert.Equal(t, PostPublished, out.Status)
	assert.Equal(t, "u-admin", out.ApprovedById)
	assert.Empty(t, out.RejectedReason)
	assert.True(t, out.IncrementTags)
	assert.True(t, out.Notify)
	assert.True(t, out.Changed())

	again, err := Approve(PostPublished, "u-admin", now)
	require.NoError(t, err)
	assert.Equal(t, PostPublished, again.Status)
	assert.False(t, again.IncrementTags, "second approval must not count tags again")
	assert.False(t, again.Notify)
	assert.False(t, again.Changed())

	for _, s := range []PostStatus{PostDraft, PostRejected} {
		_, err := Approve(s, "u-admin", now)
		assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err), string(s))
	}
}

func TestReject(t *testing.T) {
	out, err := Reject(PostPending, "  spam  ")
	require.NoError(t, err)
	assert.Equal(t, PostRejected, out.Status)
	assert.Equal(t, "spam", out.RejectedReason)
	assert.Nil(t, out.ApprovedAt)
	assert.Empty(t, out.ApprovedById)
	assert.False(t, out.IncrementTags)
	assert.True(t, out.Notify)

	again, err := Reject(PostRejected, "spam")
	require.NoError(t, err)
	assert.False(t, again.Notify)

	_, err = Reject(PostPublished, "late")
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestReject_EmptyReasonIsValidationError(t *testing.T) {
	for _, reason := range []string{"", "   ", "\n\t"} {
		_, err := Reject(PostPending, reason)
		require.Error(t, err)
		assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	}
	// 原因校验先于状态校验
	_, err := Reject(PostPublished, "")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}
