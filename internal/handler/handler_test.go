package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
	"forum_server/internal/service"
	"forum_server/pkg/constants"
	"forum_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMemberService struct {
	service.MemberService
	joinErr error
	gotUser string
	gotJoin request.JoinCommunityRequest
}

func (s *stubMemberService) JoinCommunity(_ context.Context, userId string, req request.JoinCommunityRequest) (*respond.JoinRespond, error) {
	s.gotUser = userId
	s.gotJoin = req
	if s.joinErr != nil {
		return nil, s.joinErr
	}
	return &respond.JoinRespond{Status: "PENDING"}, nil
}

type stubCommunityService struct {
	service.CommunityService
	called bool
}

func (s *stubCommunityService) ChangeMemberRole(context.Context, string, request.ChangeMemberRoleRequest) error {
	s.called = true
	return nil
}

func newTestEngine(t *testing.T, h *Handlers) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, InitTrans("zh"))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.CtxUserID, "u-caller")
		c.Next()
	})
	if h.Member != nil {
		r.POST("/join", h.Member.Join)
	}
	if h.Community != nil {
		r.POST("/role", h.Community.ChangeMemberRole)
	}
	return r
}

func doJSON(r *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestJoin_Success(t *testing.T) {
	svc := &stubMemberService{}
	r := newTestEngine(t, &Handlers{Member: NewMemberHandler(svc)})

	w, body := doJSON(r, "/join", `{"community_id":"c-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, errorx.CodeSuccess, body["code"])
	assert.Equal(t, "PENDING", body["data"].(map[string]any)["status"])
	assert.Equal(t, "u-caller", svc.gotUser)
	assert.Equal(t, "c-1", svc.gotJoin.CommunityId)
}

func TestJoin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"forbidden", errorx.New(errorx.CodeForbidden, "已被封禁"), http.StatusForbidden, errorx.CodeForbidden},
		{"conflict", errorx.ErrConflict, http.StatusConflict, errorx.CodeConflict},
		{"throttled", errorx.ErrTooManyRequests, http.StatusTooManyRequests, errorx.CodeTooManyRequests},
		{"not found", errorx.ErrNotFound, http.StatusNotFound, errorx.CodeNotFound},
		{"db error hidden", errorx.Wrap(errors.New("deadlock"), errorx.CodeDBError, "写入失败"), http.StatusInternalServerError, errorx.CodeServerBusy},
		{"plain error hidden", errors.New("boom"), http.StatusInternalServerError, errorx.CodeServerBusy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(t, &Handlers{Member: NewMemberHandler(&stubMemberService{joinErr: tt.err})})
			w, body := doJSON(r, "/join", `{"community_id":"c-1"}`)
			assert.Equal(t, tt.status, w.Code)
			assert.EqualValues(t, tt.code, body["code"])
		})
	}
}

func TestJoin_InternalErrorDoesNotLeakDetail(t *testing.T) {
	r := newTestEngine(t, &Handlers{Member: NewMemberHandler(&stubMemberService{
		joinErr: errorx.Wrap(errors.New("dial tcp 10.0.0.1:3306"), errorx.CodeDBError, "写入失败"),
	})})
	w, _ := doJSON(r, "/join", `{"community_id":"c-1"}`)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	assert.Contains(t, w.Body.String(), errorx.ErrServerBusy.Msg)
}

func TestJoin_ParamErrors(t *testing.T) {
	svc := &stubMemberService{}
	r := newTestEngine(t, &Handlers{Member: NewMemberHandler(svc)})

	w, body := doJSON(r, "/join", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, errorx.CodeInvalidParam, body["code"])
	msg, ok := body["msg"].(map[string]any)
	require.True(t, ok, "validator errors are translated per field")
	assert.Contains(t, msg, "community_id")

	w, body = doJSON(r, "/join", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errorx.ErrInvalidParam.Msg, body["msg"])
	assert.Empty(t, svc.gotUser, "service must not be called on bad input")
}

func TestChangeMemberRole_RoleValidator(t *testing.T) {
	svc := &stubCommunityService{}
	r := newTestEngine(t, &Handlers{Community: NewCommunityHandler(svc)})

	w, body := doJSON(r, "/role", `{"community_id":"c-1","user_id":"u-2","role":"VIP"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := body["msg"].(map[string]any)
	assert.Contains(t, msg["role"], "MODERATOR")
	assert.False(t, svc.called)

	w, _ = doJSON(r, "/role", `{"community_id":"c-1","user_id":"u-2","role":"MODERATOR"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.called)
}
