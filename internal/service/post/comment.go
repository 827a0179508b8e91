package post

import (
	"context"

	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
	"forum_server/internal/model"
	"forum_server/internal/permission"
	"forum_server/internal/service/common"
	"forum_server/pkg/errorx"
	"forum_server/pkg/util/snowflake"
)

// CreateComment 发表评论，只能评论已发布的帖子
func (s *postService) CreateComment(ctx context.Context, callerId string, req request.CreateCommentRequest) (*respond.CommentRespond, error) {
	content, err := common.RequireText("评论内容", req.Content)
	if err != nil {
		return nil, err
	}
	caller, err := common.LoadActor(s.repos.User, callerId)
	if err != nil {
		return nil, err
	}
	post, err := s.repos.Post.FindByUuid(req.PostId)
	if err != nil {
		return nil, err
	}
	if post.Status != permission.PostPublished {
		return nil, errorx.New(errorx.CodeConflict, "帖子尚未发布，不能评论")
	}
	comment := &model.Comment{
		Uuid:             snowflake.GenerateIDString(),
		PostUuid:         post.Uuid,
		AuthorId:         caller.Uuid,
		AuthorGlobalRole: caller.GlobalRole,
		Content:          content,
	}
	if err := s.repos.Comment.Create(comment); err != nil {
		return nil, err
	}
	return toComment(comment), nil
}

// UpdateComment 编辑评论，规则与帖子相同，按评论时的角色快照判断
func (s *postService) UpdateComment(ctx context.Context, callerId string, req request.UpdateCommentRequest) error {
	content, err := common.RequireText("评论内容", req.Content)
	if err != nil {
		return err
	}
	comment, err := s.checkCommentModifier(callerId, req.CommentId)
	if err != nil {
		return err
	}
	return s.repos.Comment.UpdateContent(comment.Uuid, content)
}

// DeleteComment 删除评论
func (s *postService) DeleteComment(ctx context.Context, callerId string, req request.DeleteCommentRequest) error {
	comment, err := s.checkCommentModifier(callerId, req.CommentId)
	if err != nil {
		return err
	}
	return s.repos.Comment.Delete(comment.Uuid)
}

func (s *postService) checkCommentModifier(callerId, commentId string) (*model.Comment, error) {
	caller, err := common.LoadActor(s.repos.User, callerId)
	if err != nil {
		return nil, err
	}
	comment, err := s.repos.Comment.FindByUuid(commentId)
	if err != nil {
		return nil, err
	}
	ok, err := permission.CanModifyMainContent(caller.GlobalRole, comment.AuthorId == callerId, comment.AuthorGlobalRole)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.ErrForbidden
	}
	return comment, nil
}

func toComment(c *model.Comment) *respond.CommentRespond {
	return &respond.CommentRespond{
		Uuid:      c.Uuid,
		PostId:    c.PostUuid,
		AuthorId:  c.AuthorId,
		Content:   c.Content,
		CreatedAt: respond.FormatTime(&c.CreatedAt),
	}
}
