package service

import (
	"context"
	"fmt"
	"net/url"

	"forum_thread/internal/domain/discussion/model"
	"forum_thread/internal/pkg/auth"
	"forum_thread/internal/pkg/paths"
	"forum_thread/internal/pkg/revalidate"
	"forum_thread/pkg/metrics"

	"go.uber.org/zap"
)

// CommentStore 评论提交依赖的持久化能力
type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	FindTopicByPostID(ctx context.Context, postID string) (*model.Topic, error)
}

// RouteContext 路由参数，ParentID 为 nil 表示一级评论
type RouteContext struct {
	PostID   string
	ParentID *string
}

type CommentService struct {
	store       CommentStore
	sessions    auth.SessionResolver
	revalidator revalidate.Revalidator
	maxLength   int
	log         *zap.Logger
}

func NewCommentService(store CommentStore, sessions auth.SessionResolver, rv revalidate.Revalidator, maxLength int, log *zap.Logger) *CommentService {
	return &CommentService{
		store:       store,
		sessions:    sessions,
		revalidator: rv,
		maxLength:   maxLength,
		log:         log,
	}
}

// CreateComment 校验 -> 鉴权 -> 写入 -> 查找话题 -> 刷新页面缓存
// 所有失败都以 FormState 返回，不向调用方返回 error
// 上一次的表单状态不参与计算
func (s *CommentService) CreateComment(ctx context.Context, route RouteContext, _ FormState, form url.Values) FormState {
	state := s.createComment(ctx, route, form)
	metrics.CommentSubmissionsTotal.WithLabelValues(string(state.Outcome())).Inc()
	return state
}

func (s *CommentService) createComment(ctx context.Context, route RouteContext, form url.Values) FormState {
	input, fieldErrs := ValidateCommentInput(form, s.maxLength)
	if fieldErrs != nil {
		return fieldState(fieldErrs)
	}

	session, err := s.sessions.Session(ctx)
	if err != nil {
		s.log.Warn("resolve session failed", zap.Error(err))
	}
	userID := session.UserID()
	if userID == "" {
		return generalState(OutcomeUnauthenticated, MsgSignInRequired)
	}

	res := s.insert(ctx, &model.Comment{
		Content:  input.Content,
		PostID:   route.PostID,
		ParentID: route.ParentID,
		UserID:   userID,
	})
	if res.comment == nil {
		s.log.Error("create comment failed",
			zap.String("post_id", route.PostID),
			zap.String("user_id", userID),
			zap.String("reason", res.reason),
		)
		return generalState(OutcomePersistFailed, res.reason)
	}

	// 评论已写入，之后的失败不回滚
	topic, err := s.store.FindTopicByPostID(ctx, route.PostID)
	if err != nil {
		s.log.Error("find topic for post failed", zap.String("post_id", route.PostID), zap.Error(err))
		return generalState(OutcomeRevalidateFail, MsgRevalidateFailed)
	}
	if topic == nil {
		s.log.Warn("post has no topic, page not revalidated",
			zap.String("post_id", route.PostID),
			zap.String("comment_id", res.comment.ID),
		)
		return generalState(OutcomeRevalidateFail, MsgRevalidateFailed)
	}

	s.revalidator.Revalidate(ctx, paths.PostShow(topic.Slug, route.PostID))
	return successState()
}

// insertResult 写入结果：comment 非 nil 表示成功，否则 reason 为失败原因
type insertResult struct {
	comment *model.Comment
	reason  string
}

func (s *CommentService) insert(ctx context.Context, comment *model.Comment) (res insertResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic while creating comment", zap.String("panic", fmt.Sprint(r)))
			res = insertResult{reason: failureReason(r)}
		}
	}()

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return insertResult{reason: failureReason(err)}
	}
	return insertResult{comment: comment}
}

// failureReason error 取其信息，其余值或空信息使用通用提示
func failureReason(v any) string {
	if err, ok := v.(error); ok && err.Error() != "" {
		return err.Error()
	}
	return MsgSomethingWrong
}
