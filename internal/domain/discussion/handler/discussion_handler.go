package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"forum_thread/internal/domain/discussion/service"
	"forum_thread/pkg/response"
	"forum_thread/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CommentSubmitter 评论提交
type CommentSubmitter interface {
	CreateComment(ctx context.Context, route service.RouteContext, prior service.FormState, form url.Values) service.FormState
}

type DiscussionHandler struct {
	service  service.DiscussionService
	comments CommentSubmitter
}

func NewDiscussionHandler(s service.DiscussionService, comments CommentSubmitter) *DiscussionHandler {
	return &DiscussionHandler{service: s, comments: comments}
}

// CreateComment 发表评论，表单字段 content、parentId
func (h *DiscussionHandler) CreateComment(c *gin.Context) {
	form, err := submittedForm(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	route := service.RouteContext{PostID: c.Param("postId")}
	parentID := form.Get("parentId")
	if parentID == "" {
		parentID = c.Query("parentId")
	}
	if parentID != "" {
		route.ParentID = &parentID
	}

	state := h.comments.CreateComment(c.Request.Context(), route, service.FormState{}, form)

	switch state.Outcome() {
	case service.OutcomeSuccess:
		response.Success(c, state)
	case service.OutcomeInvalid:
		response.ErrorWithData(c, http.StatusBadRequest, response.ErrCommentInvalid, "invalid comment", state)
	case service.OutcomeUnauthenticated:
		response.ErrorWithData(c, http.StatusUnauthorized, response.ErrNotSignedIn, firstMessage(state), state)
	case service.OutcomeRevalidateFail:
		response.ErrorWithData(c, http.StatusInternalServerError, response.ErrRevalidateFailed, firstMessage(state), state)
	default:
		response.ErrorWithData(c, http.StatusInternalServerError, response.ErrCommentFailed, firstMessage(state), state)
	}
}

// GetPostPage 帖子详情页（含评论树）
func (h *DiscussionHandler) GetPostPage(c *gin.Context) {
	page, err := h.service.GetPostPage(c.Request.Context(), c.Param("slug"), c.Param("postId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTopicNotFound):
			response.Error(c, http.StatusNotFound, response.ErrTopicNotFound, err.Error())
		case errors.Is(err, service.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, page)
}

// GetComments 分页获取帖子评论
func (h *DiscussionHandler) GetComments(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)

	res, err := h.service.ListComments(c.Request.Context(), c.Param("postId"), p)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, res)
}

// GetTopics 话题列表，支持 keyword 搜索
func (h *DiscussionHandler) GetTopics(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)

	res, err := h.service.ListTopics(c.Request.Context(), c.Query("keyword"), p)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, res)
}

// PublishPost 发帖
func (h *DiscussionHandler) PublishPost(c *gin.Context) {
	var input service.PublishPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.PublishPost(c.Request.Context(), c.GetString("userID"), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSlug) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// submittedForm 读取 urlencoded 或 multipart 表单
func submittedForm(c *gin.Context) (url.Values, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		return url.Values(mf.Value), nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}

func firstMessage(state service.FormState) string {
	if len(state.General) > 0 {
		return state.General[0]
	}
	return service.MsgSomethingWrong
}
