package service

import (
	"context"
	"testing"
	"time"

	"forum_thread/internal/domain/discussion/model"
	"forum_thread/internal/pkg/paths"
	"forum_thread/pkg/cache"
	baseModel "forum_thread/pkg/model"
	"forum_thread/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func comment(id string, parent *string, content string) model.Comment {
	return model.Comment{BaseModel: baseModel.BaseModel{ID: id}, PostID: "p1", UserID: "u1", ParentID: parent, Content: content}
}

func newTestDiscussionService(t *testing.T, repo *MockDiscussionRepository) (DiscussionService, *cache.MemoryCache) {
	t.Helper()
	mem, err := cache.NewMemoryCache(16)
	require.NoError(t, err)
	return NewDiscussionService(repo, mem, time.Minute, zap.NewNop()), mem
}

func TestBuildCommentTree(t *testing.T) {
	comments := []model.Comment{
		comment("c1", nil, "root one"),
		comment("c2", strPtr("c1"), "reply to one"),
		comment("c3", nil, "root two"),
		comment("c4", strPtr("c2"), "nested reply"),
		comment("c5", strPtr("gone"), "orphan"),
		comment("c6", strPtr("c6"), "self parent"),
	}

	roots := BuildCommentTree(comments)

	ids := make([]string, 0, len(roots))
	for _, r := range roots {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c1", "c3", "c5", "c6"}, ids)

	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "c2", roots[0].Replies[0].ID)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "c4", roots[0].Replies[0].Replies[0].ID)
	assert.Empty(t, roots[1].Replies)
	assert.Contains(t, roots[0].HTML, "root one")
}

func TestGetPostPage(t *testing.T) {
	ctx := context.Background()
	topic := &model.Topic{BaseModel: baseModel.BaseModel{ID: "t1"}, Slug: "golang", Name: "Go"}
	post := &model.Post{BaseModel: baseModel.BaseModel{ID: "p1"}, UserID: "u1", Title: "Hello", Content: "*hi*"}

	t.Run("builds page then serves from cache", func(t *testing.T) {
		repo := new(MockDiscussionRepository)
		svc, mem := newTestDiscussionService(t, repo)

		repo.On("GetTopicBySlug", ctx, "golang").Return(topic, nil).Once()
		repo.On("GetPostInTopic", ctx, "t1", "p1").Return(post, nil).Once()
		repo.On("CommentsForPost", ctx, "p1").Return([]model.Comment{
			comment("c1", nil, "first"),
			comment("c2", strPtr("c1"), "second"),
		}, nil).Once()

		page, err := svc.GetPostPage(ctx, "golang", "p1")
		require.NoError(t, err)
		assert.Equal(t, "Hello", page.Post.Title)
		assert.Contains(t, page.Post.HTML, "<em>hi</em>")
		assert.Equal(t, 2, page.CommentCount)
		require.Len(t, page.Comments, 1)

		exists, err := mem.Exists(ctx, paths.PageKey("/topics/golang/posts/p1"))
		require.NoError(t, err)
		assert.True(t, exists)

		cached, err := svc.GetPostPage(ctx, "golang", "p1")
		require.NoError(t, err)
		assert.Equal(t, page.Post.Title, cached.Post.Title)
		assert.Len(t, cached.Comments[0].Replies, 1)
		repo.AssertExpectations(t)
	})

	t.Run("unknown topic", func(t *testing.T) {
		repo := new(MockDiscussionRepository)
		svc, _ := newTestDiscussionService(t, repo)
		repo.On("GetTopicBySlug", ctx, "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetPostPage(ctx, "nope", "p1")
		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("post outside topic", func(t *testing.T) {
		repo := new(MockDiscussionRepository)
		svc, mem := newTestDiscussionService(t, repo)
		repo.On("GetTopicBySlug", ctx, "golang").Return(topic, nil)
		repo.On("GetPostInTopic", ctx, "t1", "p9").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetPostPage(ctx, "golang", "p9")
		assert.ErrorIs(t, err, ErrPostNotFound)

		exists, _ := mem.Exists(ctx, paths.PageKey("/topics/golang/posts/p9"))
		assert.False(t, exists)
	})
}

func TestListComments(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDiscussionRepository)
	svc, _ := newTestDiscussionService(t, repo)

	repo.On("ListCommentsByPost", ctx, "p1", 10, 10).Return([]model.Comment{comment("c1", nil, "x")}, int64(11), nil)

	res, err := svc.ListComments(ctx, "p1", utils.Pagination{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 11, res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 10, res.Limit)
}

func TestListTopics(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDiscussionRepository)
	svc, _ := newTestDiscussionService(t, repo)

	repo.On("GetTopics", ctx, "go", 0, utils.DefaultPageLimit).Return([]model.Topic{{Slug: "golang"}}, int64(1), nil)

	res, err := svc.ListTopics(ctx, "  go ", utils.Pagination{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	assert.Equal(t, 1, res.Page)
}

func TestPublishPost(t *testing.T) {
	ctx := context.Background()

	t.Run("existing topic", func(t *testing.T) {
		repo := new(MockDiscussionRepository)
		svc, _ := newTestDiscussionService(t, repo)

		existing := &model.Topic{BaseModel: baseModel.BaseModel{ID: "t1"}, Slug: "golang"}
		repo.On("GetTopicBySlug", ctx, "golang").Return(existing, nil).Once()
		repo.On("CreatePost", ctx, mock.MatchedBy(func(p *model.Post) bool {
			return p.UserID == "u1" && p.Title == "Title" && p.TopicID == "t1"
		})).Return(nil).Once()

		post, err := svc.PublishPost(ctx, "u1", PublishPostInput{Title: " Title ", Content: "body", Topic: " GoLang "})
		require.NoError(t, err)
		assert.Equal(t, "Title", post.Title)
		assert.Equal(t, "t1", post.TopicID)
		repo.AssertNotCalled(t, "CreateTopic", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("creates missing topic", func(t *testing.T) {
		repo := new(MockDiscussionRepository)
		svc, _ := newTestDiscussionService(t, repo)

		repo.On("GetTopicBySlug", ctx, "web-dev").Return(nil, gorm.ErrRecordNotFound).Once()
		repo.On("CreateTopic", ctx, mock.MatchedBy(func(tp *model.Topic) bool {
			return tp.Slug == "web-dev" && tp.Name == "web-dev"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Topic).ID = "t2"
		}).Return(nil).Once()
		repo.On("CreatePost", ctx, mock.MatchedBy(func(p *model.Post) bool {
			return p.TopicID == "t2"
		})).Return(nil).Once()

		_, err := svc.PublishPost(ctx, "u1", PublishPostInput{Title: "t", Content: "c", Topic: "web-dev"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects bad slug", func(t *testing.T) {
		repo := new(MockDiscussionRepository)
		svc, _ := newTestDiscussionService(t, repo)

		_, err := svc.PublishPost(ctx, "u1", PublishPostInput{Title: "t", Content: "c", Topic: "bad slug!"})
		assert.ErrorIs(t, err, ErrInvalidSlug)
		repo.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})
}
