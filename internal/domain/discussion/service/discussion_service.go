package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"forum_thread/internal/domain/discussion/model"
	"forum_thread/internal/domain/discussion/repository"
	"forum_thread/internal/pkg/paths"
	"forum_thread/pkg/cache"
	"forum_thread/pkg/metrics"
	"forum_thread/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrPostNotFound  = errors.New("post not found")
	ErrInvalidSlug   = errors.New("topic slug must match ^[a-z0-9-]{2,50}$")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{2,50}$`)

type DiscussionService interface {
	GetPostPage(ctx context.Context, slug, postID string) (*PostPage, error)
	ListComments(ctx context.Context, postID string, p utils.Pagination) (utils.PageResult, error)
	ListTopics(ctx context.Context, keyword string, p utils.Pagination) (utils.PageResult, error)
	PublishPost(ctx context.Context, userID string, in PublishPostInput) (*model.Post, error)
}

// PublishPostInput 发帖参数
type PublishPostInput struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
}

type discussionService struct {
	repo    repository.DiscussionRepository
	cache   cache.CacheService
	pageTTL time.Duration
	log     *zap.Logger
}

func NewDiscussionService(repo repository.DiscussionRepository, c cache.CacheService, pageTTL time.Duration, log *zap.Logger) DiscussionService {
	return &discussionService{repo: repo, cache: c, pageTTL: pageTTL, log: log}
}

// GetPostPage 读取帖子详情页，优先走页面缓存
// 缓存键与评论提交后的失效路径一致
func (s *discussionService) GetPostPage(ctx context.Context, slug, postID string) (*PostPage, error) {
	path := paths.PostShow(slug, postID)
	key := paths.PageKey(path)

	var page PostPage
	err := s.cache.Get(ctx, key, &page)
	if err == nil {
		metrics.PageCacheRequestsTotal.WithLabelValues("hit").Inc()
		return &page, nil
	}
	metrics.PageCacheRequestsTotal.WithLabelValues("miss").Inc()
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("read page cache failed", zap.String("key", key), zap.Error(err))
	}

	rev := s.pageRevision(ctx, path)
	built, err := s.buildPostPage(ctx, slug, postID)
	if err != nil {
		return nil, err
	}

	// 构建期间页面被失效过，结果可能早于新评论，不回写
	if s.pageRevision(ctx, path) != rev {
		s.log.Debug("page revalidated while building, skip cache write", zap.String("key", key))
		return built, nil
	}
	if err := s.cache.Set(ctx, key, built, s.pageTTL); err != nil {
		s.log.Warn("write page cache failed", zap.String("key", key), zap.Error(err))
	}
	return built, nil
}

// pageRevision 未失效过的页面返回 0
func (s *discussionService) pageRevision(ctx context.Context, path string) int64 {
	var rev int64
	if err := s.cache.Get(ctx, paths.PageRevisionKey(path), &rev); err != nil {
		return 0
	}
	return rev
}

func (s *discussionService) buildPostPage(ctx context.Context, slug, postID string) (*PostPage, error) {
	topic, err := s.repo.GetTopicBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	post, err := s.repo.GetPostInTopic(ctx, topic.ID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comments, err := s.repo.CommentsForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Topic: TopicView{Slug: topic.Slug, Name: topic.Name},
		Post: PostView{
			ID:        post.ID,
			UserID:    post.UserID,
			Title:     post.Title,
			HTML:      utils.RenderMarkdown(post.Content),
			CreatedAt: post.CreatedAt,
		},
		Comments:     BuildCommentTree(comments),
		CommentCount: len(comments),
	}, nil
}

func (s *discussionService) ListComments(ctx context.Context, postID string, p utils.Pagination) (utils.PageResult, error) {
	offset, limit := p.Normalize()
	comments, total, err := s.repo.ListCommentsByPost(ctx, postID, offset, limit)
	if err != nil {
		return utils.PageResult{}, err
	}
	return utils.NewPageResult(comments, total, p), nil
}

func (s *discussionService) ListTopics(ctx context.Context, keyword string, p utils.Pagination) (utils.PageResult, error) {
	offset, limit := p.Normalize()
	topics, total, err := s.repo.GetTopics(ctx, strings.TrimSpace(keyword), offset, limit)
	if err != nil {
		return utils.PageResult{}, err
	}
	return utils.NewPageResult(topics, total, p), nil
}

// PublishPost 发帖，话题不存在时按 slug 自动创建
func (s *discussionService) PublishPost(ctx context.Context, userID string, in PublishPostInput) (*model.Post, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Topic))
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	topic, err := s.repo.GetTopicBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		topic = &model.Topic{Slug: slug, Name: slug}
		if err := s.repo.CreateTopic(ctx, topic); err != nil {
			return nil, err
		}
		s.log.Info("topic created", zap.String("slug", slug))
	}

	post := &model.Post{
		TopicID: topic.ID,
		UserID:  userID,
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
