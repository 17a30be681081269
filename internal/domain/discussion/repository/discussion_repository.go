package repository

import (
	"context"
	"errors"

	"forum_thread/internal/domain/discussion/model"

	"gorm.io/gorm"
)

type DiscussionRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	ListCommentsByPost(ctx context.Context, postID string, offset, limit int) ([]model.Comment, int64, error)
	CommentsForPost(ctx context.Context, postID string) ([]model.Comment, error)

	FindTopicByPostID(ctx context.Context, postID string) (*model.Topic, error)
	GetTopicBySlug(ctx context.Context, slug string) (*model.Topic, error)
	CreateTopic(ctx context.Context, topic *model.Topic) error
	GetTopics(ctx context.Context, keyword string, offset, limit int) ([]model.Topic, int64, error)

	GetPostInTopic(ctx context.Context, topicID, postID string) (*model.Post, error)
	CreatePost(ctx context.Context, post *model.Post) error
}

type discussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

// --- Comment ---

func (r *discussionRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *discussionRepository) ListCommentsByPost(ctx context.Context, postID string, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// CommentsForPost 帖子的全部评论，用于在内存中建树
func (r *discussionRepository) CommentsForPost(ctx context.Context, postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

// --- Topic ---

// FindTopicByPostID 返回帖子所属的话题，帖子或话题不存在时返回 nil, nil
func (r *discussionRepository) FindTopicByPostID(ctx context.Context, postID string) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).
		Joins("JOIN posts ON posts.topic_id = topics.id AND posts.deleted_at IS NULL").
		Where("posts.id = ?", postID).
		First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *discussionRepository) GetTopicBySlug(ctx context.Context, slug string) (*model.Topic, error) {
	var topic model.Topic
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *discussionRepository) CreateTopic(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

func (r *discussionRepository) GetTopics(ctx context.Context, keyword string, offset, limit int) ([]model.Topic, int64, error) {
	var topics []model.Topic
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Topic{})
	if keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&topics).Error; err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}

// --- Post ---

// GetPostInTopic 只有帖子属于该话题时才返回
func (r *discussionRepository) GetPostInTopic(ctx context.Context, topicID, postID string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND topic_id = ?", postID, topicID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *discussionRepository) CreatePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}
