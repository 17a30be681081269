package service

import (
	"context"

	"forum_thread/internal/domain/discussion/model"
	"forum_thread/internal/pkg/auth"

	"github.com/stretchr/testify/mock"
)

// MockDiscussionRepository is a mock of DiscussionRepository
type MockDiscussionRepository struct {
	mock.Mock
}

func (m *MockDiscussionRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockDiscussionRepository) ListCommentsByPost(ctx context.Context, postID string, offset, limit int) ([]model.Comment, int64, error) {
	args := m.Called(ctx, postID, offset, limit)
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockDiscussionRepository) CommentsForPost(ctx context.Context, postID string) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockDiscussionRepository) FindTopicByPostID(ctx context.Context, postID string) (*model.Topic, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Topic), args.Error(1)
}

func (m *MockDiscussionRepository) GetTopicBySlug(ctx context.Context, slug string) (*model.Topic, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Topic), args.Error(1)
}

func (m *MockDiscussionRepository) CreateTopic(ctx context.Context, topic *model.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

func (m *MockDiscussionRepository) GetTopics(ctx context.Context, keyword string, offset, limit int) ([]model.Topic, int64, error) {
	args := m.Called(ctx, keyword, offset, limit)
	return args.Get(0).([]model.Topic), args.Get(1).(int64), args.Error(2)
}

func (m *MockDiscussionRepository) GetPostInTopic(ctx context.Context, topicID, postID string) (*model.Post, error) {
	args := m.Called(ctx, topicID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockDiscussionRepository) CreatePost(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// MockRevalidator is a mock of revalidate.Revalidator
type MockRevalidator struct {
	mock.Mock
}

func (m *MockRevalidator) Revalidate(ctx context.Context, path string) {
	m.Called(ctx, path)
}

// stubSessions 返回固定会话
type stubSessions struct {
	session *auth.Session
	err     error
}

func (s stubSessions) Session(context.Context) (*auth.Session, error) {
	return s.session, s.err
}

func signedIn(userID string) stubSessions {
	return stubSessions{session: &auth.Session{User: &auth.SessionUser{ID: userID}}}
}

// memoryStore 记录写入的评论，用于验证写入后的状态
type memoryStore struct {
	comments []model.Comment
	topics   map[string]*model.Topic
}

func (s *memoryStore) CreateComment(_ context.Context, comment *model.Comment) error {
	comment.BeforeCreate(nil)
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *memoryStore) FindTopicByPostID(_ context.Context, postID string) (*model.Topic, error) {
	return s.topics[postID], nil
}
