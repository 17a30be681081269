// Package auth carries the authenticated session through a request context.
package auth

import "context"

// SessionUser 会话中的用户信息
type SessionUser struct {
	ID   string
	Role int
}

// Session 当前请求的登录会话
type Session struct {
	User *SessionUser
}

// UserID 返回会话用户 ID，未登录时返回空串
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

// SessionResolver 获取当前请求的会话，未登录返回 nil
type SessionResolver interface {
	Session(ctx context.Context) (*Session, error)
}

type sessionKey struct{}

// WithSession 将会话写入 context
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext 从 context 读取会话
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// ContextResolver 从请求 context 中解析会话，会话由 middleware.SessionMiddleware 写入
type ContextResolver struct{}

func (ContextResolver) Session(ctx context.Context) (*Session, error) {
	return FromContext(ctx), nil
}
