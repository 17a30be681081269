package service

import (
	"time"

	"forum_thread/internal/domain/discussion/model"
	"forum_thread/pkg/utils"
)

// PostPage 帖子详情页，整体序列化后写入页面缓存
type PostPage struct {
	Topic        TopicView      `json:"topic"`
	Post         PostView       `json:"post"`
	Comments     []*CommentNode `json:"comments"`
	CommentCount int            `json:"commentCount"`
}

type TopicView struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type PostView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentNode 评论树节点
type CommentNode struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	ParentID  *string        `json:"parentId,omitempty"`
	HTML      string         `json:"html"`
	CreatedAt time.Time      `json:"createdAt"`
	Replies   []*CommentNode `json:"replies"`
}

// BuildCommentTree 按 parentId 组装评论树，保持输入顺序
// 父评论不在列表中（已删除或属于其他帖子）的回复提升为一级评论
func BuildCommentTree(comments []model.Comment) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		n := &CommentNode{
			ID:        c.ID,
			UserID:    c.UserID,
			ParentID:  c.ParentID,
			HTML:      utils.RenderMarkdown(c.Content),
			CreatedAt: c.CreatedAt,
			Replies:   []*CommentNode{},
		}
		nodes[c.ID] = n
		ordered = append(ordered, n)
	}

	roots := make([]*CommentNode, 0)
	for _, n := range ordered {
		if n.ParentID != nil && *n.ParentID != n.ID {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
