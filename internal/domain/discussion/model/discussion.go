package model

import (
	baseModel "forum_thread/pkg/model"
)

// Topic 话题，一个话题下有多篇帖子
type Topic struct {
	baseModel.BaseModel
	Slug        string `gorm:"uniqueIndex;size:50" json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Posts []Post `gorm:"foreignKey:TopicID" json:"posts,omitempty"`
}

// Post 帖子，只属于一个话题
type Post struct {
	baseModel.BaseModel
	TopicID string `gorm:"type:uuid;index" json:"topicId"`
	UserID  string `gorm:"type:uuid" json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`

	Topic *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

// Comment 评论，ParentID 为空表示一级评论
type Comment struct {
	baseModel.BaseModel
	PostID   string  `gorm:"type:uuid;index" json:"postId"`
	UserID   string  `gorm:"type:uuid" json:"userId"`
	ParentID *string `gorm:"type:uuid" json:"parentId,omitempty"`
	Content  string  `json:"content"`
}
