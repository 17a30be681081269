package model

import baseModel "forum_thread/pkg/model"

const (
	RoleUser  = 1
	RoleAdmin = 2
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	Username string `gorm:"uniqueIndex;size:32" json:"username"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"` // 密码不返回给前端
	Role     int    `gorm:"default:1" json:"role"`
}
