// Package model 定义数据库实体模型
// 本文件定义动态（post）和点赞模型
package model

import "time"

// Post 用户动态模型
// 对应数据库 post 表
type Post struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserId    int64     `gorm:"column:user_id;type:bigint;not null;index"`
	Content   string    `gorm:"column:content;type:TEXT;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "post"
}

// PostLike 动态点赞模型
// 对应数据库 post_like 表，(user_id, post_id) 唯一，点赞为开关语义
type PostLike struct {
	Id     int64 `gorm:"column:id;primaryKey;autoIncrement"`
	UserId int64 `gorm:"column:user_id;type:bigint;not null;uniqueIndex:idx_post_like_user_post,priority:1"`
	PostId int64 `gorm:"column:post_id;type:bigint;not null;uniqueIndex:idx_post_like_user_post,priority:2;index"`
}

// TableName 指定表名
func (PostLike) TableName() string {
	return "post_like"
}
