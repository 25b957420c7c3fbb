// Package model 定义数据库实体模型
// 本文件定义用户模型，包含用户基本资料和认证信息
package model

import (
	"time"

	"golang.org/x/crypto/bcrypt" // 密码哈希库
	"gorm.io/gorm"
)

// User 用户模型
// 对应数据库 user 表
// 消息核心只消费 Id 和 DisplayName，其余字段属于外围 CRUD
type User struct {
	// Id 用户唯一标识，自增整数，对外作为不透明的用户身份
	Id int64 `gorm:"column:id;primaryKey;autoIncrement"`

	// Username 登录用户名，唯一
	Username string `gorm:"column:username;uniqueIndex;type:varchar(80);not null"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(255);not null" json:"-"`

	// DisplayName 昵称，随消息事件推送给对端
	DisplayName string `gorm:"column:display_name;type:varchar(120);not null"`

	// Bio 个人简介
	Bio string `gorm:"column:bio;type:TEXT"`

	// AvatarUrl 头像链接
	AvatarUrl string `gorm:"column:avatar_url;type:varchar(255)"`

	// CreatedAt 注册时间
	CreatedAt time.Time `gorm:"column:created_at"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
// 调用方只需设置 RawPassword，无需手动加密
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		// 使用 bcrypt 算法加密，DefaultCost=10
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash) // 存储加密后的密码
		u.RawPassword = ""        // 清空明文，防止泄露
	}
	return nil
}

// CheckPassword 校验密码是否正确
// plaintext: 用户输入的明文密码
func (u *User) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
