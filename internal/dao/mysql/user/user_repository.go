// Package user 提供用户相关数据访问层的具体实现
// 本文件实现 UserRepository 接口，处理用户相关的数据库操作
package user

import (
	"letstalk_server/internal/dao/mysql/internal"
	"letstalk_server/internal/model"

	"gorm.io/gorm"
)

// userRepository UserRepository 接口的实现
type userRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewUserRepository 创建 UserRepository 实例
// db: GORM 数据库实例
// 返回: UserRepository 接口实现
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// FindById 根据 ID 查找用户
// id: 用户 ID
// 返回: 用户信息和错误
func (r *userRepository) FindById(id int64) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询用户 id=%d", id)
	}
	return &user, nil
}

// FindByIds 批量根据 ID 查找用户
// ids: 用户 ID 列表
// 返回: 用户列表和错误
func (r *userRepository) FindByIds(ids []int64) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, internal.WrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// FindByUsername 根据用户名查找用户
// username: 登录用户名
// 返回: 用户信息和错误
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

// FindAllExcept 查找除指定用户外的所有用户
// excludeId: 要排除的用户 ID
// 返回: 用户列表和错误
func (r *userRepository) FindAllExcept(excludeId int64) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("id != ?", excludeId).Order("display_name ASC").Find(&users).Error; err != nil {
		return nil, internal.WrapDBError(err, "查询用户列表")
	}
	return users, nil
}

// Create 创建新用户
// 密码加密由 model.User 的 BeforeSave Hook 完成
// user: 用户结构体
// 返回: 操作错误
func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return internal.WrapDBError(err, "创建用户")
	}
	return nil
}

// Update 更新用户信息
// user: 用户结构体
// 返回: 操作错误
func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return internal.WrapDBErrorf(err, "更新用户 id=%d", user.Id)
	}
	return nil
}
