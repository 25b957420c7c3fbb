// Package post 提供动态相关数据访问层的具体实现
// 本文件实现 PostRepository 接口，处理动态和点赞相关的数据库操作
package post

import (
	"letstalk_server/internal/dao/mysql/internal"
	"letstalk_server/internal/model"

	"gorm.io/gorm"
)

// postRepository PostRepository 接口的实现
type postRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewPostRepository 创建 PostRepository 实例
// db: GORM 数据库实例
// 返回: PostRepository 接口实现
func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{db: db}
}

// Create 创建新动态
func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return internal.WrapDBError(err, "创建动态")
	}
	return nil
}

// FindById 根据 ID 查找动态
func (r *postRepository) FindById(id int64) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询动态 id=%d", id)
	}
	return &post, nil
}

// FindByUserId 查找用户的所有动态，按时间降序
func (r *postRepository) FindByUserId(userId int64) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Where("user_id = ?", userId).Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询用户动态 user=%d", userId)
	}
	return posts, nil
}

// Delete 删除动态及其点赞记录
// 在事务中先删除点赞记录，再删除动态本身
func (r *postRepository) Delete(id int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", id).Error
	})
	if err != nil {
		return internal.WrapDBErrorf(err, "删除动态 id=%d", id)
	}
	return nil
}

// FindLike 查找用户对动态的点赞记录
func (r *postRepository) FindLike(userId, postId int64) (*model.PostLike, error) {
	var like model.PostLike
	if err := r.db.First(&like, "user_id = ? AND post_id = ?", userId, postId).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询点赞 user=%d post=%d", userId, postId)
	}
	return &like, nil
}

// CreateLike 创建点赞记录
func (r *postRepository) CreateLike(like *model.PostLike) error {
	if err := r.db.Create(like).Error; err != nil {
		return internal.WrapDBError(err, "创建点赞")
	}
	return nil
}

// DeleteLike 删除点赞记录
func (r *postRepository) DeleteLike(userId, postId int64) error {
	if err := r.db.Where("user_id = ? AND post_id = ?", userId, postId).Delete(&model.PostLike{}).Error; err != nil {
		return internal.WrapDBErrorf(err, "删除点赞 user=%d post=%d", userId, postId)
	}
	return nil
}

// CountLikes 统计动态的点赞数
func (r *postRepository) CountLikes(postId int64) (int64, error) {
	var count int64
	if err := r.db.Model(&model.PostLike{}).Where("post_id = ?", postId).Count(&count).Error; err != nil {
		return 0, internal.WrapDBErrorf(err, "统计点赞 post=%d", postId)
	}
	return count, nil
}

// likeCount 点赞数统计查询结果
type likeCount struct {
	PostId int64
	Count  int64
}

// CountLikesByPostIds 批量统计多个动态的点赞数
// 返回: post_id -> 点赞数 的映射，没有点赞的动态不在映射中
func (r *postRepository) CountLikesByPostIds(postIds []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(postIds))
	if len(postIds) == 0 {
		return result, nil
	}
	var rows []likeCount
	if err := r.db.Model(&model.PostLike{}).
		Select("post_id AS post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIds).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, internal.WrapDBError(err, "批量统计点赞")
	}
	for _, row := range rows {
		result[row.PostId] = row.Count
	}
	return result, nil
}

// FindLikedPostIds 查找用户在给定动态集合中点赞过的动态 ID
func (r *postRepository) FindLikedPostIds(userId int64, postIds []int64) ([]int64, error) {
	var likedIds []int64
	if len(postIds) == 0 {
		return likedIds, nil
	}
	if err := r.db.Model(&model.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userId, postIds).
		Pluck("post_id", &likedIds).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询已点赞动态 user=%d", userId)
	}
	return likedIds, nil
}
