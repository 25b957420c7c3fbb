// Package post 实现用户动态和点赞的业务逻辑
package post

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"letstalk_server/internal/dao/mysql"
	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/dto/respond"
	"letstalk_server/internal/model"
	"letstalk_server/pkg/errorx"
)

// postService 动态业务逻辑实现
type postService struct {
	repos *mysql.Repositories
}

// NewPostService 构造函数
func NewPostService(repos *mysql.Repositories) *postService {
	return &postService{repos: repos}
}

// CreatePost 发布动态
func (p *postService) CreatePost(userId int64, req request.CreatePostRequest) (*respond.PostRespond, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "动态内容不能为空")
	}

	author, err := p.repos.User.FindById(userId)
	if err != nil {
		return nil, err
	}

	post := model.Post{
		UserId:    userId,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := p.repos.Post.Create(&post); err != nil {
		zap.L().Error("创建动态失败", zap.Error(err))
		return nil, err
	}

	return &respond.PostRespond{
		Id:         post.Id,
		UserId:     post.UserId,
		AuthorName: author.DisplayName,
		Content:    post.Content,
		CreatedAt:  post.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// DeletePost 删除动态
// 只有动态作者本人可以删除，否则返回 CodePermissionDenied
func (p *postService) DeletePost(userId, postId int64) error {
	post, err := p.repos.Post.FindById(postId)
	if err != nil {
		return err
	}
	if post.UserId != userId {
		return errorx.New(errorx.CodePermissionDenied, "无权删除他人的动态")
	}
	if err := p.repos.Post.Delete(postId); err != nil {
		zap.L().Error("删除动态失败", zap.Int64("post_id", postId), zap.Error(err))
		return err
	}
	return nil
}

// ToggleLike 点赞开关
// 未点赞则点赞，已点赞则取消，返回操作后的状态和计数
func (p *postService) ToggleLike(userId, postId int64) (*respond.ToggleLikeRespond, error) {
	if _, err := p.repos.Post.FindById(postId); err != nil {
		return nil, err
	}

	liked := false
	if _, err := p.repos.Post.FindLike(userId, postId); err == nil {
		// 已点赞，取消
		if err := p.repos.Post.DeleteLike(userId, postId); err != nil {
			zap.L().Error("取消点赞失败", zap.Error(err))
			return nil, err
		}
	} else if errorx.GetCode(err) == errorx.CodeNotFound {
		// 未点赞，点赞
		if err := p.repos.Post.CreateLike(&model.PostLike{UserId: userId, PostId: postId}); err != nil {
			zap.L().Error("创建点赞失败", zap.Error(err))
			return nil, err
		}
		liked = true
	} else {
		zap.L().Error("查询点赞失败", zap.Error(err))
		return nil, err
	}

	count, err := p.repos.Post.CountLikes(postId)
	if err != nil {
		zap.L().Error("统计点赞失败", zap.Error(err))
		return nil, err
	}

	return &respond.ToggleLikeRespond{
		PostId:    postId,
		Liked:     liked,
		LikeCount: count,
	}, nil
}

// ListUserPosts 获取指定用户的动态列表
// viewerId 用于标记每条动态是否被查看者点赞过
func (p *postService) ListUserPosts(viewerId, ownerId int64) ([]respond.PostRespond, error) {
	owner, err := p.repos.User.FindById(ownerId)
	if err != nil {
		return nil, err
	}

	posts, err := p.repos.Post.FindByUserId(ownerId)
	if err != nil {
		zap.L().Error("查询用户动态失败", zap.Int64("user_id", ownerId), zap.Error(err))
		return nil, err
	}

	postIds := make([]int64, 0, len(posts))
	for _, post := range posts {
		postIds = append(postIds, post.Id)
	}

	likeCounts, err := p.repos.Post.CountLikesByPostIds(postIds)
	if err != nil {
		zap.L().Error("批量统计点赞失败", zap.Error(err))
		return nil, err
	}
	likedIds, err := p.repos.Post.FindLikedPostIds(viewerId, postIds)
	if err != nil {
		zap.L().Error("查询已点赞动态失败", zap.Error(err))
		return nil, err
	}
	likedSet := make(map[int64]struct{}, len(likedIds))
	for _, id := range likedIds {
		likedSet[id] = struct{}{}
	}

	rspList := make([]respond.PostRespond, 0, len(posts))
	for _, post := range posts {
		_, likedByMe := likedSet[post.Id]
		rspList = append(rspList, respond.PostRespond{
			Id:         post.Id,
			UserId:     post.UserId,
			AuthorName: owner.DisplayName,
			Content:    post.Content,
			CreatedAt:  post.CreatedAt.Format("2006-01-02 15:04:05"),
			LikeCount:  likeCounts[post.Id],
			LikedByMe:  likedByMe,
		})
	}
	return rspList, nil
}
