// Package user 实现用户注册、登录和资料管理的业务逻辑
package user

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"letstalk_server/internal/dao/mysql"
	myredis "letstalk_server/internal/dao/redis"
	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/dto/respond"
	"letstalk_server/internal/model"
	"letstalk_server/pkg/constants"
	"letstalk_server/pkg/errorx"
	"letstalk_server/pkg/util/jwt"
)

// userService 用户业务逻辑实现
// 通过构造函数注入 Repository 和缓存依赖
type userService struct {
	repos *mysql.Repositories
	cache myredis.CacheService
}

// NewUserService 构造函数
func NewUserService(repos *mysql.Repositories, cache myredis.CacheService) *userService {
	return &userService{repos: repos, cache: cache}
}

// refreshTokenKey 生成 Refresh Token 存储 Key
func refreshTokenKey(userId int64) string {
	return "user_token:" + strconv.FormatInt(userId, 10)
}

// Register 用户注册
// 用户名已存在时返回 CodeUserExist
// 密码加密由 model.User 的 BeforeSave Hook 完成
func (u *userService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if _, err := u.repos.User.FindByUsername(req.Username); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	user := model.User{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		RawPassword: req.Password,
		CreatedAt:   time.Now(),
	}
	if err := u.repos.User.Create(&user); err != nil {
		zap.L().Error("创建用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.RegisterRespond{
		Id:          user.Id,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// Login 密码登录
// 登录成功后签发双 Token，并把 Refresh Token ID 存入 Redis 实现单点互踢
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}

	return u.issueTokens(user)
}

// RefreshToken 刷新令牌
// 校验 Refresh Token 本身和 Redis 中记录的 Token ID，通过后轮换双 Token
func (u *userService) RefreshToken(req request.RefreshTokenRequest) (*respond.LoginRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil || claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 无效，请重新登录")
	}

	// 与 Redis 中记录的 Token ID 比对，旧 Token 在轮换后立即失效
	if u.cache != nil {
		validTokenID, err := u.cache.Get(context.Background(), refreshTokenKey(claims.UserID))
		if err != nil {
			zap.L().Error("读取 Token ID 失败", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		if validTokenID == "" || validTokenID != claims.TokenID {
			return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 已失效，请重新登录")
		}
	}

	user, err := u.repos.User.FindById(claims.UserID)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	return u.issueTokens(user)
}

// issueTokens 签发双 Token 并记录 Refresh Token ID
func (u *userService) issueTokens(user *model.User) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(user.Id)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Id)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 将 Refresh Token ID 存入 Redis，实现单点互踢
	if u.cache != nil {
		if err := u.cache.Set(context.Background(), refreshTokenKey(user.Id), tokenID,
			time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS)*time.Hour); err != nil {
			zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
			// 不阻塞登录流程，仅记录日志
		}
	}

	return &respond.LoginRespond{
		Id:           user.Id,
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		AvatarUrl:    user.AvatarUrl,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// UpdateProfile 更新个人资料
func (u *userService) UpdateProfile(userId int64, req request.UpdateProfileRequest) error {
	user, err := u.repos.User.FindById(userId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	user.DisplayName = req.DisplayName
	user.Bio = req.Bio
	user.AvatarUrl = req.AvatarUrl
	if err := u.repos.User.Update(user); err != nil {
		zap.L().Error("更新用户失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// GetUserInfo 获取单个用户信息
func (u *userService) GetUserInfo(userId int64) (*respond.UserInfoRespond, error) {
	user, err := u.repos.User.FindById(userId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := toUserInfoRespond(*user)
	return &rsp, nil
}

// GetUserList 获取用户列表（排除调用方自己）
// 用于选择私信对象
func (u *userService) GetUserList(ownerId int64) ([]respond.UserInfoRespond, error) {
	users, err := u.repos.User.FindAllExcept(ownerId)
	if err != nil {
		zap.L().Error("查询用户列表失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rspList := make([]respond.UserInfoRespond, 0, len(users))
	for _, user := range users {
		rspList = append(rspList, toUserInfoRespond(user))
	}
	return rspList, nil
}

// toUserInfoRespond 将用户模型转换为响应对象
func toUserInfoRespond(user model.User) respond.UserInfoRespond {
	return respond.UserInfoRespond{
		Id:          user.Id,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarUrl:   user.AvatarUrl,
		CreatedAt:   user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
