package post

import (
	"sort"
	"testing"
	"time"

	"letstalk_server/internal/dao/mysql"
	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/model"
	"letstalk_server/pkg/errorx"
)

// ==================== 测试用内存 Repository ====================

type fakeUserRepo struct {
	users map[int64]*model.User
}

func (r *fakeUserRepo) FindById(id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询用户 id=%d", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindByIds(ids []int64) ([]model.User, error) { return nil, nil }

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	return nil, errorx.New(errorx.CodeNotFound, "not found")
}

func (r *fakeUserRepo) FindAllExcept(excludeId int64) ([]model.User, error) { return nil, nil }
func (r *fakeUserRepo) Create(user *model.User) error                       { return nil }
func (r *fakeUserRepo) Update(user *model.User) error                       { return nil }

type likeKey struct {
	userId int64
	postId int64
}

type fakePostRepo struct {
	nextId int64
	posts  map[int64]*model.Post
	likes  map[likeKey]struct{}
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		nextId: 1,
		posts:  make(map[int64]*model.Post),
		likes:  make(map[likeKey]struct{}),
	}
}

func (r *fakePostRepo) Create(post *model.Post) error {
	post.Id = r.nextId
	r.nextId++
	stored := *post
	r.posts[post.Id] = &stored
	return nil
}

func (r *fakePostRepo) FindById(id int64) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询动态 id=%d", id)
	}
	return p, nil
}

func (r *fakePostRepo) FindByUserId(userId int64) ([]model.Post, error) {
	var result []model.Post
	for _, p := range r.posts {
		if p.UserId == userId {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakePostRepo) Delete(id int64) error {
	delete(r.posts, id)
	for key := range r.likes {
		if key.postId == id {
			delete(r.likes, key)
		}
	}
	return nil
}

func (r *fakePostRepo) FindLike(userId, postId int64) (*model.PostLike, error) {
	if _, ok := r.likes[likeKey{userId, postId}]; !ok {
		return nil, errorx.New(errorx.CodeNotFound, "点赞记录不存在")
	}
	return &model.PostLike{UserId: userId, PostId: postId}, nil
}

func (r *fakePostRepo) CreateLike(like *model.PostLike) error {
	r.likes[likeKey{like.UserId, like.PostId}] = struct{}{}
	return nil
}

func (r *fakePostRepo) DeleteLike(userId, postId int64) error {
	delete(r.likes, likeKey{userId, postId})
	return nil
}

func (r *fakePostRepo) CountLikes(postId int64) (int64, error) {
	var count int64
	for key := range r.likes {
		if key.postId == postId {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) CountLikesByPostIds(postIds []int64) (map[int64]int64, error) {
	result := make(map[int64]int64)
	for _, id := range postIds {
		count, _ := r.CountLikes(id)
		if count > 0 {
			result[id] = count
		}
	}
	return result, nil
}

func (r *fakePostRepo) FindLikedPostIds(userId int64, postIds []int64) ([]int64, error) {
	var result []int64
	for _, id := range postIds {
		if _, ok := r.likes[likeKey{userId, id}]; ok {
			result = append(result, id)
		}
	}
	return result, nil
}

func newTestService() (*postService, *fakePostRepo) {
	userRepo := &fakeUserRepo{users: map[int64]*model.User{
		1: {Id: 1, Username: "alice", DisplayName: "Alice", CreatedAt: time.Now()},
		2: {Id: 2, Username: "bob", DisplayName: "Bob", CreatedAt: time.Now()},
	}}
	postRepo := newFakePostRepo()
	return NewPostService(&mysql.Repositories{User: userRepo, Post: postRepo}), postRepo
}

// ==================== 测试用例 ====================

func TestCreatePost(t *testing.T) {
	svc, _ := newTestService()

	rsp, err := svc.CreatePost(1, request.CreatePostRequest{Content: "  first post  "})
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if rsp.Content != "first post" {
		t.Errorf("content = %q, want trimmed", rsp.Content)
	}
	if rsp.AuthorName != "Alice" {
		t.Errorf("author = %q, want Alice", rsp.AuthorName)
	}
}

func TestCreatePostEmptyContent(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreatePost(1, request.CreatePostRequest{Content: "   "})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("empty content code = %d, want %d", errorx.GetCode(err), errorx.CodeInvalidParam)
	}
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc, repo := newTestService()
	rsp, err := svc.CreatePost(1, request.CreatePostRequest{Content: "mine"})
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}

	if err := svc.DeletePost(2, rsp.Id); errorx.GetCode(err) != errorx.CodePermissionDenied {
		t.Errorf("non-owner delete code = %d, want %d", errorx.GetCode(err), errorx.CodePermissionDenied)
	}
	if _, ok := repo.posts[rsp.Id]; !ok {
		t.Fatalf("post should survive denied delete")
	}

	if err := svc.DeletePost(1, rsp.Id); err != nil {
		t.Fatalf("owner delete error: %v", err)
	}
	if _, ok := repo.posts[rsp.Id]; ok {
		t.Errorf("post should be deleted")
	}
}

func TestDeleteUnknownPost(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.DeletePost(1, 999); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("unknown post code = %d, want %d", errorx.GetCode(err), errorx.CodeNotFound)
	}
}

func TestToggleLike(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.CreatePost(1, request.CreatePostRequest{Content: "like me"})
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}

	on, err := svc.ToggleLike(2, created.Id)
	if err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	if !on.Liked || on.LikeCount != 1 {
		t.Errorf("first toggle = %+v, want liked count 1", on)
	}

	off, err := svc.ToggleLike(2, created.Id)
	if err != nil {
		t.Fatalf("second ToggleLike error: %v", err)
	}
	if off.Liked || off.LikeCount != 0 {
		t.Errorf("second toggle = %+v, want unliked count 0", off)
	}
}

func TestToggleLikeUnknownPost(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.ToggleLike(1, 999); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("unknown post code = %d, want %d", errorx.GetCode(err), errorx.CodeNotFound)
	}
}

func TestListUserPosts(t *testing.T) {
	svc, _ := newTestService()
	first, err := svc.CreatePost(1, request.CreatePostRequest{Content: "one"})
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if _, err := svc.CreatePost(1, request.CreatePostRequest{Content: "two"}); err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if _, err := svc.ToggleLike(2, first.Id); err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}

	list, err := svc.ListUserPosts(2, 1)
	if err != nil {
		t.Fatalf("ListUserPosts error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	for _, p := range list {
		if p.Id == first.Id {
			if !p.LikedByMe || p.LikeCount != 1 {
				t.Errorf("liked post = %+v, want LikedByMe count 1", p)
			}
		} else {
			if p.LikedByMe || p.LikeCount != 0 {
				t.Errorf("unliked post = %+v, want no likes", p)
			}
		}
	}
}
