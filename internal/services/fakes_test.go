package services

import (
	"context"
	"sort"
	"time"

	"github.com/snapfeed/apiserver/internal/store"
	"github.com/snapfeed/apiserver/types"
)

// In-memory repositories satisfying the service interfaces.

type memUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]types.User)}
}

func (r *memUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = cloneUser(user)
	return user, nil
}

func (r *memUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = cloneUser(user)
	return user, nil
}

type memPostRepo struct {
	nextID int
	posts  map[int]types.Post
	likes  map[int]map[int]bool
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{
		posts: make(map[int]types.Post),
		likes: make(map[int]map[int]bool),
	}
}

func (r *memPostRepo) Get(_ context.Context, id int) (types.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	post.Likes = r.likeSet(id)
	return post, nil
}

func (r *memPostRepo) ListByUser(_ context.Context, userID int) ([]types.Post, error) {
	posts := make([]types.Post, 0)
	for _, post := range r.posts {
		if post.UserID == userID {
			post.Likes = r.likeSet(post.ID)
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (r *memPostRepo) Create(_ context.Context, post types.Post) (types.Post, error) {
	r.nextID++
	post.ID = r.nextID
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Likes = []int{}
	r.posts[post.ID] = post
	return post, nil
}

func (r *memPostRepo) UpdateContent(_ context.Context, id int, content string) error {
	post, ok := r.posts[id]
	if !ok {
		return store.ErrNotFound
	}
	post.Content = content
	post.UpdatedAt = time.Now()
	r.posts[id] = post
	return nil
}

func (r *memPostRepo) ToggleLike(_ context.Context, postID, userID int) (bool, error) {
	if _, ok := r.posts[postID]; !ok {
		return false, store.ErrNotFound
	}
	set := r.likes[postID]
	if set == nil {
		set = make(map[int]bool)
		r.likes[postID] = set
	}
	if set[userID] {
		delete(set, userID)
		return false, nil
	}
	set[userID] = true
	return true, nil
}

func (r *memPostRepo) likeSet(postID int) []int {
	ids := make([]int, 0, len(r.likes[postID]))
	for id := range r.likes[postID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func cloneUser(user types.User) types.User {
	ids := make([]int, len(user.PostIDs))
	copy(ids, user.PostIDs)
	user.PostIDs = ids
	return user
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	channels []string
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, _ []byte, _ map[string]string) (string, error) {
	p.channels = append(p.channels, channel)
	return "msg-1", nil
}
