// Package memory 提供 Repository 接口的内存实现
// 用于单元测试与本地演示：不依赖 MySQL，事务通过快照回滚实现
package memory

import (
	"cmp"
	"maps"
	"slices"
	"sync"
	"time"

	"forum_server/internal/dao/mysql/repository"
	"forum_server/internal/model"
)

type memberKey struct {
	community string
	user      string
}

type postTagKey struct {
	post string
	tag  string
}

// tables 所有表数据，事务回滚时整体替换
type tables struct {
	nextID         uint
	users          map[string]model.UserInfo
	communities    map[string]model.Community
	members        map[memberKey]model.CommunityMember
	categories     map[string]model.Category
	posts          map[string]model.Post
	tags           map[string]model.Tag
	postTags       map[postTagKey]struct{}
	comments       map[string]model.Comment
	communityPosts map[string]model.CommunityPost
	notifications  map[string]model.Notification
}

func newTables() tables {
	return tables{
		users:          map[string]model.UserInfo{},
		communities:    map[string]model.Community{},
		members:        map[memberKey]model.CommunityMember{},
		categories:     map[string]model.Category{},
		posts:          map[string]model.Post{},
		tags:           map[string]model.Tag{},
		postTags:       map[postTagKey]struct{}{},
		comments:       map[string]model.Comment{},
		communityPosts: map[string]model.CommunityPost{},
		notifications:  map[string]model.Notification{},
	}
}

// clone 浅拷贝每张表；记录中的指针字段只会被整体替换，不会原地修改
func (t tables) clone() tables {
	return tables{
		nextID:         t.nextID,
		users:          maps.Clone(t.users),
		communities:    maps.Clone(t.communities),
		members:        maps.Clone(t.members),
		categories:     maps.Clone(t.categories),
		posts:          maps.Clone(t.posts),
		tags:           maps.Clone(t.tags),
		postTags:       maps.Clone(t.postTags),
		comments:       maps.Clone(t.comments),
		communityPosts: maps.Clone(t.communityPosts),
		notifications:  maps.Clone(t.notifications),
	}
}

// Store 内存数据库
// mu 保护单次读写；txMu 串行化事务，事务失败时恢复进入事务前的快照
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data tables
}

// NewStore 创建空的内存数据库
func NewStore() *Store {
	return &Store{data: newTables()}
}

// NewRepositories 创建基于内存数据库的 Repository 聚合
func NewRepositories(s *Store) *repository.Repositories {
	repos := &repository.Repositories{
		User:          &userRepository{s: s},
		Community:     &communityRepository{s: s},
		Member:        &memberRepository{s: s},
		Category:      &categoryRepository{s: s},
		Post:          &postRepository{s: s},
		Tag:           &tagRepository{s: s},
		Comment:       &commentRepository{s: s},
		CommunityPost: &communityPostRepository{s: s},
		Notification:  &notificationRepository{s: s},
	}
	return repos.WithTx(func(fn func(txRepos *repository.Repositories) error) error {
		return s.transaction(repos, fn)
	})
}

func (s *Store) transaction(repos *repository.Repositories, fn func(txRepos *repository.Repositories) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			s.restore(snapshot)
			panic(rec)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()
	return fn(repos)
}

func (s *Store) restore(snapshot tables) {
	s.mu.Lock()
	s.data = snapshot
	s.mu.Unlock()
}

// stamp 为新记录分配自增主键与时间戳，调用方需持有 mu
func (s *Store) stamp(m *gormModel) {
	s.data.nextID++
	now := time.Now()
	m.ID = s.data.nextID
	m.CreatedAt = now
	m.UpdatedAt = now
}

// sortedByID 按主键升序返回
func sortedByID[T any](items []T, id func(T) uint) []T {
	slices.SortFunc(items, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return items
}

// page 计算分页切片区间
func page[T any](items []T, pageNum, pageSize int) []T {
	start := (pageNum - 1) * pageSize
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}
