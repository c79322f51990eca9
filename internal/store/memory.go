package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"devtinder-api/internal/model"
)

// MemoryStore keeps users in an in-process map. It backs tests and the
// database-free configuration; semantics mirror GormStore.
type MemoryStore struct {
	mu    sync.Mutex
	seq   uint
	users map[uint]*model.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uint]*model.User)}
}

func (s *MemoryStore) Create(_ context.Context, u *model.User) error {
	if err := prepareForCreate(u); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}

	s.seq++
	u.ID = s.seq
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := *u
	s.users[u.ID] = &stored
	return nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, id uint, fields map[string]any) error {
	upd, err := parseUpdate(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if upd.Age != nil {
		u.Age = upd.Age
	}
	if upd.PhotoURL != nil {
		u.PhotoURL = *upd.PhotoURL
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Skills != nil {
		u.Skills = upd.Skills
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.users, id)
	copied := *u
	return &copied, nil
}
