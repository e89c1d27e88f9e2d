package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"membership-api/internal/model"
)

type memUserStore struct {
	mu      sync.Mutex
	users   map[string]model.User
	creates int

	// skipExistsCheck makes ExistsByEmail lie, simulating a concurrent
	// registration racing past the pre-check.
	skipExistsCheck bool
	failWith        error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]model.User{}}
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return model.User{}, s.failWith
	}
	u, ok := s.users[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return false, s.failWith
	}
	if s.skipExistsCheck {
		return false, nil
	}
	_, ok := s.users[email]
	return ok, nil
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return model.ErrUserAlreadyExists
	}
	u.ID = uuid.NewString()
	s.users[u.Email] = *u
	s.creates++
	return nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type memMemberStore struct {
	members map[string]model.Member
}

func newMemMemberStore() *memMemberStore {
	return &memMemberStore{members: map[string]model.Member{}}
}

func (s *memMemberStore) List(context.Context) ([]model.Member, error) {
	out := make([]model.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	return out, nil
}

func (s *memMemberStore) FindByID(_ context.Context, id string) (model.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return model.Member{}, model.ErrMemberNotFound
	}
	return m, nil
}

func (s *memMemberStore) Create(_ context.Context, m model.Member) (model.Member, error) {
	m.ID = uuid.NewString()
	s.members[m.ID] = m
	return m, nil
}

func (s *memMemberStore) Update(_ context.Context, m model.Member) (model.Member, error) {
	if _, ok := s.members[m.ID]; !ok {
		return model.Member{}, model.ErrMemberNotFound
	}
	s.members[m.ID] = m
	return m, nil
}

func (s *memMemberStore) Delete(_ context.Context, id string) error {
	if _, ok := s.members[id]; !ok {
		return model.ErrMemberNotFound
	}
	delete(s.members, id)
	return nil
}

func (s *memMemberStore) SearchByName(_ context.Context, name string, lastname string) ([]model.MemberSummary, error) {
	if name == "" && lastname == "" {
		return nil, model.ErrInvalidInput
	}

	out := make([]model.MemberSummary, 0)
	for _, m := range s.members {
		if name != "" && !strings.HasPrefix(strings.ToLower(m.Name), strings.ToLower(name)) {
			continue
		}
		if lastname != "" && !strings.HasPrefix(strings.ToLower(m.Lastname), strings.ToLower(lastname)) {
			continue
		}
		out = append(out, model.MemberSummary{ID: m.ID, Name: m.Name, Lastname: m.Lastname, CI: m.CI, BirthDate: m.BirthDate})
	}
	return out, nil
}

type memSpaceStore struct {
	spaces map[string]model.Space
}

func (s *memSpaceStore) Create(_ context.Context, name string) (model.Space, error) {
	if _, ok := s.spaces[name]; ok {
		return model.Space{}, model.ErrSpaceAlreadyExists
	}
	space := model.Space{ID: uuid.NewString(), Name: name}
	s.spaces[name] = space
	return space, nil
}

func (s *memSpaceStore) FindByName(_ context.Context, name string) (model.Space, error) {
	space, ok := s.spaces[name]
	if !ok {
		return model.Space{}, model.ErrSpaceNotFound
	}
	return space, nil
}

var errStoreDown = errors.New("connection refused")

type failingSocietyStore struct{}

func (failingSocietyStore) List(context.Context) ([]model.MedicalSociety, error) {
	return nil, fmt.Errorf("list medical societies: %w", errStoreDown)
}

func (failingSocietyStore) Create(_ context.Context, name string, _ string) (model.MedicalSociety, error) {
	if name == "taken" {
		return model.MedicalSociety{}, model.ErrMedicalSocietyExists
	}
	return model.MedicalSociety{}, errStoreDown
}
