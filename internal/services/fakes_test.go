package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/models"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]models.User
	getErr error

	// lookups counts GetByUsername calls.
	lookups int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return common.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return common.ErrDuplicateEmail
		}
	}
	user.ID = uuid.New().String()
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrUserNotFound
}

func (f *fakeUserRepo) remove(username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, username)
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services []models.Service
	err      error
}

func (f *fakeServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	svc.ID = uuid.New().String()
	f.services = append(f.services, *svc)
	return nil
}

func (f *fakeServiceRepo) ListByOwner(ctx context.Context, owner string) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Service{}
	for _, s := range f.services {
		if s.Owner == owner {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) DeleteByOwner(ctx context.Context, owner, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrInvalidIdentifier
	}
	for i, s := range f.services {
		if s.ID == id && s.Owner == owner {
			f.services = append(f.services[:i], f.services[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeServiceRepo) CountByOwner(ctx context.Context, owner string) (int64, error) {
	list, err := f.ListByOwner(ctx, owner)
	return int64(len(list)), err
}

var errStoreDown = errors.New("store down")
