// Package memory is the process-lifetime record store for accounts and tasks.
package memory

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"taskboard/config"
	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Store keeps every account and task in memory. One lock covers both
// tables, the email index and the insertion-order slices.
// Every read returns a copy; pointers into the tables never escape.
type Store struct {
	mu sync.RWMutex

	accounts     map[uuid.UUID]*entity.Account
	accountOrder []uuid.UUID
	emailIndex   map[string]uuid.UUID

	tasks     map[uuid.UUID]*entity.Task
	taskOrder []uuid.UUID

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

var (
	_ repository.AccountRepository = (*Store)(nil)
	_ repository.TaskRepository    = (*Store)(nil)
)

// StoreParams holds dependencies for the seeded store, injected by Fx.
type StoreParams struct {
	fx.In

	Config *config.Config
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// New creates the store and provisions the configured administrator before
// returning it, so no caller can observe an unseeded email index.
func New(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Config == nil || params.Config.Seed == nil {
		return nil, errors.New("seed config is required")
	}
	admin := params.Config.Seed.Admin

	store := NewStore()

	account, err := store.SeedAdministrator(ctx, params.Hasher, admin.Email, admin.Password, admin.FullName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to seed administrator")
	}

	params.Logger.Info("Seeded administrator account", slog.String("email", account.Email), slog.Any("accountID", account.ID))

	return store, nil
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:   make(map[uuid.UUID]*entity.Account),
		emailIndex: make(map[string]uuid.UUID),
		tasks:      make(map[uuid.UUID]*entity.Task),
		now:        time.Now,
		newID:      uuid.NewRandom,
	}
}

// SeedAdministrator inserts an administrator account unless the email is
// already taken, in which case the existing account is returned untouched.
// The password is hashed before the lock is taken.
func (s *Store) SeedAdministrator(ctx context.Context, hasher service.PasswordHasher, email, password, fullName string) (*entity.Account, error) {
	if existing, ok := s.FindAccountByEmail(ctx, email); ok {
		return existing, nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash seed password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.emailIndex[indexKey(email)]; ok {
		return cloneAccount(s.accounts[id]), nil
	}

	account, err := s.insertAccountLocked(repository.NewAccount{
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		FullName:     fullName,
		Role:         entity.RoleAdministrator,
	})
	if err != nil {
		return nil, err
	}

	return cloneAccount(account), nil
}

// CreateAccount implements repository.AccountRepository.
func (s *Store) CreateAccount(_ context.Context, input repository.NewAccount) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.insertAccountLocked(input)
	if err != nil {
		return nil, err
	}

	return cloneAccount(account), nil
}

func (s *Store) insertAccountLocked(input repository.NewAccount) (*entity.Account, error) {
	id, err := s.newID()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate account id")
	}

	role := input.Role
	if role == "" {
		role = entity.RoleStandard
	}

	now := s.now()
	account := &entity.Account{
		ID:           id,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FullName:     input.FullName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.accounts[id] = account
	s.accountOrder = append(s.accountOrder, id)
	s.emailIndex[indexKey(account.Email)] = id

	return account, nil
}

// FindAccountByEmail implements repository.AccountRepository.
func (s *Store) FindAccountByEmail(_ context.Context, email string) (*entity.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emailIndex[indexKey(email)]
	if !ok {
		return nil, false
	}

	account, ok := s.accounts[id]
	if !ok {
		return nil, false
	}

	return cloneAccount(account), true
}

// FindAccountByID implements repository.AccountRepository.
func (s *Store) FindAccountByID(_ context.Context, id uuid.UUID) (*entity.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, false
	}

	return cloneAccount(account), true
}

// ListAccounts implements repository.AccountRepository.
func (s *Store) ListAccounts(_ context.Context) []*entity.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Account, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		out = append(out, cloneAccount(s.accounts[id]))
	}

	return out
}

// UpdateAccount implements repository.AccountRepository.
func (s *Store) UpdateAccount(_ context.Context, id uuid.UUID, patch entity.AccountPatch) (*entity.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, false
	}

	updated := *account
	if patch.Email != nil {
		oldKey := indexKey(account.Email)
		if s.emailIndex[oldKey] == id {
			delete(s.emailIndex, oldKey)
		}
		updated.Email = *patch.Email
		s.emailIndex[indexKey(updated.Email)] = id
	}
	if patch.PasswordHash != nil {
		updated.PasswordHash = *patch.PasswordHash
	}
	if patch.FullName != nil {
		updated.FullName = *patch.FullName
	}
	if patch.Role != nil {
		updated.Role = *patch.Role
	}
	updated.UpdatedAt = s.now()

	s.accounts[id] = &updated

	return cloneAccount(&updated), true
}

// CreateTask implements repository.TaskRepository.
func (s *Store) CreateTask(_ context.Context, input repository.NewTask) (*entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate task id")
	}

	now := s.now()
	task := &entity.Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.tasks[id] = task
	s.taskOrder = append(s.taskOrder, id)

	return cloneTask(task), nil
}

// FindTaskByID implements repository.TaskRepository.
func (s *Store) FindTaskByID(_ context.Context, id uuid.UUID) (*entity.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}

	return cloneTask(task), true
}

// ListTasksByOwner implements repository.TaskRepository.
func (s *Store) ListTasksByOwner(_ context.Context, ownerID uuid.UUID) []*entity.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Task, 0)
	for _, id := range s.taskOrder {
		if task := s.tasks[id]; task.OwnerID == ownerID {
			out = append(out, cloneTask(task))
		}
	}

	return out
}

// ListAllTasks implements repository.TaskRepository.
func (s *Store) ListAllTasks(_ context.Context) []*entity.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		out = append(out, cloneTask(s.tasks[id]))
	}

	return out
}

// UpdateTask implements repository.TaskRepository.
func (s *Store) UpdateTask(_ context.Context, id uuid.UUID, patch entity.TaskPatch) (*entity.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}

	updated := *task
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.Priority != nil {
		updated.Priority = *patch.Priority
	}
	updated.UpdatedAt = s.now()

	s.tasks[id] = &updated

	return cloneTask(&updated), true
}

// DeleteTask implements repository.TaskRepository.
func (s *Store) DeleteTask(_ context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false
	}

	delete(s.tasks, id)
	if i := slices.Index(s.taskOrder, id); i >= 0 {
		s.taskOrder = slices.Delete(s.taskOrder, i, i+1)
	}

	return true
}

func indexKey(email string) string {
	return strings.ToLower(email)
}

func cloneAccount(a *entity.Account) *entity.Account {
	c := *a

	return &c
}

func cloneTask(t *entity.Task) *entity.Task {
	c := *t

	return &c
}
