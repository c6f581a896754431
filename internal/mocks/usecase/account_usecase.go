package usecase

import (
	"context"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockAccountUsecase is a mock type for the AccountUsecase type
type MockAccountUsecase struct {
	mock.Mock
}

var _ usecase.AccountUsecase = (*MockAccountUsecase)(nil)

// NewMockAccountUsecase creates a new instance of MockAccountUsecase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAccountUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Register provides a mock function with given fields: ctx, input
func (m *MockAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

// Login provides a mock function with given fields: ctx, input
func (m *MockAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

// Authenticate provides a mock function with given fields: ctx, authHeader
func (m *MockAccountUsecase) Authenticate(ctx context.Context, authHeader string) (*service.Claims, error) {
	args := m.Called(ctx, authHeader)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

// VerifySession provides a mock function with given fields: ctx, claims
func (m *MockAccountUsecase) VerifySession(ctx context.Context, claims *service.Claims) (*entity.PublicAccount, error) {
	args := m.Called(ctx, claims)
	account, _ := args.Get(0).(*entity.PublicAccount)

	return account, args.Error(1)
}

// ListAccounts provides a mock function with given fields: ctx, claims
func (m *MockAccountUsecase) ListAccounts(ctx context.Context, claims *service.Claims) ([]*entity.PublicAccount, error) {
	args := m.Called(ctx, claims)
	accounts, _ := args.Get(0).([]*entity.PublicAccount)

	return accounts, args.Error(1)
}
