package service

import (
	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock type for the TokenService type
type MockTokenService struct {
	mock.Mock
}

var _ service.TokenService = (*MockTokenService)(nil)

// NewMockTokenService creates a new instance of MockTokenService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Issue provides a mock function with given fields: subject, email, role
func (m *MockTokenService) Issue(subject uuid.UUID, email string, role entity.Role) (string, error) {
	args := m.Called(subject, email, role)

	return args.String(0), args.Error(1)
}

// Verify provides a mock function with given fields: token
func (m *MockTokenService) Verify(token string) (*service.Claims, error) {
	args := m.Called(token)

	var claims *service.Claims
	if v := args.Get(0); v != nil {
		claims = v.(*service.Claims)
	}

	return claims, args.Error(1)
}
