package user

import (
	"context"
	"time"

	"croppulse/models"
	"croppulse/services/gateway"

	"github.com/stretchr/testify/mock"
)

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) Create(ctx context.Context, acct *models.Account) error {
	return m.Called(ctx, acct).Error(0)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountRepo) GetByPhone(ctx context.Context, phone string) (*models.Account, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountRepo) UpdateProfile(ctx context.Context, acct *models.Account) error {
	return m.Called(ctx, acct).Error(0)
}

func (m *mockAccountRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockAccountRepo) UpdateFCMToken(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *mockAccountRepo) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockAccountRepo) SetVerificationCode(ctx context.Context, id, code string, issuedAt time.Time) error {
	return m.Called(ctx, id, code, issuedAt).Error(0)
}

func (m *mockAccountRepo) ConsumeVerificationCode(ctx context.Context, id, code string) (bool, error) {
	args := m.Called(ctx, id, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepo) UpsertFarmerProfile(ctx context.Context, p *models.FarmerProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockAccountRepo) UpsertFieldOfficerProfile(ctx context.Context, p *models.FieldOfficerProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockAccountRepo) ListActiveByCounties(ctx context.Context, counties []string) ([]*models.Account, error) {
	args := m.Called(ctx, counties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *mockAccountRepo) ListActiveByRolesAndCounty(ctx context.Context, roles []models.Role, county string) ([]*models.Account, error) {
	args := m.Called(ctx, roles, county)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *mockAccountRepo) ListActiveByRole(ctx context.Context, role models.Role) ([]*models.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *mockAccountRepo) List(ctx context.Context, role models.Role, limit, offset int) ([]*models.Account, int, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Account), args.Int(1), args.Error(2)
}

// fakeSMS records outgoing messages and can be forced to fail.
type fakeSMS struct {
	err      error
	to       []string
	messages []string
}

func (f *fakeSMS) Send(_ context.Context, phone, message string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, phone)
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeSMS) SendBulk(_ context.Context, phones []string, message string) (*gateway.BulkSMSResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.to = append(f.to, phones...)
	f.messages = append(f.messages, message)
	return &gateway.BulkSMSResult{Successful: phones}, nil
}
