package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type SessionRepository struct {
	mock.Mock
}

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	register(&m.Mock, t)
	return m
}

func (m *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	ret := m.Called(ctx, token)
	return ptr[entity.Session](ret, 0), ret.Error(1)
}

func (m *SessionRepository) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *SessionRepository) RevokeAllUserSessions(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *SessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	return int64At(ret, 0), ret.Error(1)
}
