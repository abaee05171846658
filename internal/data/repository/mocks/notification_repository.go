package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func NewNotificationRepository(t testingT) *NotificationRepository {
	m := &NotificationRepository{}
	register(&m.Mock, t)
	return m
}

func (m *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) FindByUserID(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	ret := m.Called(ctx, userID, unreadOnly, limit, offset)
	return slice[entity.Notification](ret, 0), ret.Error(1)
}

func (m *NotificationRepository) CountByUserID(ctx context.Context, userID int64, unreadOnly bool) (int64, error) {
	ret := m.Called(ctx, userID, unreadOnly)
	return int64At(ret, 0), ret.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) (bool, error) {
	ret := m.Called(ctx, id, userID)
	return ret.Bool(0), ret.Error(1)
}
