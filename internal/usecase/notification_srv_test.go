package usecase_test

import (
	"context"
	"errors"
	"testing"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository/mocks"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotify_StoreFailureStillPublishes(t *testing.T) {
	repo := mocks.NewNotificationRepository(t)
	publisher := &fakePublisher{}
	svc := usecase.NewNotificationService(repo, publisher, zap.NewNop())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Notification")).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), 10, entity.NotifBookingConfirmed, "t", "m", nil)
	})
	assert.Equal(t, []string{"booking.confirmed"}, publisher.published())
}

func TestNotify_WithoutPublisher(t *testing.T) {
	repo := mocks.NewNotificationRepository(t)
	svc := usecase.NewNotificationService(repo, nil, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == 10 && n.Type == entity.NotifWalletTopUp
	})).Return(nil)

	svc.Notify(context.Background(), 10, entity.NotifWalletTopUp, "t", "m", map[string]any{"amount": "5000"})
}

func TestMarkAsRead_OtherUsersNotification(t *testing.T) {
	repo := mocks.NewNotificationRepository(t)
	svc := usecase.NewNotificationService(repo, nil, zap.NewNop())

	repo.On("MarkAsRead", mock.Anything, int64(5), int64(10)).Return(false, nil)

	err := svc.MarkAsRead(context.Background(), 10, 5)

	require.ErrorIs(t, err, utils.ErrNotFound)
}
