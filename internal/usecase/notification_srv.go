package usecase

import (
	"context"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/dto/response"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

const notifyTimeout = 5 * time.Second

// NotificationService dispatches lifecycle events. Notify never fails the
// caller: errors are logged and dropped.
type NotificationService interface {
	Notify(ctx context.Context, userID int64, typ entity.NotificationType, title, message string, data map[string]any)

	GetMyNotifications(ctx context.Context, userID int64, req *request.PaginatedRequest, unreadOnly bool) (*response.PaginatedResponse[response.NotificationResponse], error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

// NotificationEvent is the broker payload
type NotificationEvent struct {
	Type       entity.NotificationType `json:"type"`
	UserID     int64                   `json:"user_id"`
	Title      string                  `json:"title"`
	Message    string                  `json:"message"`
	Data       map[string]any          `json:"data,omitempty"`
	OccurredAt time.Time               `json:"occurred_at"`
}

type notificationService struct {
	repo      repository.NotificationRepository
	publisher EventPublisher
	log       *zap.Logger
}

// NewNotificationService accepts a nil publisher; events are then only logged.
func NewNotificationService(repo repository.NotificationRepository, publisher EventPublisher, log *zap.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) Notify(ctx context.Context, userID int64, typ entity.NotificationType, title, message string, data map[string]any) {
	// lepas dari cancel request, tapi tetap dibatasi timeout
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	now := time.Now()
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{CreatedAt: now},
		UserID:     userID,
		Type:       typ,
		Title:      title,
		Message:    message,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Warn("Failed to store notification",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("type", string(typ)),
		)
	}

	event := NotificationEvent{
		Type:       typ,
		UserID:     userID,
		Title:      title,
		Message:    message,
		Data:       data,
		OccurredAt: now,
	}

	if s.publisher == nil {
		s.log.Info("Notification event",
			zap.String("type", string(typ)),
			zap.Int64("user_id", userID),
			zap.String("title", title),
		)
		return
	}

	if err := s.publisher.PublishJSON(ctx, string(typ), event); err != nil {
		s.log.Warn("Failed to publish notification event",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("type", string(typ)),
		)
	}
}

func (s *notificationService) GetMyNotifications(ctx context.Context, userID int64, req *request.PaginatedRequest, unreadOnly bool) (*response.PaginatedResponse[response.NotificationResponse], error) {
	req.Normalize()

	items, err := s.repo.FindByUserID(ctx, userID, unreadOnly, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountByUserID(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	out := make([]response.NotificationResponse, len(items))
	for i, n := range items {
		out[i] = response.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}

	return response.NewPaginatedResponse(out, req.Page, req.PerPage, total), nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	ok, err := s.repo.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NotFound("notification %d not found", notificationID)
	}
	return nil
}
