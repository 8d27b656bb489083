package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/supesu/raydium-sniper/internal/mocks"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"go.uber.org/mock/gomock"
)

func TestNotifySnipeUseCase_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepository(ctrl)
	mockPublisher := mocks.NewMockEventPublisher(ctrl)
	useCase := NewNotifySnipeUseCase(mockRepo, newTestLogger())

	mockPublisher.EXPECT().Subscribe(gomock.Any(), domain.EventTypePoolDetected, useCase).Return(nil)
	mockPublisher.EXPECT().Subscribe(gomock.Any(), domain.EventTypeSnipeSubmitted, useCase).Return(nil)
	mockPublisher.EXPECT().Subscribe(gomock.Any(), domain.EventTypeSnipeFailed, useCase).Return(nil)

	assert.NoError(t, useCase.Subscribe(context.Background(), mockPublisher))
}

func TestNotifySnipeUseCase_Handle_Submitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepository(ctrl)
	useCase := NewNotifySnipeUseCase(mockRepo, newTestLogger())

	pool := testPool(randomKey(), domain.WrappedSOLMint, domain.DetectionSourceLogs)
	event := &domain.SnipeSubmittedEvent{
		Keys:   &domain.MarketKeys{PoolMetadata: *pool},
		Result: &domain.SnipeResult{PoolID: pool.ID, BundleID: "bundle-1", SubmittedAt: time.Now()},
	}

	mockRepo.EXPECT().SendSnipeNotification(gomock.Any(), event.Keys, event.Result).Return(nil)

	assert.NoError(t, useCase.Handle(context.Background(), event))
}

func TestNotifySnipeUseCase_Handle_Failed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepository(ctrl)
	useCase := NewNotifySnipeUseCase(mockRepo, newTestLogger())

	pool := testPool(randomKey(), domain.WrappedSOLMint, domain.DetectionSourceAccounts)
	event := &domain.SnipeFailedEvent{Pool: pool, Stage: SnipeStageSubmit, Reason: "relay down", FailedAt: time.Now()}

	mockRepo.EXPECT().
		SendFailureNotification(gomock.Any(), pool, SnipeStageSubmit, "relay down").
		Return(errors.New("discord unavailable"))

	err := useCase.Handle(context.Background(), event)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "discord unavailable")
}

func TestNotifySnipeUseCase_Handle_PoolDetected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepository(ctrl)
	useCase := NewNotifySnipeUseCase(mockRepo, newTestLogger())

	pool := testPool(randomKey(), domain.WrappedSOLMint, domain.DetectionSourceLogs)
	mockRepo.EXPECT().SendPoolNotification(gomock.Any(), pool).Return(nil)

	assert.NoError(t, useCase.Handle(context.Background(), &domain.PoolDetectedEvent{Pool: pool, DetectedAt: time.Now()}))
}

type unknownEvent struct{}

func (unknownEvent) EventType() string     { return "pool.unknown" }
func (unknownEvent) OccurredAt() time.Time { return time.Time{} }
func (unknownEvent) AggregateID() string   { return "" }

func TestNotifySnipeUseCase_Handle_IgnoresOtherEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase := NewNotifySnipeUseCase(mocks.NewMockNotificationRepository(ctrl), newTestLogger())

	assert.NoError(t, useCase.Handle(context.Background(), unknownEvent{}))
}
