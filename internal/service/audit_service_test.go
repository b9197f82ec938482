package service

import (
	"context"
	"io"
	"testing"
	"time"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			if log.Action != domain.AuditActionLiquidate {
				t.Errorf("expected LIQUIDATE, got %s", log.Action)
			}
			if log.Account == nil || *log.Account != liquidator {
				t.Errorf("expected account %s", liquidator)
			}
			close(done)
			return nil
		},
	)

	account := liquidator
	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		Account:      &account,
		Action:       domain.AuditActionLiquidate,
		ResourceType: "loan",
		ResourceID:   "7",
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now(),
	})

	select {
	case <-done:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	// Should not panic
	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		Action:       domain.AuditActionPublishPrice,
		ResourceType: "price",
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now(),
	})

	time.Sleep(50 * time.Millisecond) // let goroutine run
}
