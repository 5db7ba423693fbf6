package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hybrid24/H24-BookingService/internal/domain"
	erpsyncModels "github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type repoStub struct {
	created *domain.Booking
	err     error
}

func (r *repoStub) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	booking.ID = 42
	booking.CreatedAt = time.Now()
	r.created = booking
	return booking, nil
}

type syncStub struct {
	result    *erpsyncModels.SyncResult
	submitted *domain.Booking
}

func (s *syncStub) SubmitBooking(ctx context.Context, booking *domain.Booking) *erpsyncModels.SyncResult {
	s.submitted = booking
	return s.result
}

type notifierStub struct {
	notified *domain.Booking
}

func (n *notifierStub) NotifyNewBooking(ctx context.Context, booking *domain.Booking) {
	n.notified = booking
}

func validRequest() *Request {
	return &Request{
		Name:        "Иван Иванов",
		Phone:       "+79991234567",
		ServiceType: "Диагностика",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &repoStub{}
	sync := &syncStub{result: &erpsyncModels.SyncResult{Success: true, DocumentRef: "doc-1"}}
	notifier := &notifierStub{}
	uc := NewUseCase(repo, sync, notifier, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "new", resp.Status)
	require.NotNil(t, resp.Sync)
	assert.True(t, resp.Sync.Success)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusNew, repo.created.Status)
	assert.Equal(t, repo.created, sync.submitted)
	assert.Equal(t, repo.created, notifier.notified)
}

func TestExecute_ERPFailureDoesNotFailRequest(t *testing.T) {
	repo := &repoStub{}
	sync := &syncStub{result: &erpsyncModels.SyncResult{Success: false, Error: "1C unavailable"}}
	uc := NewUseCase(repo, sync, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Заявка создана, результат синхронизации возвращается в теле
	assert.Equal(t, int64(42), resp.ID)
	require.NotNil(t, resp.Sync)
	assert.False(t, resp.Sync.Success)
	assert.Equal(t, "1C unavailable", resp.Sync.Error)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&repoStub{}, &syncStub{}, nil, nopLogger{})

	tests := []struct {
		name    string
		mutate  func(*Request)
	}{
		{"empty name", func(r *Request) { r.Name = "   " }},
		{"empty phone", func(r *Request) { r.Phone = "" }},
		{"phone without digits", func(r *Request) { r.Phone = "нет телефона" }},
		{"name too long", func(r *Request) { r.Name = string(make([]byte, domain.MaxNameLength+1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &repoStub{err: assert.AnError}
	sync := &syncStub{}
	uc := NewUseCase(repo, sync, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	// В 1С ничего не отправлялось
	assert.Nil(t, sync.submitted)
}
