package schedulerequests

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	requestStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/schedulerequest"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
)

type fakeRequestRepo struct {
	stored   *domain.ScheduleChangeRequest
	requests []*domain.ScheduleChangeRequest

	lastStatus *domain.ScheduleRequestStatus
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domain.ScheduleChangeRequest) (*domain.ScheduleChangeRequest, error) {
	cp := *req
	cp.ID = 42
	f.stored = &cp
	return &cp, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleChangeRequest, error) {
	if f.stored == nil || f.stored.ID != id {
		return nil, requestStorage.ErrRequestNotFound
	}
	return f.stored, nil
}

func (f *fakeRequestRepo) ListByProfessional(_ context.Context, _ int64, status *domain.ScheduleRequestStatus) ([]*domain.ScheduleChangeRequest, error) {
	f.lastStatus = status
	return f.requests, nil
}

type fakeStaffClient struct{ exists bool }

func (f *fakeStaffClient) ProfessionalExists(_ context.Context, _ int64) (bool, error) {
	return f.exists, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func submitRequest() *models.SubmitRequest {
	return &models.SubmitRequest{
		ProfessionalID: 20,
		RequestType:    "add_hours",
		Data: domain.ScheduleChangeData{
			AddHours: &domain.AddHoursData{
				DayOfWeek:   1,
				StartTime:   "09:00",
				EndTime:     "12:00",
				ServiceType: domain.ServiceInPerson,
			},
		},
	}
}

func TestSubmit(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		repo := &fakeRequestRepo{}
		svc := NewService(repo, &fakeStaffClient{exists: true}, nopLogger{})

		resp, err := svc.Submit(context.Background(), submitRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "pending", resp.Status)
		require.NotNil(t, repo.stored)
		assert.Equal(t, domain.RequestPending, repo.stored.Status)
	})

	t.Run("unknown request type", func(t *testing.T) {
		svc := NewService(&fakeRequestRepo{}, &fakeStaffClient{exists: true}, nopLogger{})

		req := submitRequest()
		req.RequestType = "swap_shifts"
		_, err := svc.Submit(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("reason too long", func(t *testing.T) {
		repo := &fakeRequestRepo{}
		svc := NewService(repo, &fakeStaffClient{exists: true}, nopLogger{})

		req := submitRequest()
		long := strings.Repeat("a", domain.MaxReasonLength+1)
		req.Reason = &long
		_, err := svc.Submit(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, repo.stored)
	})

	t.Run("payload not matching type is rejected before write", func(t *testing.T) {
		repo := &fakeRequestRepo{}
		svc := NewService(repo, &fakeStaffClient{exists: true}, nopLogger{})

		req := submitRequest()
		req.RequestType = "remove_hours"
		_, err := svc.Submit(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPayload)
		assert.Nil(t, repo.stored)
	})

	t.Run("professional not found", func(t *testing.T) {
		svc := NewService(&fakeRequestRepo{}, &fakeStaffClient{exists: false}, nopLogger{})

		_, err := svc.Submit(context.Background(), submitRequest())
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})
}

func TestGetByID(t *testing.T) {
	repo := &fakeRequestRepo{}
	svc := NewService(repo, &fakeStaffClient{exists: true}, nopLogger{})

	created, err := svc.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestList(t *testing.T) {
	t.Run("status filter passed to repository", func(t *testing.T) {
		repo := &fakeRequestRepo{}
		svc := NewService(repo, &fakeStaffClient{exists: true}, nopLogger{})

		_, err := svc.List(context.Background(), &models.ListRequest{
			ProfessionalID: 20,
			Status:         ptr.Ptr("pending"),
		})
		require.NoError(t, err)
		require.NotNil(t, repo.lastStatus)
		assert.Equal(t, domain.RequestPending, *repo.lastStatus)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := NewService(&fakeRequestRepo{}, &fakeStaffClient{exists: true}, nopLogger{})

		_, err := svc.List(context.Background(), &models.ListRequest{
			ProfessionalID: 20,
			Status:         ptr.Ptr("archived"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no filter lists everything", func(t *testing.T) {
		repo := &fakeRequestRepo{requests: []*domain.ScheduleChangeRequest{
			{ID: 1, ProfessionalID: 20, RequestType: domain.RequestAddHours, Status: domain.RequestPending},
			{ID: 2, ProfessionalID: 20, RequestType: domain.RequestBlockDates, Status: domain.RequestApproved},
		}}
		svc := NewService(repo, &fakeStaffClient{exists: true}, nopLogger{})

		resp, err := svc.List(context.Background(), &models.ListRequest{ProfessionalID: 20})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		assert.Nil(t, repo.lastStatus)
	})
}
