package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

// MockLaunchRecorder is a mock implementation of service.LaunchRecorder
type MockLaunchRecorder struct {
	mock.Mock
}

func (m *MockLaunchRecorder) Record(ctx context.Context, c domain.Confirmation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockPublisher is a mock implementation of queue.ConfirmationPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishConfirmation(ctx context.Context, c domain.Confirmation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func TestLocalDispatcher_AssignsJobIDAndRecords(t *testing.T) {
	recorder := new(MockLaunchRecorder)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(c domain.Confirmation) bool {
		return c.JobID != "" && c.Record.Retailer == "Roots"
	})).Return(nil).Once()

	d := NewLocalDispatcher(recorder, zap.NewNop())
	jobID, err := d.Dispatch(context.Background(), domain.Confirmation{Record: domain.LaunchRecord{Retailer: "Roots"}})
	require.NoError(t, err)
	d.Wait()

	_, err = uuid.Parse(jobID)
	assert.NoError(t, err)
	recorder.AssertExpectations(t)
}

func TestLocalDispatcher_KeepsExistingJobID(t *testing.T) {
	recorder := new(MockLaunchRecorder)
	recorder.On("Record", mock.Anything, domain.Confirmation{JobID: "job-1"}).Return(nil)

	d := NewLocalDispatcher(recorder, zap.NewNop())
	jobID, err := d.Dispatch(context.Background(), domain.Confirmation{JobID: "job-1"})
	require.NoError(t, err)
	d.Wait()

	assert.Equal(t, "job-1", jobID)
}

func TestLocalDispatcher_OutlivesCallerContext(t *testing.T) {
	var sawCanceled atomic.Bool
	recorder := new(MockLaunchRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sawCanceled.Store(args.Get(0).(context.Context).Err() != nil)
		}).
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	d := NewLocalDispatcher(recorder, zap.NewNop())
	_, err := d.Dispatch(ctx, domain.Confirmation{})
	require.NoError(t, err)
	cancel()
	d.Wait()

	assert.False(t, sawCanceled.Load())
}

func TestLocalDispatcher_RecordErrorIsNotReturned(t *testing.T) {
	recorder := new(MockLaunchRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(errors.New("failed to log launch"))

	d := NewLocalDispatcher(recorder, zap.NewNop())
	_, err := d.Dispatch(context.Background(), domain.Confirmation{})
	d.Wait()

	assert.NoError(t, err)
}

func TestQueueDispatcher_Publishes(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishConfirmation", mock.Anything, mock.MatchedBy(func(c domain.Confirmation) bool {
		return c.JobID != ""
	})).Return(nil)

	jobID, err := NewQueueDispatcher(publisher, zap.NewNop()).Dispatch(context.Background(), domain.Confirmation{})
	require.NoError(t, err)
	assert.NotEmpty(t, jobID)
	publisher.AssertExpectations(t)
}

func TestQueueDispatcher_PublishError(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishConfirmation", mock.Anything, mock.Anything).Return(errors.New("queue does not exist"))

	jobID, err := NewQueueDispatcher(publisher, zap.NewNop()).Dispatch(context.Background(), domain.Confirmation{})
	assert.Error(t, err)
	assert.Empty(t, jobID)
	assert.Contains(t, err.Error(), "failed to enqueue launch")
}
