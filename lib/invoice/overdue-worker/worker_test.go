package overdueworker

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type markerMock struct {
	mock.Mock
}

func (m *markerMock) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func TestHandle(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	t.Run("passes current time", func(t *testing.T) {
		marker := &markerMock{}
		marker.On("MarkOverdue", mock.Anything, now).Return(2, nil).Once()
		w := newWorker(marker, time.Hour)
		w.now = func() time.Time { return now }
		w.handle(context.Background())
		marker.AssertExpectations(t)
	})
	t.Run("error is logged only", func(t *testing.T) {
		marker := &markerMock{}
		marker.On("MarkOverdue", mock.Anything, now).Return(0, errors.New("db down")).Once()
		w := newWorker(marker, time.Hour)
		w.now = func() time.Time { return now }
		require.NotPanics(t, func() { w.handle(context.Background()) })
		marker.AssertExpectations(t)
	})
}
