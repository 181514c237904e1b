package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/careerhub/internal/domain/job"
)

type fakeRefresher struct {
	calls atomic.Int32
	done  chan struct{}
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) (job.RefreshResult, error) {
	f.calls.Add(1)
	select {
	case f.done <- struct{}{}:
	default:
	}
	return job.RefreshResult{Fetched: 1}, f.err
}

func TestStartRunsImmediately(t *testing.T) {
	r := &fakeRefresher{done: make(chan struct{}, 1)}
	s, err := New(r, time.Hour, nil)
	require.NoError(t, err)
	assert.Equal(t, "@every 1h0m0s", s.spec)

	require.NoError(t, s.Start(context.Background()))

	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not run on start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestStartTwice(t *testing.T) {
	r := &fakeRefresher{done: make(chan struct{}, 1), err: errors.New("provider down")}
	s, err := New(r, time.Hour, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	assert.Error(t, s.Start(context.Background()))
	require.NoError(t, s.Shutdown(context.Background()))
}

func TestShutdownBeforeStart(t *testing.T) {
	s, err := New(&fakeRefresher{}, time.Minute, nil)
	require.NoError(t, err)
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil, time.Hour, nil)
	assert.Error(t, err)

	_, err = New(&fakeRefresher{}, 0, nil)
	assert.Error(t, err)
}
