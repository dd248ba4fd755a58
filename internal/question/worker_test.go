package question

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (c *countingRefresher) RefreshCategories(ctx context.Context) ([]Category, error) {
	c.calls.Add(1)
	return nil, c.err
}

func TestCategoryWarmer_WarmsImmediatelyAndOnTick(t *testing.T) {
	refresher := &countingRefresher{}
	w := NewCategoryWarmer(refresher, zerolog.Nop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop after cancel")
	}
}

func TestCategoryWarmer_KeepsRunningOnError(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("db down")}
	w := NewCategoryWarmer(refresher, zerolog.Nop(), 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	w.Run(ctx)

	assert.Greater(t, refresher.calls.Load(), int32(1))
}

func TestNewCategoryWarmer_DefaultInterval(t *testing.T) {
	w := NewCategoryWarmer(&countingRefresher{}, zerolog.Nop(), 0)
	assert.Equal(t, 5*time.Minute, w.interval)
}
