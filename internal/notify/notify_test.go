package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "projects/x/messages/1", nil
}

func TestFCMSendsToUserTopic(t *testing.T) {
	s := &fakeSender{}
	require.NoError(t, NewFCM(s).UnreadChanged(context.Background(), 42, 7))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "user-42", s.sent[0].Topic)
	assert.Equal(t, "7", s.sent[0].Data["unread"])
}

func TestFCMSkipsAnonymous(t *testing.T) {
	s := &fakeSender{}
	require.NoError(t, NewFCM(s).UnreadChanged(context.Background(), 0, 3))
	assert.Empty(t, s.sent)
}

func TestFCMError(t *testing.T) {
	s := &fakeSender{err: errors.New("quota")}
	assert.Error(t, NewFCM(s).UnreadChanged(context.Background(), 1, 0))
	assert.NoError(t, Noop{}.UnreadChanged(context.Background(), 1, 0))
}

type gatedNotifier struct {
	started chan struct{}
	release chan struct{}

	mu     sync.Mutex
	totals []int
	errs   []error
}

func (g *gatedNotifier) UnreadChanged(ctx context.Context, _ int64, total int) error {
	if g.started != nil {
		g.started <- struct{}{}
	}
	var err error
	select {
	case <-g.release:
	case <-ctx.Done():
		err = ctx.Err()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.totals = append(g.totals, total)
	g.errs = append(g.errs, err)
	return err
}

func (g *gatedNotifier) seen() ([]int, []error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.totals...), append([]error(nil), g.errs...)
}

func TestBackgroundKeepsOnlyNewestWaitingValue(t *testing.T) {
	g := &gatedNotifier{started: make(chan struct{}, 4), release: make(chan struct{})}
	b := NewBackground(g, time.Minute)

	b.Push(1, 1)
	<-g.started
	b.Push(1, 2)
	b.Push(1, 3)
	close(g.release)

	assert.Eventually(t, func() bool {
		totals, _ := g.seen()
		return len(totals) == 2
	}, time.Second, 5*time.Millisecond)
	totals, _ := g.seen()
	assert.Equal(t, []int{1, 3}, totals)
}

func TestBackgroundPushHasDeadline(t *testing.T) {
	g := &gatedNotifier{release: make(chan struct{})}
	b := NewBackground(g, 10*time.Millisecond)

	b.Push(1, 5)
	assert.Eventually(t, func() bool {
		_, errs := g.seen()
		return len(errs) == 1 && errors.Is(errs[0], context.DeadlineExceeded)
	}, time.Second, 5*time.Millisecond)
}
