package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sme-credit-backend/internal/domain/application"
)

func sample() application.StatusNotification {
	return application.StatusNotification{
		OwnerID:       "owner-1",
		ApplicationID: "app-1",
		Number:        "#CRD-2025-000001",
		Status:        application.StatusApproved,
		UpdatedAt:     time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestRedisTransport_PublishesOnOwnerChannel(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sub := rdb.Subscribe(ctx, Channel("owner-1"))
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, NewRedisTransport(rdb).Send(ctx, sample()))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "credit:notifications:owner-1", msg.Channel)
		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "application.status_changed", got["event"])
		assert.Equal(t, "app-1", got["application_id"])
		assert.Equal(t, "APPROVED", got["status"])
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestRedisTransport_NoSubscriberIsFine(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	assert.NoError(t, NewRedisTransport(rdb).Send(context.Background(), sample()))
}

func TestRedisTransport_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()
	assert.Error(t, NewRedisTransport(rdb).Send(context.Background(), sample()))
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}
func (w *fakeWriter) Close() error { return nil }

func TestKafkaTransport_KeysByOwner(t *testing.T) {
	w := &fakeWriter{}
	tr := &KafkaTransport{w: w}
	require.NoError(t, tr.Send(context.Background(), sample()))

	require.Len(t, w.msgs, 1)
	m := w.msgs[0]
	assert.Equal(t, "owner-1", string(m.Key))
	assert.Equal(t, "application_id", m.Headers[0].Key)
	assert.Equal(t, "app-1", string(m.Headers[0].Value))
	assert.Contains(t, string(m.Value), `"number":"#CRD-2025-000001"`)

	w.err = errors.New("broker down")
	assert.ErrorContains(t, tr.Send(context.Background(), sample()), "broker down")
}

type recordingTransport struct {
	mu    sync.Mutex
	got   []application.StatusNotification
	err   error
	panic bool
	block bool
}

func (r *recordingTransport) Send(ctx context.Context, n application.StatusNotification) error {
	if r.panic {
		panic("boom")
	}
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return r.err
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}

func waitAll(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx))
}

func TestDispatcher_Delivers(t *testing.T) {
	tr := &recordingTransport{}
	d := NewDispatcher(tr, time.Second, nil)
	for i := 0; i < 5; i++ {
		d.Notify(sample())
	}
	waitAll(t, d)
	assert.Len(t, tr.got, 5)
}

func TestDispatcher_SwallowsFailures(t *testing.T) {
	cases := []struct {
		name string
		tr   *recordingTransport
	}{
		{"error", &recordingTransport{err: errors.New("nope")}},
		{"panic", &recordingTransport{panic: true}},
		{"timeout", &recordingTransport{block: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log, logs := observed()
			d := NewDispatcher(tc.tr, 20*time.Millisecond, log)

			start := time.Now()
			d.Notify(sample())
			assert.Less(t, time.Since(start), 10*time.Millisecond, "Notify must not wait on the transport")

			waitAll(t, d)
			require.Equal(t, 1, logs.FilterMessage("notification failed").Len())
		})
	}
}

func TestLogTransport(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, NewLogTransport(zap.New(core)).Send(context.Background(), sample()))
	entries := logs.FilterMessage("notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "APPROVED", entries[0].ContextMap()["status"])
}
