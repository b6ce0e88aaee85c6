package relay_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/brewery/internal/config"
	"github.com/tuanvumaihuynh/brewery/internal/relay"
	"github.com/tuanvumaihuynh/brewery/internal/repository"
	"github.com/tuanvumaihuynh/brewery/internal/storage/db"
	"github.com/tuanvumaihuynh/brewery/internal/storage/mq"
)

type txDB struct {
	db.DB
}

func (d txDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(d)
}

type mockOutboxMsgRepository struct {
	mock.Mock
}

func (m *mockOutboxMsgRepository) WithDB(db.DB) repository.OutboxMsgRepository { return m }

func (m *mockOutboxMsgRepository) CreateOutboxMsg(ctx context.Context, params repository.CreateOutboxMsgParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *mockOutboxMsgRepository) ListUnprocessedOutboxMsgs(ctx context.Context, params repository.ListUnprocessedOutboxMsgsParams) ([]repository.OutboxMsg, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]repository.OutboxMsg), args.Error(1)
}

func (m *mockOutboxMsgRepository) BulkUpdateOutboxMsgs(ctx context.Context, params repository.BulkUpdateOutboxMsgsParams) error {
	return m.Called(ctx, params).Error(0)
}

type fakeProducer struct {
	mu       sync.Mutex
	produced []mq.ProduceMsg
	failOn   string
}

func (p *fakeProducer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if msg.Topic == p.failOn {
		return errors.New("broker unavailable")
	}
	p.produced = append(p.produced, msg)
	return nil
}

func newService(repo repository.OutboxMsgRepository, producer mq.Producer) *relay.Service {
	cfg := config.Relay{BatchSize: 10, Interval: 10 * time.Millisecond, ShutdownTimeout: time.Second}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return relay.NewService(cfg, logger, txDB{}, repo, producer)
}

func TestRelayBatch(t *testing.T) {
	ctx := context.Background()
	listParams := repository.ListUnprocessedOutboxMsgsParams{BatchSize: 10}

	t.Run("Should do nothing when outbox is empty", func(t *testing.T) {
		repo := &mockOutboxMsgRepository{}
		repo.On("ListUnprocessedOutboxMsgs", ctx, listParams).Return([]repository.OutboxMsg{}, nil)

		n, err := newService(repo, &fakeProducer{}).RelayBatch(ctx)
		require.NoError(t, err)

		assert.Zero(t, n)
		repo.AssertNotCalled(t, "BulkUpdateOutboxMsgs", mock.Anything, mock.Anything)
	})

	t.Run("Should publish messages and record failures", func(t *testing.T) {
		okID, failID := uuid.New(), uuid.New()
		msgs := []repository.OutboxMsg{
			{ID: okID, Topic: "beer.created", Payload: []byte(`{"beer_id":1}`)},
			{ID: failID, Topic: "beer.deleted", Payload: []byte(`{"beer_id":2}`)},
		}

		repo := &mockOutboxMsgRepository{}
		repo.On("ListUnprocessedOutboxMsgs", ctx, listParams).Return(msgs, nil)

		var updated repository.BulkUpdateOutboxMsgsParams
		repo.On("BulkUpdateOutboxMsgs", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				updated = args.Get(1).(repository.BulkUpdateOutboxMsgsParams)
			}).
			Return(nil)

		producer := &fakeProducer{failOn: "beer.deleted"}
		n, err := newService(repo, producer).RelayBatch(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, n)
		require.Len(t, producer.produced, 1)
		assert.Equal(t, "beer.created", producer.produced[0].Topic)

		require.Len(t, updated.Items, 2)
		byID := map[uuid.UUID]*string{}
		for _, item := range updated.Items {
			byID[item.ID] = item.Error
		}
		assert.Nil(t, byID[okID])
		require.NotNil(t, byID[failID])
		assert.Equal(t, "broker unavailable", *byID[failID])
	})

	t.Run("Should return list error", func(t *testing.T) {
		repo := &mockOutboxMsgRepository{}
		repo.On("ListUnprocessedOutboxMsgs", ctx, listParams).Return([]repository.OutboxMsg(nil), errors.New("db down"))

		_, err := newService(repo, &fakeProducer{}).RelayBatch(ctx)
		assert.ErrorContains(t, err, "db down")
	})
}

func TestRun(t *testing.T) {
	polled := make(chan struct{})
	var once sync.Once

	repo := &mockOutboxMsgRepository{}
	repo.On("ListUnprocessedOutboxMsgs", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { once.Do(func() { close(polled) }) }).
		Return([]repository.OutboxMsg{}, nil)

	cleanup := newService(repo, &fakeProducer{}).Run(context.Background())

	select {
	case <-polled:
	case <-time.After(time.Second):
		t.Fatal("relay did not poll the outbox")
	}

	cleanup()
}
