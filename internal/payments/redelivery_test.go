package payments

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockUntilDone(ctx context.Context) (kafka.Message, error) {
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func TestRedeliveryWorker_AppliesAndCommits(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := NewMockMessageReader(ctrl)
	applier := NewMockCreditApplier(ctrl)

	credit := models.PaymentCredit{UserID: uuid.New(), Tokens: 4, Reference: "ref-1", Attempts: 1, FailedAt: time.Now().Add(-time.Minute)}
	value, err := json.Marshal(credit)
	require.NoError(t, err)
	msg := kafka.Message{Key: []byte("ref-1"), Value: value}

	committed := make(chan struct{})
	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		applier.EXPECT().Apply(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got models.PaymentCredit) (*Result, error) {
				assert.Equal(t, "ref-1", got.Reference)
				assert.Equal(t, 1, got.Attempts)
				return &Result{Outcome: OutcomeCredited, LedgerApplied: true}, nil
			}),
		reader.EXPECT().CommitMessages(gomock.Any(), msg).
			DoAndReturn(func(context.Context, ...kafka.Message) error {
				close(committed)
				return nil
			}),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(blockUntilDone),
	)
	reader.EXPECT().Close().Return(nil)

	worker := NewRedeliveryWorker(reader, applier, time.Second)
	worker.Start(context.Background())

	select {
	case <-committed:
	case <-time.After(5 * time.Second):
		t.Fatal("message was not committed")
	}
	worker.Stop()
}

func TestRedeliveryWorker_SkipsMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := NewMockMessageReader(ctrl)
	applier := NewMockCreditApplier(ctrl)

	msg := kafka.Message{Key: []byte("bad"), Value: []byte("{")}
	committed := make(chan struct{})
	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), msg).
			DoAndReturn(func(context.Context, ...kafka.Message) error {
				close(committed)
				return nil
			}),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(blockUntilDone),
	)
	reader.EXPECT().Close().Return(nil)

	worker := NewRedeliveryWorker(reader, applier, 0)
	worker.Start(context.Background())

	select {
	case <-committed:
	case <-time.After(5 * time.Second):
		t.Fatal("malformed message was not committed")
	}
	worker.Stop()
}

func TestRedeliveryWorker_StopWhileWaiting(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := NewMockMessageReader(ctrl)
	applier := NewMockCreditApplier(ctrl)

	credit := models.PaymentCredit{UserID: uuid.New(), Tokens: 4, Reference: "ref-1", FailedAt: time.Now()}
	value, err := json.Marshal(credit)
	require.NoError(t, err)

	fetched := make(chan struct{})
	reader.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(context.Context) (kafka.Message, error) {
			close(fetched)
			return kafka.Message{Value: value}, nil
		})
	reader.EXPECT().Close().Return(nil)
	// neither Apply nor CommitMessages: the delay is still running at shutdown

	worker := NewRedeliveryWorker(reader, applier, time.Hour)
	worker.Start(context.Background())
	<-fetched
	worker.Stop()
}
