package notifier_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/logger"
	"github.com/feral-file/band-ledger/internal/mocks"
	"github.com/feral-file/band-ledger/internal/notifier"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var testConfig = notifier.Config{
	PoolSize:        2,
	QueueSize:       10,
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
	MaxElapsedTime:  200 * time.Millisecond,
}

func memberAdded(id string) *domain.Event {
	event := domain.NewMemberAddedEvent(
		common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		&domain.MemberAdded{
			Owner:   common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
			AddedBy: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		},
	)
	event.ID = id
	return event
}

func TestNotify_Publishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.Event) error {
			assert.Equal(t, "01J0000000000000000000000A", event.ID)
			return nil
		})
	publisher.EXPECT().Close()

	n := notifier.New(testConfig, publisher)
	n.Notify(context.Background(), memberAdded("01J0000000000000000000000A"))
	n.Close()
}

func TestNotify_RetriesUntilSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := mocks.NewMockPublisher(ctrl)
	gomock.InOrder(
		publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(errors.New("nats: timeout")).Times(2),
		publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil),
	)
	publisher.EXPECT().Close()

	n := notifier.New(testConfig, publisher)
	n.Notify(context.Background(), memberAdded("01J0000000000000000000000B"))
	n.Close()
}

func TestNotify_SurvivesCanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *domain.Event) error {
			return ctx.Err()
		})
	publisher.EXPECT().Close()

	ctx, cancel := context.WithCancel(context.Background())
	n := notifier.New(testConfig, publisher)
	n.Notify(ctx, memberAdded("01J0000000000000000000000C"))
	cancel()
	n.Close()
}

func TestNotify_EventIsCopied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.Event) error {
			<-release
			assert.Equal(t, "01J0000000000000000000000D", event.ID)
			return nil
		})
	publisher.EXPECT().Close()

	n := notifier.New(testConfig, publisher)
	event := memberAdded("01J0000000000000000000000D")
	n.Notify(context.Background(), event)
	event.ID = "mutated"
	close(release)
	n.Close()
}
