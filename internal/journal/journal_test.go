package journal_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/journal"
	"github.com/feral-file/band-ledger/internal/logger"
	"github.com/feral-file/band-ledger/internal/mocks"
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

var (
	band    = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	creator = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	member  = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	now     = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func memberAdded() *domain.Event {
	return domain.NewMemberAddedEvent(band, &domain.MemberAdded{Owner: member, AddedBy: creator})
}

func TestMemoryJournal_Append(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).Times(2)

	j := journal.NewMemory(clock)

	first := memberAdded()
	require.NoError(t, j.Append(context.Background(), first))
	second := domain.NewBandCreatedEvent(&domain.BandCreated{Band: band, Name: "Band", Creator: creator, Nonce: 1})
	require.NoError(t, j.Append(context.Background(), second))

	assert.Equal(t, uint64(1), first.Sequence)
	assert.Equal(t, uint64(2), second.Sequence)
	assert.Equal(t, now, first.Timestamp)

	id, err := ulid.ParseStrict(first.ID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), id.Time())
	assert.NotEqual(t, first.ID, second.ID)

	events := j.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeMemberAdded, events[0].Type)
	assert.Equal(t, 2, j.Len())
}

func TestMemoryJournal_RejectsMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	j := journal.NewMemory(mocks.NewMockClock(ctrl))

	malformed := &domain.Event{Type: domain.EventTypeSongAdded, Band: band}
	assert.ErrorIs(t, j.Append(context.Background(), malformed), domain.ErrInvalidInput)
	assert.Equal(t, 0, j.Len())
}

func TestMemoryJournal_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	j := journal.NewMemory(mocks.NewMockClock(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, j.Append(ctx, memberAdded()), context.Canceled)
	assert.Equal(t, 0, j.Len())
}

type testStoreJournalMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	clock    *mocks.MockClock
	notifier *mocks.MockNotifier
}

func setupTestStoreJournal(t *testing.T) (*testStoreJournalMocks, journal.Journal) {
	ctrl := gomock.NewController(t)
	tm := &testStoreJournalMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		clock:    mocks.NewMockClock(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
	}

	return tm, journal.NewStoreJournal(tm.store, tm.clock, tm.notifier)
}

func TestStoreJournal_Append(t *testing.T) {
	tm, j := setupTestStoreJournal(t)
	defer tm.ctrl.Finish()

	event := memberAdded()

	tm.clock.EXPECT().Now().Return(now)
	gomock.InOrder(
		tm.store.EXPECT().
			AppendEvent(gomock.Any(), event).
			DoAndReturn(func(_ context.Context, e *domain.Event) error {
				assert.NotEmpty(t, e.ID)
				e.Sequence = 42
				return nil
			}),
		tm.notifier.EXPECT().Notify(gomock.Any(), event),
	)

	require.NoError(t, j.Append(context.Background(), event))
	assert.Equal(t, uint64(42), event.Sequence)
	assert.Equal(t, now, event.Timestamp)
}

func TestStoreJournal_StoreFailureSkipsNotify(t *testing.T) {
	tm, j := setupTestStoreJournal(t)
	defer tm.ctrl.Finish()

	tm.clock.EXPECT().Now().Return(now)
	tm.store.EXPECT().AppendEvent(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	err := j.Append(context.Background(), memberAdded())
	assert.Error(t, err)
}

func TestStoreJournal_WithoutNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now)
	store.EXPECT().AppendEvent(gomock.Any(), gomock.Any()).Return(nil)

	j := journal.NewStoreJournal(store, clock, nil)
	assert.NoError(t, j.Append(context.Background(), memberAdded()))
}
