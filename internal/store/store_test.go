package store

import (
	"context"
	"encoding/hex"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/minter"
)

var (
	testBand   = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	testBand2  = common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
	testOwnerA = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testOwnerB = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	testOwnerC = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

// =============================================================================
// Test Data Builders
// =============================================================================

func stampTestEvent(event *domain.Event) *domain.Event {
	now := time.Now().UTC().Truncate(time.Microsecond)
	event.ID = ulid.MustNewDefault(now).String()
	event.Timestamp = now
	return event
}

func buildBandCreated(band, creator domain.Account, nonce uint64) *domain.Event {
	return stampTestEvent(domain.NewBandCreatedEvent(&domain.BandCreated{
		Band:    band,
		Name:    "The Villagers",
		Creator: creator,
		Nonce:   nonce,
	}))
}

func buildMemberAdded(band, owner, addedBy domain.Account) *domain.Event {
	return stampTestEvent(domain.NewMemberAddedEvent(band, &domain.MemberAdded{
		Owner:   owner,
		AddedBy: addedBy,
	}))
}

func buildSongAdded(band domain.Account, songID uint64, name string, supply uint64, owners []domain.Account, shares []uint64) *domain.Event {
	return stampTestEvent(domain.NewSongAddedEvent(band, &domain.SongAdded{
		SongID: songID,
		Name:   name,
		Supply: supply,
		Owners: owners,
		Shares: shares,
		URI:    minter.NewMetadata(name, adapter.NewBase64()).URI(adapter.NewBase64()),
	}))
}

// seedLedger appends a band with two members and two songs
func seedLedger(t *testing.T, store Store) []*domain.Event {
	events := []*domain.Event{
		buildBandCreated(testBand, testOwnerA, 1),
		buildMemberAdded(testBand, testOwnerB, testOwnerA),
		buildSongAdded(testBand, 0, "Village Damsel", 100, []domain.Account{testOwnerA, testOwnerB}, []uint64{50, 50}),
		buildSongAdded(testBand, 1, "Harvest", 3, []domain.Account{testOwnerC, testOwnerA}, []uint64{3, 0}),
	}

	for _, event := range events {
		require.NoError(t, store.AppendEvent(context.Background(), event))
	}

	return events
}

// =============================================================================
// Test: AppendEvent / ListEvents
// =============================================================================

func testAppendEvent(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("assigns increasing sequences", func(t *testing.T) {
		events := seedLedger(t, store)

		for i := 1; i < len(events); i++ {
			assert.Greater(t, events[i].Sequence, events[i-1].Sequence)
		}

		last, err := store.GetLastSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, events[len(events)-1].Sequence, last)
	})

	t.Run("unknown band is rejected without writing the event", func(t *testing.T) {
		before, err := store.GetLastSequence(ctx)
		require.NoError(t, err)

		orphan := buildMemberAdded(testBand2, testOwnerB, testOwnerA)
		err = store.AppendEvent(ctx, orphan)
		assert.ErrorIs(t, err, domain.ErrBandNotFound)
		assert.Zero(t, orphan.Sequence)

		after, err := store.GetLastSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("duplicate event id is rejected", func(t *testing.T) {
		event := buildBandCreated(testBand2, testOwnerB, 2)
		require.NoError(t, store.AppendEvent(ctx, event))

		again := *event
		again.Sequence = 0
		assert.Error(t, store.AppendEvent(ctx, &again))
	})
}

func testListEvents(t *testing.T, store Store) {
	ctx := context.Background()
	seeded := seedLedger(t, store)

	t.Run("returns events in order with payloads", func(t *testing.T) {
		events, err := store.ListEvents(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, events, len(seeded))

		for i, event := range events {
			assert.Equal(t, seeded[i].ID, event.ID)
			assert.Equal(t, seeded[i].Sequence, event.Sequence)
			assert.Equal(t, seeded[i].Type, event.Type)
			assert.Equal(t, seeded[i].Band, event.Band)
			assert.True(t, event.Valid())
		}

		assert.Equal(t, testOwnerA, events[0].BandCreated.Creator)
		assert.Equal(t, testOwnerB, events[1].MemberAdded.Owner)
		assert.Equal(t, seeded[2].SongAdded.URI, events[2].SongAdded.URI)
		assert.Equal(t, []uint64{50, 50}, events[2].SongAdded.Shares)
	})

	t.Run("pages after a sequence", func(t *testing.T) {
		events, err := store.ListEvents(ctx, seeded[0].Sequence, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, seeded[1].ID, events[0].ID)
		assert.Equal(t, seeded[2].ID, events[1].ID)

		events, err = store.ListEvents(ctx, seeded[3].Sequence, 2)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

// =============================================================================
// Test: projections
// =============================================================================

func testBandProjection(t *testing.T, store Store) {
	ctx := context.Background()
	seedLedger(t, store)
	require.NoError(t, store.AppendEvent(ctx, buildBandCreated(testBand2, testOwnerA, 2)))

	t.Run("get band", func(t *testing.T) {
		band, err := store.GetBand(ctx, testBand.Hex())
		require.NoError(t, err)
		require.NotNil(t, band)
		assert.Equal(t, "The Villagers", band.Name)
		assert.Equal(t, testOwnerA.Hex(), band.CreatorAddress)
		assert.Equal(t, int64(1), band.Nonce)
	})

	t.Run("lowercase address is normalized", func(t *testing.T) {
		band, err := store.GetBand(ctx, "0xe7f1725e7734ce288f8367e1bb143e90bb3f0512")
		require.NoError(t, err)
		require.NotNil(t, band)
	})

	t.Run("missing band", func(t *testing.T) {
		band, err := store.GetBand(ctx, testOwnerC.Hex())
		require.NoError(t, err)
		assert.Nil(t, band)
	})

	t.Run("bands by creator", func(t *testing.T) {
		bands, err := store.GetBandsByCreator(ctx, testOwnerA.Hex())
		require.NoError(t, err)
		require.Len(t, bands, 2)
		assert.Equal(t, testBand.Hex(), bands[0].Address)
		assert.Equal(t, testBand2.Hex(), bands[1].Address)

		bands, err = store.GetBandsByCreator(ctx, testOwnerB.Hex())
		require.NoError(t, err)
		assert.Empty(t, bands)
	})

	t.Run("members include the creator first", func(t *testing.T) {
		members, err := store.GetBandMembers(ctx, testBand.Hex())
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, testOwnerA.Hex(), members[0].MemberAddress)
		assert.Nil(t, members[0].AddedBy)
		assert.Equal(t, testOwnerB.Hex(), members[1].MemberAddress)
		require.NotNil(t, members[1].AddedBy)
		assert.Equal(t, testOwnerA.Hex(), *members[1].AddedBy)
	})
}

func testSongProjection(t *testing.T, store Store) {
	ctx := context.Background()
	seedLedger(t, store)

	t.Run("ownerships keep registration order", func(t *testing.T) {
		ownerships, err := store.GetSongOwnerships(ctx, testBand.Hex(), 1)
		require.NoError(t, err)
		require.Len(t, ownerships, 2)
		assert.Equal(t, testOwnerC.Hex(), ownerships[0].OwnerAddress)
		assert.Equal(t, "3", ownerships[0].Share)
		assert.Equal(t, testOwnerA.Hex(), ownerships[1].OwnerAddress)
		assert.Equal(t, "0", ownerships[1].Share)
	})

	t.Run("songs by owner skip zero shares", func(t *testing.T) {
		songs, err := store.GetSongsByOwner(ctx, testOwnerA.Hex())
		require.NoError(t, err)
		require.Len(t, songs, 1)
		assert.Equal(t, "Village Damsel", songs[0].Name)
		assert.Equal(t, "50", songs[0].Share)
		assert.Equal(t, "100", songs[0].Supply)
		assert.Equal(t, testBand.Hex(), songs[0].BandAddress)

		songs, err = store.GetSongsByOwner(ctx, testOwnerC.Hex())
		require.NoError(t, err)
		require.Len(t, songs, 1)
		assert.Equal(t, int64(1), songs[0].SongNumber)
	})

	t.Run("metadata hash matches the minted metadata", func(t *testing.T) {
		songs, err := store.GetSongsByOwner(ctx, testOwnerB.Hex())
		require.NoError(t, err)
		require.Len(t, songs, 1)

		hash, err := minter.NewMetadata("Village Damsel", adapter.NewBase64()).Hash()
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(hash), songs[0].MetadataHash)
	})

	t.Run("shares sum to supply", func(t *testing.T) {
		ownerships, err := store.GetSongOwnerships(ctx, testBand.Hex(), 0)
		require.NoError(t, err)

		var total uint64
		for _, o := range ownerships {
			share, err := strconv.ParseUint(o.Share, 10, 64)
			require.NoError(t, err)
			total += share
		}
		assert.Equal(t, uint64(100), total)
	})

	t.Run("invalid metadata uri rolls back", func(t *testing.T) {
		before, err := store.GetLastSequence(ctx)
		require.NoError(t, err)

		event := buildSongAdded(testBand, 2, "Broken", 1, []domain.Account{testOwnerA}, []uint64{1})
		event.SongAdded.URI = "https://example.com/metadata.json"
		err = store.AppendEvent(ctx, event)
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrBandNotFound))

		after, err := store.GetLastSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

// =============================================================================
// Test: connection pool settings
// =============================================================================

func testNormalizeConnectionPoolSettings(t *testing.T, _ Store) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(3, 10, time.Minute, time.Minute)
	assert.Equal(t, 3, open)
	assert.Equal(t, 3, idle)
}

// RunStoreTests runs every store test with a fresh store from initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"AppendEvent", testAppendEvent},
		{"ListEvents", testListEvents},
		{"BandProjection", testBandProjection},
		{"SongProjection", testSongProjection},
		{"NormalizeConnectionPoolSettings", testNormalizeConnectionPoolSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}
