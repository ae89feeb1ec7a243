package factory

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/feral-file/band-ledger/internal/band"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/logger"
	"github.com/feral-file/band-ledger/internal/store/schema"
)

// Projection reads the relational rows written in the same transaction as each journal event
type Projection interface {
	GetLastSequence(ctx context.Context) (uint64, error)
	GetBand(ctx context.Context, address string) (*schema.Band, error)
	GetBandsByCreator(ctx context.Context, creator string) ([]schema.Band, error)
	GetBandMembers(ctx context.Context, bandAddress string) ([]schema.BandMember, error)
	GetSongOwnerships(ctx context.Context, bandAddress string, songNumber uint64) ([]schema.SongOwnership, error)
}

// Verify checks a restored factory against the projection. The journal must end
// at restored, and every band, creator index, member list and song split must
// match the replayed state. Any difference is reported as ErrReplayMismatch.
func (f *Factory) Verify(ctx context.Context, projection Projection, restored uint64) error {
	last, err := projection.GetLastSequence(ctx)
	if err != nil {
		return err
	}
	if last != restored {
		return fmt.Errorf("%w: restored up to sequence %d, journal ends at %d", domain.ErrReplayMismatch, restored, last)
	}

	handles := f.AllBands()
	var creators []domain.Account
	var songs int
	for i, handle := range handles {
		b, err := f.Band(handle)
		if err != nil {
			return err
		}
		if err := verifyBand(ctx, projection, b, uint64(i+1)); err != nil { //nolint:gosec,G115
			return err
		}
		if !slices.Contains(creators, b.Creator()) {
			creators = append(creators, b.Creator())
		}
		songs += b.SongCount()
	}

	for _, creator := range creators {
		rows, err := projection.GetBandsByCreator(ctx, creator.Hex())
		if err != nil {
			return err
		}
		expected := f.GetAllBands(creator)
		if len(rows) != len(expected) {
			return fmt.Errorf("%w: creator %s has %d bands, projection has %d", domain.ErrReplayMismatch, creator.Hex(), len(expected), len(rows))
		}
		for i, row := range rows {
			if row.Address != expected[i].Hex() {
				return fmt.Errorf("%w: creator %s band %d is %s, projection has %s", domain.ErrReplayMismatch, creator.Hex(), i, expected[i].Hex(), row.Address)
			}
		}
	}

	logger.InfoCtx(ctx, "Ledger projection verified",
		zap.Uint64("lastSequence", last),
		zap.Int("bands", len(handles)),
		zap.Int("songs", songs),
	)

	return nil
}

func verifyBand(ctx context.Context, projection Projection, b *band.Band, nonce uint64) error {
	address := b.Handle().Hex()

	row, err := projection.GetBand(ctx, address)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("%w: band %s missing from projection", domain.ErrReplayMismatch, address)
	}
	if row.Name != b.Name() || row.CreatorAddress != b.Creator().Hex() || row.Nonce != int64(nonce) { //nolint:gosec,G115
		return fmt.Errorf("%w: band %s differs from projection", domain.ErrReplayMismatch, address)
	}

	members, err := projection.GetBandMembers(ctx, address)
	if err != nil {
		return err
	}
	expected := b.Members()
	if len(members) != len(expected) {
		return fmt.Errorf("%w: band %s has %d members, projection has %d", domain.ErrReplayMismatch, address, len(expected), len(members))
	}
	for i, member := range members {
		if member.MemberAddress != expected[i].Hex() {
			return fmt.Errorf("%w: band %s member %d is %s, projection has %s", domain.ErrReplayMismatch, address, i, expected[i].Hex(), member.MemberAddress)
		}
	}

	for _, song := range b.Songs() {
		ownerships, err := projection.GetSongOwnerships(ctx, address, song.ID)
		if err != nil {
			return err
		}
		if !sameSplit(song, ownerships) {
			return fmt.Errorf("%w: band %s song %d split differs from projection", domain.ErrReplayMismatch, address, song.ID)
		}
	}

	return nil
}

func sameSplit(song *band.Song, ownerships []schema.SongOwnership) bool {
	owners := song.Owners()
	shares := song.Shares()
	if len(ownerships) != len(owners) {
		return false
	}
	for i, ownership := range ownerships {
		if ownership.OwnerAddress != owners[i].Hex() || ownership.Share != strconv.FormatUint(shares[i], 10) {
			return false
		}
	}
	return true
}
