package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/band-ledger/internal/api/shared/errors"
	"github.com/feral-file/band-ledger/internal/band"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/factory"
	"github.com/feral-file/band-ledger/internal/logger"
	"github.com/feral-file/band-ledger/internal/media/rasterizer"
	"github.com/feral-file/band-ledger/internal/minter"
	"github.com/feral-file/band-ledger/internal/store"
	"github.com/feral-file/band-ledger/internal/uri"
)

// Executor is the interface for the API executor
type Executor interface {
	// CreateBand creates a band owned by caller
	CreateBand(ctx context.Context, caller domain.Account, name string) (*dto.BandCreatedResponse, error)
	// GetBandsByCreator lists the bands created by an account
	GetBandsByCreator(ctx context.Context, creator domain.Account) (*dto.BandListResponse, error)
	// GetBand summarizes a band
	GetBand(ctx context.Context, handle domain.Handle) (*dto.BandResponse, error)

	// AddMember grants membership of a band on behalf of caller
	AddMember(ctx context.Context, caller domain.Account, handle domain.Handle, account domain.Account) (*dto.MemberAddedResponse, error)
	// IsMember reports whether account is a member of a band
	IsMember(ctx context.Context, handle domain.Handle, account domain.Account) (*dto.MembershipResponse, error)

	// AddSong registers a song on behalf of caller
	AddSong(ctx context.Context, caller domain.Account, handle domain.Handle, name string, supply uint64, owners []domain.Account, shares []uint64) (*dto.SongResponse, error)
	// GetSongs lists the songs of a band
	GetSongs(ctx context.Context, handle domain.Handle) (*dto.SongListResponse, error)
	// GetSong retrieves a single song
	GetSong(ctx context.Context, handle domain.Handle, songID uint64) (*dto.SongResponse, error)
	// GetOwnership returns the share account holds in a song
	GetOwnership(ctx context.Context, handle domain.Handle, songID uint64, account domain.Account) (*dto.ShareResponse, error)
	// GetSongURI returns the metadata URI of a song token
	GetSongURI(ctx context.Context, handle domain.Handle, songID uint64) (*dto.URIResponse, error)
	// GetSongImage renders the artwork of a song token as PNG
	GetSongImage(ctx context.Context, handle domain.Handle, songID uint64) ([]byte, error)

	// GetSongsByOwner lists the songs in which an account holds a share
	GetSongsByOwner(ctx context.Context, owner domain.Account) (*dto.OwnedSongListResponse, error)
}

type executor struct {
	factory        *factory.Factory
	store          store.Store
	rasterizer     rasterizer.Rasterizer
	artworkChecker uri.DataURIChecker
	base64         adapter.Base64
}

func NewExecutor(f *factory.Factory, store store.Store, rasterizer rasterizer.Rasterizer, b64 adapter.Base64) Executor {
	return &executor{
		factory:        f,
		store:          store,
		rasterizer:     rasterizer,
		artworkChecker: uri.NewDataURIChecker("image/svg"),
		base64:         b64,
	}
}

func (e *executor) CreateBand(ctx context.Context, caller domain.Account, name string) (*dto.BandCreatedResponse, error) {
	created, err := e.factory.Create(ctx, caller, name)
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to create band")
	}

	logger.InfoCtx(ctx, "Band created",
		zap.String("band", created.Band.Hex()),
		zap.String("creator", created.Creator.Hex()),
		zap.Uint64("nonce", created.Nonce),
	)

	return dto.MapBandCreatedToDTO(created), nil
}

func (e *executor) GetBandsByCreator(ctx context.Context, creator domain.Account) (*dto.BandListResponse, error) {
	return &dto.BandListResponse{Bands: dto.MapAddresses(e.factory.GetAllBands(creator))}, nil
}

func (e *executor) GetBand(ctx context.Context, handle domain.Handle) (*dto.BandResponse, error) {
	b, err := e.band(handle)
	if err != nil {
		return nil, err
	}
	return dto.MapBandToDTO(b), nil
}

func (e *executor) AddMember(ctx context.Context, caller domain.Account, handle domain.Handle, account domain.Account) (*dto.MemberAddedResponse, error) {
	b, err := e.band(handle)
	if err != nil {
		return nil, err
	}

	added, err := b.AddMember(ctx, caller, account)
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to add member")
	}

	return &dto.MemberAddedResponse{
		Band:    handle.Hex(),
		Owner:   added.Owner.Hex(),
		AddedBy: added.AddedBy.Hex(),
	}, nil
}

func (e *executor) IsMember(ctx context.Context, handle domain.Handle, account domain.Account) (*dto.MembershipResponse, error) {
	b, err := e.band(handle)
	if err != nil {
		return nil, err
	}
	return &dto.MembershipResponse{Member: b.IsMember(account)}, nil
}

func (e *executor) AddSong(ctx context.Context, caller domain.Account, handle domain.Handle, name string, supply uint64, owners []domain.Account, shares []uint64) (*dto.SongResponse, error) {
	b, err := e.band(handle)
	if err != nil {
		return nil, err
	}

	added, err := b.AddSong(ctx, caller, name, supply, owners, shares)
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to add song")
	}

	logger.InfoCtx(ctx, "Song added",
		zap.String("band", handle.Hex()),
		zap.Uint64("songID", added.SongID),
		zap.Uint64("supply", added.Supply),
		zap.Int("owners", len(added.Owners)),
	)

	return e.song(b, added.SongID)
}

func (e *executor) GetSongs(ctx context.Context, handle domain.Handle) (*dto.SongListResponse, error) {
	b, err := e.band(handle)
	if err != nil {
		return nil, err
	}

	songs := b.Songs()
	resp := &dto.SongListResponse{Songs: make([]dto.SongResponse, len(songs))}
	for i, song := range songs {
		resp.Songs[i] = dto.MapSongToDTO(song)
	}
	return resp, nil
}

func (e *executor) GetSong(ctx context.Context, handle domain.Handle, songID uint64) (*dto.SongResponse, error) {
	b, err := e.band(handle)
	if err != nil {
		return nil, err
	}
	return e.song(b, songID)
}

func (e *executor) GetOwnership(ctx context.Context, handle domain.Handle, songID uint64, account domain.Account) (*dto.ShareResponse, error) {
	b, err := e.band(handle)
	if err != nil {
		return nil, err
	}
	return &dto.ShareResponse{Share: b.GetOwnership(songID, account)}, nil
}

func (e *executor) GetSongURI(ctx context.Context, handle domain.Handle, songID uint64) (*dto.URIResponse, error) {
	b, err := e.band(handle)
	if err != nil {
		return nil, err
	}

	tokenURI, err := b.Minter().URI(songID)
	if err != nil {
		return nil, apierrors.FromError(err, "Token not found")
	}
	return &dto.URIResponse{URI: tokenURI}, nil
}

func (e *executor) GetSongImage(ctx context.Context, handle domain.Handle, songID uint64) ([]byte, error) {
	tokenURI, err := e.GetSongURI(ctx, handle, songID)
	if err != nil {
		return nil, err
	}

	metadata, err := minter.ParseURI(tokenURI.URI, e.base64)
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to read token metadata")
	}

	result := e.artworkChecker.Check(metadata.ImageData)
	if !result.Valid {
		logger.WarnCtx(ctx, "Token artwork rejected",
			zap.String("band", handle.Hex()),
			zap.Uint64("songID", songID),
			zap.Stringp("reason", result.Error),
		)
		return nil, apierrors.NewInternalError("Invalid token artwork")
	}

	png, err := e.rasterizer.Rasterize(ctx, result.Data)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to rasterize artwork: %w", err),
			zap.String("band", handle.Hex()),
			zap.Uint64("songID", songID),
		)
		return nil, apierrors.NewInternalError("Failed to render token artwork")
	}

	return png, nil
}

func (e *executor) GetSongsByOwner(ctx context.Context, owner domain.Account) (*dto.OwnedSongListResponse, error) {
	songs, err := e.store.GetSongsByOwner(ctx, owner.Hex())
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to get songs by owner: %w", err), zap.String("owner", owner.Hex()))
		return nil, apierrors.NewInternalError("Failed to get songs")
	}

	resp := &dto.OwnedSongListResponse{Songs: make([]dto.OwnedSongResponse, 0, len(songs))}
	for _, song := range songs {
		owned, err := dto.MapOwnedSongToDTO(song)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("band", song.BandAddress))
			return nil, apierrors.NewInternalError("Failed to get songs")
		}
		resp.Songs = append(resp.Songs, owned)
	}
	return resp, nil
}

func (e *executor) band(handle domain.Handle) (*band.Band, error) {
	b, err := e.factory.Band(handle)
	if err != nil {
		return nil, apierrors.FromError(err, "Band not found")
	}
	return b, nil
}

func (e *executor) song(b *band.Band, songID uint64) (*dto.SongResponse, error) {
	song, err := b.Song(songID)
	if err != nil {
		return nil, apierrors.FromError(err, "Song not found")
	}
	resp := dto.MapSongToDTO(song)
	return &resp, nil
}
