// Package usecase implements link management on behalf of signed-in users.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vadimbarashkov/link-shortener/internal/entity"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type linkRepository interface {
	Save(ctx context.Context, userID, shortCode, originalURL string) (*entity.Link, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.Link, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Link, error)
	Update(ctx context.Context, userID, shortCode, originalURL string) (*entity.Link, error)
	Remove(ctx context.Context, userID, shortCode string) error
}

// linkCache must ignore a Set carrying an older UpdatedAt than the cached
// link, and a Set for a short code deleted within the TTL.
type linkCache interface {
	Get(ctx context.Context, shortCode string) (*entity.Link, error)
	Set(ctx context.Context, link *entity.Link) error
	Delete(ctx context.Context, shortCode string) error
}

type Option func(*LinkUseCase)

// WithCache puts cache in front of short code lookups.
func WithCache(cache linkCache) Option {
	return func(uc *LinkUseCase) {
		uc.cache = cache
	}
}

// WithLogger sets the logger used to report cache failures.
func WithLogger(logger *slog.Logger) Option {
	return func(uc *LinkUseCase) {
		uc.logger = logger
	}
}

type LinkUseCase struct {
	linkRepo linkRepository
	cache    linkCache
	logger   *slog.Logger
}

func NewLinkUseCase(linkRepo linkRepository, opts ...Option) *LinkUseCase {
	uc := &LinkUseCase{
		linkRepo: linkRepo,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// CreateLink stores a link under the caller supplied short code.
// A short code taken by any user yields entity.ErrShortCodeExists.
func (uc *LinkUseCase) CreateLink(ctx context.Context, userID, originalURL, shortCode string) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.CreateLink"

	link, err := uc.linkRepo.Save(ctx, userID, shortCode, originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create link: %w", op, err)
	}

	return link, nil
}

// GetLink returns the link with the given short code if userID owns it.
func (uc *LinkUseCase) GetLink(ctx context.Context, userID, shortCode string) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.GetLink"

	link, err := uc.lookup(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get link: %w", op, err)
	}

	if !link.OwnedBy(userID) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	return link, nil
}

func (uc *LinkUseCase) lookup(ctx context.Context, shortCode string) (*entity.Link, error) {
	if uc.cache != nil {
		link, err := uc.cache.Get(ctx, shortCode)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, entity.ErrCacheMiss) {
			uc.logger.Warn("failed to read link from cache", slog.String("short_code", shortCode), slog.Any("err", err))
		}
	}

	link, err := uc.linkRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, link); err != nil {
			uc.logger.Warn("failed to write link to cache", slog.String("short_code", shortCode), slog.Any("err", err))
		}
	}

	return link, nil
}

// ListLinks returns a page of the user's links, newest first, with the
// bounds it applied. limit falls back to DefaultListLimit when not positive
// and is capped at MaxListLimit; a negative offset is 0.
func (uc *LinkUseCase) ListLinks(ctx context.Context, userID string, limit, offset int) (*entity.LinkPage, error) {
	const op = "usecase.LinkUseCase.ListLinks"

	limit, offset = normalizePage(limit, offset)

	links, err := uc.linkRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list links: %w", op, err)
	}

	return &entity.LinkPage{
		Links:  links,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

func (uc *LinkUseCase) ModifyLink(ctx context.Context, userID, shortCode, originalURL string) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.ModifyLink"

	link, err := uc.linkRepo.Update(ctx, userID, shortCode, originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to modify link: %w", op, err)
	}

	uc.refresh(ctx, link)

	return link, nil
}

func (uc *LinkUseCase) DeleteLink(ctx context.Context, userID, shortCode string) error {
	const op = "usecase.LinkUseCase.DeleteLink"

	if err := uc.linkRepo.Remove(ctx, userID, shortCode); err != nil {
		return fmt.Errorf("%s: failed to delete link: %w", op, err)
	}

	uc.evict(ctx, shortCode)

	return nil
}

// refresh caches the row a write just returned. The cache keeps the newest
// version, so a concurrent GetLink cannot put the row it read earlier back.
func (uc *LinkUseCase) refresh(ctx context.Context, link *entity.Link) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Set(ctx, link); err != nil {
		uc.logger.Error("failed to refresh cached link", slog.String("short_code", link.ShortCode), slog.Any("err", err))
		uc.evict(ctx, link.ShortCode)
	}
}

// evict drops a cached link and blocks refills for the TTL. A failed
// eviction leaves a stale entry until its TTL expires.
func (uc *LinkUseCase) evict(ctx context.Context, shortCode string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, shortCode); err != nil {
		uc.logger.Error("failed to evict link from cache", slog.String("short_code", shortCode), slog.Any("err", err))
	}
}
