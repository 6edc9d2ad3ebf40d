package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/link-shortener/internal/entity"
)

type mockLinkRepository struct {
	mock.Mock
}

func (r *mockLinkRepository) Save(ctx context.Context, userID, shortCode, originalURL string) (*entity.Link, error) {
	args := r.Called(ctx, userID, shortCode, originalURL)
	link, _ := args.Get(0).(*entity.Link)
	return link, args.Error(1)
}

func (r *mockLinkRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.Link, error) {
	args := r.Called(ctx, shortCode)
	link, _ := args.Get(0).(*entity.Link)
	return link, args.Error(1)
}

func (r *mockLinkRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Link, error) {
	args := r.Called(ctx, userID, limit, offset)
	links, _ := args.Get(0).([]*entity.Link)
	return links, args.Error(1)
}

func (r *mockLinkRepository) Update(ctx context.Context, userID, shortCode, originalURL string) (*entity.Link, error) {
	args := r.Called(ctx, userID, shortCode, originalURL)
	link, _ := args.Get(0).(*entity.Link)
	return link, args.Error(1)
}

func (r *mockLinkRepository) Remove(ctx context.Context, userID, shortCode string) error {
	args := r.Called(ctx, userID, shortCode)
	return args.Error(0)
}

type mockLinkCache struct {
	mock.Mock
}

func (c *mockLinkCache) Get(ctx context.Context, shortCode string) (*entity.Link, error) {
	args := c.Called(ctx, shortCode)
	link, _ := args.Get(0).(*entity.Link)
	return link, args.Error(1)
}

func (c *mockLinkCache) Set(ctx context.Context, link *entity.Link) error {
	args := c.Called(ctx, link)
	return args.Error(0)
}

func (c *mockLinkCache) Delete(ctx context.Context, shortCode string) error {
	args := c.Called(ctx, shortCode)
	return args.Error(0)
}
