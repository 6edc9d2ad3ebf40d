package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/link-shortener/internal/auth"
	"github.com/vadimbarashkov/link-shortener/internal/entity"
)

type mockLinkUseCase struct {
	mock.Mock
}

func (m *mockLinkUseCase) CreateLink(ctx context.Context, userID, originalURL, shortCode string) (*entity.Link, error) {
	args := m.Called(ctx, userID, originalURL, shortCode)
	link, _ := args.Get(0).(*entity.Link)
	return link, args.Error(1)
}

func (m *mockLinkUseCase) GetLink(ctx context.Context, userID, shortCode string) (*entity.Link, error) {
	args := m.Called(ctx, userID, shortCode)
	link, _ := args.Get(0).(*entity.Link)
	return link, args.Error(1)
}

func (m *mockLinkUseCase) ListLinks(ctx context.Context, userID string, limit, offset int) (*entity.LinkPage, error) {
	args := m.Called(ctx, userID, limit, offset)
	page, _ := args.Get(0).(*entity.LinkPage)
	return page, args.Error(1)
}

func (m *mockLinkUseCase) ModifyLink(ctx context.Context, userID, shortCode, originalURL string) (*entity.Link, error) {
	args := m.Called(ctx, userID, shortCode, originalURL)
	link, _ := args.Get(0).(*entity.Link)
	return link, args.Error(1)
}

func (m *mockLinkUseCase) DeleteLink(ctx context.Context, userID, shortCode string) error {
	args := m.Called(ctx, userID, shortCode)
	return args.Error(0)
}

// fakeVerifier maps session tokens to user ids.
type fakeVerifier map[string]string

func (v fakeVerifier) Verify(token string) (*auth.Claims, error) {
	userID, ok := v[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}

	claims := &auth.Claims{}
	claims.Subject = userID

	return claims, nil
}
