package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/link-shortener/internal/entity"
)

type LinkUseCaseTestSuite struct {
	suite.Suite
	errUnknown error
	link       *entity.Link
	repoMock   *mockLinkRepository
	cacheMock  *mockLinkCache
	uc         *LinkUseCase
}

func (suite *LinkUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.link = &entity.Link{
		ID:          1,
		UserID:      "user_1",
		OriginalURL: "https://example.com",
		ShortCode:   "abc123",
	}
}

func (suite *LinkUseCaseTestSuite) SetupSubTest() {
	suite.repoMock = new(mockLinkRepository)
	suite.cacheMock = new(mockLinkCache)
	suite.uc = NewLinkUseCase(suite.repoMock, WithCache(suite.cacheMock))
}

func (suite *LinkUseCaseTestSuite) TearDownSubTest() {
	suite.repoMock.AssertExpectations(suite.T())
	suite.cacheMock.AssertExpectations(suite.T())
}

func (suite *LinkUseCaseTestSuite) TestCreateLink() {
	ctx := context.Background()

	suite.Run("short code exists", func() {
		suite.repoMock.
			On("Save", ctx, "user_1", "abc123", "https://example.com").
			Once().
			Return(nil, entity.ErrShortCodeExists)

		link, err := suite.uc.CreateLink(ctx, "user_1", "https://example.com", "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrShortCodeExists)
		suite.Nil(link)
	})

	suite.Run("unknown error", func() {
		suite.repoMock.
			On("Save", ctx, "user_1", "abc123", "https://example.com").
			Once().
			Return(nil, suite.errUnknown)

		link, err := suite.uc.CreateLink(ctx, "user_1", "https://example.com", "abc123")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(link)
	})

	suite.Run("success", func() {
		suite.repoMock.
			On("Save", ctx, "user_1", "abc123", "https://example.com").
			Once().
			Return(suite.link, nil)

		link, err := suite.uc.CreateLink(ctx, "user_1", "https://example.com", "abc123")

		suite.NoError(err)
		suite.Equal(suite.link, link)
	})
}

func (suite *LinkUseCaseTestSuite) TestGetLink() {
	ctx := context.Background()

	suite.Run("cache hit", func() {
		suite.cacheMock.On("Get", ctx, "abc123").Once().Return(suite.link, nil)

		link, err := suite.uc.GetLink(ctx, "user_1", "abc123")

		suite.NoError(err)
		suite.Equal(suite.link, link)
	})

	suite.Run("cache miss fills cache", func() {
		suite.cacheMock.On("Get", ctx, "abc123").Once().Return(nil, entity.ErrCacheMiss)
		suite.repoMock.On("RetrieveByShortCode", ctx, "abc123").Once().Return(suite.link, nil)
		suite.cacheMock.On("Set", ctx, suite.link).Once().Return(nil)

		link, err := suite.uc.GetLink(ctx, "user_1", "abc123")

		suite.NoError(err)
		suite.Equal(suite.link, link)
	})

	suite.Run("cache failures fall back to repository", func() {
		suite.cacheMock.On("Get", ctx, "abc123").Once().Return(nil, suite.errUnknown)
		suite.repoMock.On("RetrieveByShortCode", ctx, "abc123").Once().Return(suite.link, nil)
		suite.cacheMock.On("Set", ctx, suite.link).Once().Return(suite.errUnknown)

		link, err := suite.uc.GetLink(ctx, "user_1", "abc123")

		suite.NoError(err)
		suite.Equal(suite.link, link)
	})

	suite.Run("link not found", func() {
		suite.cacheMock.On("Get", ctx, "abc123").Once().Return(nil, entity.ErrCacheMiss)
		suite.repoMock.On("RetrieveByShortCode", ctx, "abc123").Once().Return(nil, entity.ErrLinkNotFound)

		link, err := suite.uc.GetLink(ctx, "user_1", "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(link)
	})

	suite.Run("link owned by another user", func() {
		suite.cacheMock.On("Get", ctx, "abc123").Once().Return(suite.link, nil)

		link, err := suite.uc.GetLink(ctx, "user_2", "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(link)
	})
}

func (suite *LinkUseCaseTestSuite) TestListLinks() {
	ctx := context.Background()

	suite.Run("unknown error", func() {
		suite.repoMock.On("ListByUserID", ctx, "user_1", DefaultListLimit, 0).Once().Return(nil, suite.errUnknown)

		page, err := suite.uc.ListLinks(ctx, "user_1", 0, 0)

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(page)
	})

	suite.Run("success reports applied bounds", func() {
		suite.repoMock.On("ListByUserID", ctx, "user_1", MaxListLimit, 0).Once().Return([]*entity.Link{suite.link}, nil)

		page, err := suite.uc.ListLinks(ctx, "user_1", 1000, -5)

		suite.NoError(err)
		suite.Equal(&entity.LinkPage{
			Links:  []*entity.Link{suite.link},
			Limit:  MaxListLimit,
			Offset: 0,
		}, page)
	})

	suite.Run("bounds within range are kept", func() {
		suite.repoMock.On("ListByUserID", ctx, "user_1", 10, 30).Once().Return([]*entity.Link{}, nil)

		page, err := suite.uc.ListLinks(ctx, "user_1", 10, 30)

		suite.NoError(err)
		suite.Equal(10, page.Limit)
		suite.Equal(30, page.Offset)
		suite.Empty(page.Links)
	})
}

func (suite *LinkUseCaseTestSuite) TestModifyLink() {
	ctx := context.Background()

	suite.Run("link not found", func() {
		suite.repoMock.
			On("Update", ctx, "user_1", "abc123", "https://new-example.com").
			Once().
			Return(nil, entity.ErrLinkNotFound)

		link, err := suite.uc.ModifyLink(ctx, "user_1", "abc123", "https://new-example.com")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(link)
	})

	suite.Run("success caches the updated row", func() {
		updated := &entity.Link{UserID: "user_1", ShortCode: "abc123", OriginalURL: "https://new-example.com"}

		suite.repoMock.
			On("Update", ctx, "user_1", "abc123", "https://new-example.com").
			Once().
			Return(updated, nil)
		suite.cacheMock.On("Set", ctx, updated).Once().Return(nil)

		link, err := suite.uc.ModifyLink(ctx, "user_1", "abc123", "https://new-example.com")

		suite.NoError(err)
		suite.Equal(updated, link)
	})

	suite.Run("refresh failure falls back to eviction", func() {
		suite.repoMock.
			On("Update", ctx, "user_1", "abc123", "https://new-example.com").
			Once().
			Return(suite.link, nil)
		suite.cacheMock.On("Set", ctx, suite.link).Once().Return(suite.errUnknown)
		suite.cacheMock.On("Delete", ctx, "abc123").Once().Return(nil)

		link, err := suite.uc.ModifyLink(ctx, "user_1", "abc123", "https://new-example.com")

		suite.NoError(err)
		suite.NotNil(link)
	})

	suite.Run("cache failures do not fail the update", func() {
		suite.repoMock.
			On("Update", ctx, "user_1", "abc123", "https://new-example.com").
			Once().
			Return(suite.link, nil)
		suite.cacheMock.On("Set", ctx, suite.link).Once().Return(suite.errUnknown)
		suite.cacheMock.On("Delete", ctx, "abc123").Once().Return(suite.errUnknown)

		link, err := suite.uc.ModifyLink(ctx, "user_1", "abc123", "https://new-example.com")

		suite.NoError(err)
		suite.NotNil(link)
	})
}

func (suite *LinkUseCaseTestSuite) TestDeleteLink() {
	ctx := context.Background()

	suite.Run("link not found", func() {
		suite.repoMock.On("Remove", ctx, "user_1", "abc123").Once().Return(entity.ErrLinkNotFound)

		err := suite.uc.DeleteLink(ctx, "user_1", "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkNotFound)
	})

	suite.Run("success evicts cache", func() {
		suite.repoMock.On("Remove", ctx, "user_1", "abc123").Once().Return(nil)
		suite.cacheMock.On("Delete", ctx, "abc123").Once().Return(nil)

		err := suite.uc.DeleteLink(ctx, "user_1", "abc123")

		suite.NoError(err)
	})
}

func TestLinkUseCase(t *testing.T) {
	suite.Run(t, new(LinkUseCaseTestSuite))
}

func TestLinkUseCase_WithoutCache(t *testing.T) {
	repo := new(mockLinkRepository)
	uc := NewLinkUseCase(repo)

	link := &entity.Link{UserID: "user_1", ShortCode: "abc123"}
	repo.On("RetrieveByShortCode", context.Background(), "abc123").Once().Return(link, nil)
	repo.On("Remove", context.Background(), "user_1", "abc123").Once().Return(nil)

	got, err := uc.GetLink(context.Background(), "user_1", "abc123")
	assert.NoError(t, err)
	assert.Equal(t, link, got)

	assert.NoError(t, uc.DeleteLink(context.Background(), "user_1", "abc123"))
	repo.AssertExpectations(t)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: DefaultListLimit, wantOffset: 0},
		{name: "negative limit", limit: -1, offset: 3, wantLimit: DefaultListLimit, wantOffset: 3},
		{name: "capped limit", limit: MaxListLimit + 1, offset: 0, wantLimit: MaxListLimit, wantOffset: 0},
		{name: "negative offset", limit: 10, offset: -10, wantLimit: 10, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := normalizePage(tt.limit, tt.offset)

			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
