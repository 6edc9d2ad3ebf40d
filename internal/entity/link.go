// Package entity defines the entities and errors used in the application.
// It includes the Link struct, which represents a shortened link owned by a
// user, along with the errors the storage layers report about it.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrShortCodeExists is returned when attempting to create a link with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrLinkNotFound is returned when a link with the specified short code cannot be found
	// or is owned by another user.
	ErrLinkNotFound = errors.New("link not found")
	// ErrCacheMiss is returned by a link cache that holds no entry for the short code.
	ErrCacheMiss = errors.New("cache miss")
)

// Link represents a shortened link.
type Link struct {
	ID          int64     // ID is the unique identifier of the link in the database.
	UserID      string    // UserID identifies the owner as issued by the identity provider.
	OriginalURL string    // OriginalURL is the full URL that the short code resolves to.
	ShortCode   string    // ShortCode is the globally unique code appended to the service base URL.
	CreatedAt   time.Time // CreatedAt is the timestamp when the link was created.
	UpdatedAt   time.Time // UpdatedAt is the timestamp when the link was last updated.
}

// OwnedBy reports whether the link belongs to the given user.
func (l *Link) OwnedBy(userID string) bool {
	return l.UserID == userID
}

// LinkPage is a page of a user's links together with the bounds that were applied.
type LinkPage struct {
	Links  []*Link
	Limit  int
	Offset int
}
