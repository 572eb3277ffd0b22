package ports

import (
	"context"

	"presence-analyzer/domain/presence"
)

// PresenceReader loads the full presence table from its backing file.
// Implementations skip malformed rows and fail only when the source
// itself cannot be read.
type PresenceReader interface {
	ReadPresence(ctx context.Context) (presence.Table, error)
}

// UserReader loads employee metadata (names, avatars) in source order
type UserReader interface {
	ReadUsers(ctx context.Context) ([]presence.User, error)
}

// UserSync refreshes the local copy of the user metadata file
type UserSync interface {
	Sync(ctx context.Context) error
}
