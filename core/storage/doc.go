// Package storage provides the remote asset store of the scouting dashboard.
//
// It wraps the MinIO Go client (S3 compatible) and exposes the bucket as a folder
// tree: one folder per team under a root folder, each holding the team report and
// a "jugadores" folder of player images.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # AssetStore
//
//   - ListChildren: immediate children of a folder, optionally filtered by kind.
//   - FindFolder: case-insensitive sub-folder lookup.
//   - FetchBytes: full download of one file, bounded by a timeout.
//   - IsAvailable: whether the store authenticated at construction.
//
// An unavailable store answers every operation with ErrUnavailable; callers degrade
// to cached data instead of failing.
//
// # Credentials
//
// Credentials are resolved once: configured secrets (environment) first, then the
// JSON credentials file. Without either the store is built unauthenticated.
//
// # Usage
//
//	store := storage.Open(ctx, cfg.Storage, logger)
//	folders, err := store.ListChildren(ctx, store.Root(), storage.KindFolder)
package storage
