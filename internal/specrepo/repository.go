package specrepo

import "context"

// Repository stores and retrieves specification source text by name
// and version.
type Repository interface {
	Save(ctx context.Context, name, source string) (*Record, error)
	Load(ctx context.Context, name string, version int) (*Record, error)
	LoadLatest(ctx context.Context, name string) (*Record, error)
	ListVersions(ctx context.Context, name string) ([]*Record, error)
}
