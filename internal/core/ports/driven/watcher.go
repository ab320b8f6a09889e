package driven

import "context"

// FileWatcher reports changes to a single file.
type FileWatcher interface {
	// Watch sends on the returned channel each time path is written or
	// replaced. The channel closes when ctx is cancelled.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
