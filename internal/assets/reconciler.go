package assets

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Destroyer is the narrow contract the reconciler needs from the image store.
type Destroyer interface {
	Destroy(ctx context.Context, publicID string) error
}

// Reconciler cleans up externally hosted images that a submission attempt
// orphaned: every upload of a rejected submission, and every asset the
// submitter discarded while editing an accepted one. Deletions are
// best-effort and concurrent; failures are logged and swallowed, and the
// caller is never blocked. Assets belonging to an accepted, persisted record
// are never released.
type Reconciler struct {
	store   Destroyer
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewReconciler(store Destroyer, timeout time.Duration) *Reconciler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Reconciler{store: store, timeout: timeout}
}

// Release issues an independent deletion attempt for every public ID and
// returns immediately. Ordering between deletions is not guaranteed.
func (r *Reconciler) Release(reason string, publicIDs []string) {
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		r.wg.Add(1)
		go func(publicID string) {
			defer r.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()
			if err := r.store.Destroy(ctx, publicID); err != nil {
				slog.Warn("orphaned asset cleanup failed",
					"public_id", publicID, "reason", reason, "error", err)
				return
			}
			slog.Info("orphaned asset released", "public_id", publicID, "reason", reason)
		}(id)
	}
}

// Wait blocks until all in-flight deletions finish. Used on shutdown and in
// tests; request handling never calls it.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}
