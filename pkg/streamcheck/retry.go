package streamcheck

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamscout/streamscout/internal/observability"
)

// retryBackoff is the fixed delay between check_tree attempts. Fixed
// rather than exponential because each check already carries its own
// per-operation socket timeout, per §4.T.
const retryBackoff = time.Second

// CheckTree is the primary entry point: it resolves rawURL into a
// CheckResult tree, retrying the whole resolution up to opts.Retries
// times until the tree contains at least one Stream leaf, per §4.T.
func CheckTree(ctx context.Context, rawURL string, opts Options) *CheckResult {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 1
	}

	requestID := uuid.NewString()
	ctx = observability.ContextWithRequestID(ctx, requestID)
	opts.Logger = observability.WithRequestID(opts.logger(), requestID)
	opts.logger().Debug("check_tree started", "url", rawURL, "max_depth", maxDepth, "retries", opts.Retries)

	retries := opts.Retries
	for {
		result := check(ctx, rawURL, opts, maxDepth)
		if result.ContainsStreamLeaf() {
			return result
		}
		if retries <= 0 {
			return result
		}
		retries--

		select {
		case <-ctx.Done():
			return result
		case <-time.After(retryBackoff):
		}
	}
}

// Check is the legacy flat variant: it runs CheckTree and flattens the
// first level of the resulting tree into a slice, for callers written
// against the pre-tree API.
func Check(ctx context.Context, rawURL string, opts Options) []*CheckResult {
	tree := CheckTree(ctx, rawURL, opts)
	return flattenFirstLevel(tree)
}

func flattenFirstLevel(r *CheckResult) []*CheckResult {
	if r.Outcome == nil {
		return []*CheckResult{r}
	}
	switch {
	case r.Outcome.Stream != nil:
		return []*CheckResult{r}
	case r.Outcome.Redirect != nil:
		return []*CheckResult{r.Outcome.Redirect}
	case r.Outcome.Playlist != nil:
		return r.Outcome.Playlist
	default:
		return []*CheckResult{r}
	}
}
