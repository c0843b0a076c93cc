package reporter

import (
	"context"

	"github.com/leshachaplin/eventreporter/domain"
)

// The Async variants run the call in its own goroutine. The returned channel
// yields exactly one Result and is then closed.

func (c *Client) RecordInstallAsync(
	ctx context.Context,
	titleID, userInstallID, platform string,
	fingerprint *domain.Fingerprint,
) <-chan Result {
	return async(func() Result {
		return c.RecordInstall(ctx, titleID, userInstallID, platform, fingerprint)
	})
}

func (c *Client) RecordSessionAsync(
	ctx context.Context,
	titleID, userInstallID, platform, sessionID string,
	fingerprint *domain.Fingerprint,
) <-chan Result {
	return async(func() Result {
		return c.RecordSession(ctx, titleID, userInstallID, platform, sessionID, fingerprint)
	})
}

func (c *Client) RecordPurchaseAsync(ctx context.Context, titleID string, purchase domain.Purchase) <-chan Result {
	return async(func() Result {
		return c.RecordPurchase(ctx, titleID, purchase)
	})
}

func async(fn func() Result) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- fn()
	}()
	return out
}
