package hn

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// gather resolves every key concurrently and writes each result into the
// output slot matching the key's position. The first failure cancels the
// remaining work and becomes the batch error; no partial results survive.
// An empty key slice returns an empty result without touching the backend.
func gather[K, V any](ctx context.Context, keys []K, resolve func(context.Context, K) (V, error)) ([]V, error) {
	out := make([]V, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			v, err := resolve(gctx, key)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Items resolves every ID concurrently and returns the items in input order.
// Any absent ID fails the whole batch with a not-found error naming that ID.
// Duplicate IDs are resolved independently.
func (c *Client) Items(ctx context.Context, ids []int) ([]Item, error) {
	c.logger.Debug().Int("count", len(ids)).Msg("Resolving item batch")
	return gather(ctx, ids, c.Item)
}

// LookupItems resolves every ID concurrently and returns the items in input
// order, with a nil slot for each absent ID. A transport or decode failure
// on any ID fails the whole batch.
func (c *Client) LookupItems(ctx context.Context, ids []int) ([]*Item, error) {
	c.logger.Debug().Int("count", len(ids)).Msg("Resolving tolerant item batch")
	return gather(ctx, ids, c.LookupItem)
}

// Users resolves every name concurrently and returns the users in input
// order. Any absent name fails the whole batch with a not-found error naming
// that name.
func (c *Client) Users(ctx context.Context, names []string) ([]User, error) {
	c.logger.Debug().Int("count", len(names)).Msg("Resolving user batch")
	return gather(ctx, names, c.User)
}

// LookupUsers resolves every name concurrently and returns the users in
// input order, with a nil slot for each absent name. A transport or decode
// failure on any name fails the whole batch.
func (c *Client) LookupUsers(ctx context.Context, names []string) ([]*User, error) {
	c.logger.Debug().Int("count", len(names)).Msg("Resolving tolerant user batch")
	return gather(ctx, names, c.LookupUser)
}
