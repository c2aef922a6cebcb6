package hn

import "context"

// Authors resolves the author profile of every item concurrently and returns
// the profiles in input order: position i holds the profile of items[i].
// When any item carries no author (deleted items, some jobs and polls), the
// batch fails with a not-found error before a single profile is requested.
func (c *Client) Authors(ctx context.Context, items []Item) ([]User, error) {
	names := make([]string, len(items))
	for i := range items {
		name, ok := items[i].Author()
		if !ok {
			hnErrorsTotal.WithLabelValues(string(ErrorClassNotFound)).Inc()
			c.logger.Debug().Int("id", items[i].ID).Msg("Item has no author")
			return nil, notFoundError(ResourceUser, "")
		}
		names[i] = name
	}
	return c.Users(ctx, names)
}

// LookupAuthors resolves the author profile of every item concurrently and
// returns the profiles in input order, with a nil slot wherever the item is
// nil, the item carries no author, or no profile exists under the author's
// name. Items without an author cost no backend request.
func (c *Client) LookupAuthors(ctx context.Context, items []*Item) ([]*User, error) {
	c.logger.Debug().Int("count", len(items)).Msg("Resolving author batch")
	return gather(ctx, items, func(ctx context.Context, item *Item) (*User, error) {
		name, ok := item.Author()
		if !ok {
			return nil, nil
		}
		return c.LookupUser(ctx, name)
	})
}
