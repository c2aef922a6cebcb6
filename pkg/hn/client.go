package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sternhagen/hn-api-client/pkg/logging"
)

// Config holds the configuration for the client.
type Config struct {
	// Fetcher retrieves raw documents from the backend. Required.
	Fetcher Fetcher
}

// DefaultConfig returns a configuration backed by an HTTP fetcher pointing at
// the official API.
func DefaultConfig() (Config, error) {
	fetcher, err := NewHTTPFetcher(DefaultFetcherConfig())
	if err != nil {
		return Config{}, err
	}
	return Config{Fetcher: fetcher}, nil
}

// Client resolves Hacker News items, users, and site-wide aggregates.
//
// Every resolving operation comes in two flavors. The strict form (Item, User,
// Items, Users, Authors) treats absence as an error carrying ErrorClassNotFound.
// The tolerant form (LookupItem, LookupUser, LookupItems, LookupUsers,
// LookupAuthors) reports absence as a nil pointer and reserves errors for
// transport and decode failures.
type Client struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// New creates a new client with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	return &Client{
		fetcher: cfg.Fetcher,
		logger:  logging.NewLogger("hn-client"),
	}, nil
}

// NewDefault creates a client backed by an HTTP fetcher pointing at the
// official API.
func NewDefault() (*Client, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// LookupItem resolves the item with the given ID. It returns (nil, nil) when
// the store has no item under that ID.
func (c *Client) LookupItem(ctx context.Context, id int) (*Item, error) {
	key := strconv.Itoa(id)
	body, err := c.fetcher.FetchItem(ctx, id)
	if err != nil {
		hnErrorsTotal.WithLabelValues(string(ErrorClassTransport)).Inc()
		return nil, transportError(ResourceItem, key, err)
	}

	// A null document is how the store reports absence.
	var item *Item
	if err := json.Unmarshal(body, &item); err != nil {
		hnErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, decodeError(ResourceItem, key, err)
	}
	return item, nil
}

// Item resolves the item with the given ID. Absence is an error carrying
// ErrorClassNotFound.
func (c *Client) Item(ctx context.Context, id int) (Item, error) {
	item, err := c.LookupItem(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if item == nil {
		hnErrorsTotal.WithLabelValues(string(ErrorClassNotFound)).Inc()
		c.logger.Debug().Int("id", id).Msg("Item not found")
		return Item{}, notFoundError(ResourceItem, strconv.Itoa(id))
	}
	return *item, nil
}

// LookupUser resolves the user with the given name. It returns (nil, nil)
// when the store has no user under that name.
func (c *Client) LookupUser(ctx context.Context, name string) (*User, error) {
	body, err := c.fetcher.FetchUser(ctx, name)
	if err != nil {
		hnErrorsTotal.WithLabelValues(string(ErrorClassTransport)).Inc()
		return nil, transportError(ResourceUser, name, err)
	}

	var user *User
	if err := json.Unmarshal(body, &user); err != nil {
		hnErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, decodeError(ResourceUser, name, err)
	}
	return user, nil
}

// User resolves the user with the given name. Absence is an error carrying
// ErrorClassNotFound.
func (c *Client) User(ctx context.Context, name string) (User, error) {
	user, err := c.LookupUser(ctx, name)
	if err != nil {
		return User{}, err
	}
	if user == nil {
		hnErrorsTotal.WithLabelValues(string(ErrorClassNotFound)).Inc()
		c.logger.Debug().Str("name", name).Msg("User not found")
		return User{}, notFoundError(ResourceUser, name)
	}
	return *user, nil
}

// MaxItemID returns the largest item ID the store has allocated so far.
func (c *Client) MaxItemID(ctx context.Context) (int, error) {
	var id int
	if err := c.aggregate(ctx, EndpointMaxItem, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// TopStories returns up to 500 story and job IDs in front-page ranking order.
func (c *Client) TopStories(ctx context.Context) ([]int, error) {
	return c.storyIDs(ctx, EndpointTopStories)
}

// NewStories returns up to 500 story IDs, newest first.
func (c *Client) NewStories(ctx context.Context) ([]int, error) {
	return c.storyIDs(ctx, EndpointNewStories)
}

// BestStories returns up to 500 story IDs in best-ranking order.
func (c *Client) BestStories(ctx context.Context) ([]int, error) {
	return c.storyIDs(ctx, EndpointBestStories)
}

// AskStories returns up to 200 of the latest Ask HN story IDs.
func (c *Client) AskStories(ctx context.Context) ([]int, error) {
	return c.storyIDs(ctx, EndpointAskStories)
}

// ShowStories returns up to 200 of the latest Show HN story IDs.
func (c *Client) ShowStories(ctx context.Context) ([]int, error) {
	return c.storyIDs(ctx, EndpointShowStories)
}

// JobStories returns up to 200 of the latest job posting IDs.
func (c *Client) JobStories(ctx context.Context) ([]int, error) {
	return c.storyIDs(ctx, EndpointJobStories)
}

// Updates returns the items and user profiles that changed recently.
func (c *Client) Updates(ctx context.Context) (Updates, error) {
	var u Updates
	if err := c.aggregate(ctx, EndpointUpdates, &u); err != nil {
		return Updates{}, err
	}
	return u, nil
}

// storyIDs resolves one of the story feed endpoints. Feed order is
// meaningful and preserved as returned by the store.
func (c *Client) storyIDs(ctx context.Context, endpoint Endpoint) ([]int, error) {
	var ids []int
	if err := c.aggregate(ctx, endpoint, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// aggregate fetches a site-wide endpoint and decodes it into v.
func (c *Client) aggregate(ctx context.Context, endpoint Endpoint, v any) error {
	body, err := c.fetcher.FetchAggregate(ctx, endpoint)
	if err != nil {
		hnErrorsTotal.WithLabelValues(string(ErrorClassTransport)).Inc()
		return transportError(string(endpoint), "", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		hnErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return decodeError(string(endpoint), "", err)
	}
	return nil
}
