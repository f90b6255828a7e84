package feeds

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// Aggregator merges the feeds of several platforms.
type Aggregator struct {
	platforms []Platform
	byName    map[string]Platform
}

func NewAggregator(platforms ...Platform) *Aggregator {
	a := &Aggregator{
		platforms: platforms,
		byName:    make(map[string]Platform, len(platforms)),
	}
	for _, p := range platforms {
		a.byName[p.Name()] = p
	}
	return a
}

// Platform looks up a platform by name.
func (a *Aggregator) Platform(name string) (Platform, error) {
	p, ok := a.byName[name]
	if !ok {
		return nil, ErrUnknownPlatform
	}
	return p, nil
}

// Merge fetches every platform concurrently and returns all posts, newest
// first. tokens maps platform name to the user's access token. A platform
// that fails, or needs a token the user does not have, contributes nothing.
func (a *Aggregator) Merge(ctx context.Context, tokens map[string]string) []Post {
	results := make([][]Post, len(a.platforms))

	var wg sync.WaitGroup
	for i, p := range a.platforms {
		token := tokens[p.Name()]
		if p.RequiresToken() && token == "" {
			slog.Debug("platform skipped, not connected", "platform", p.Name())
			continue
		}

		wg.Add(1)
		go func(i int, p Platform, token string) {
			defer wg.Done()
			posts, err := p.FetchFeed(ctx, token)
			if err != nil {
				slog.Error("feed fetch failed", "platform", p.Name(), "error", err)
				return
			}
			results[i] = posts
		}(i, p, token)
	}
	wg.Wait()

	merged := make([]Post, 0)
	for _, posts := range results {
		merged = append(merged, posts...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged
}
