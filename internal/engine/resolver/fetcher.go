package resolver

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/core/ports"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type fetchKey struct {
	name    string
	version domain.Version
}

func (k fetchKey) String() string {
	return k.name + "@" + k.version.String()
}

type fetchResult struct {
	metadata *domain.PackageMetadata
	err      error
}

type vertexKey struct{}

// fetcher memoises provider answers for one resolution pass.
// Concurrent requests for the same key share a single provider call.
type fetcher struct {
	provider    ports.MetadataProvider
	telemetry   ports.Telemetry
	logger      ports.Logger
	concurrency int

	group singleflight.Group
	mu    sync.Mutex
	memo  map[fetchKey]fetchResult
}

func newFetcher(
	provider ports.MetadataProvider,
	telemetry ports.Telemetry,
	logger ports.Logger,
	concurrency int,
) *fetcher {
	return &fetcher{
		provider:    provider,
		telemetry:   telemetry,
		logger:      logger,
		concurrency: concurrency,
		memo:        make(map[fetchKey]fetchResult),
	}
}

func (f *fetcher) lookup(key fetchKey) (fetchResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.memo[key]
	return res, ok
}

// fetch returns the metadata for key, calling the provider at most once per key.
func (f *fetcher) fetch(ctx context.Context, key fetchKey) (*domain.PackageMetadata, error) {
	if res, ok := f.lookup(key); ok {
		return res.metadata, res.err
	}

	v, _, _ := f.group.Do(key.String(), func() (any, error) {
		if res, ok := f.lookup(key); ok {
			return res, nil
		}

		res := f.call(ctx, key)

		f.mu.Lock()
		f.memo[key] = res
		f.mu.Unlock()
		return res, nil
	})

	res := v.(fetchResult)
	return res.metadata, res.err
}

func (f *fetcher) call(ctx context.Context, key fetchKey) fetchResult {
	f.logger.Info(fmt.Sprintf("fetching %s", key))

	ctx, vertex := f.telemetry.Record(ctx, "fetch "+key.String())
	ctx = context.WithValue(ctx, vertexKey{}, vertex)

	metadata, err := f.provider.FetchMetadata(ctx, key.name, key.version)
	vertex.Complete(err)

	return fetchResult{metadata: metadata, err: err}
}

// warm fetches keys concurrently so that the traversal finds them memoised.
// Errors are kept in the memo and only surface if the traversal asks for that key.
func (f *fetcher) warm(ctx context.Context, keys []fetchKey) {
	if f.concurrency <= 1 || len(keys) < 2 {
		return
	}

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for _, key := range keys {
		if _, ok := f.lookup(key); ok {
			continue
		}
		g.Go(func() error {
			_, _ = f.fetch(ctx, key)
			return nil
		})
	}
	_ = g.Wait()
}

// markCached flags the vertex of the fetch in progress as served from a cache.
func markCached(ctx context.Context) {
	if vertex, ok := ctx.Value(vertexKey{}).(ports.Vertex); ok {
		vertex.Cached()
	}
}
