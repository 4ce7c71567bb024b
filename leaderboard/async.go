package leaderboard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Kind says which request produced a Result.
type Kind int

const (
	KindNewClient Kind = iota
	KindUpdateStats
	KindReadStats
)

// Result is the outcome of one asynchronous request.
type Result struct {
	Kind   Kind
	Status Status
	// Stats is set for KindNewClient and KindUpdateStats.
	Stats Stats
	// List is set for KindReadStats.
	List []Stats
	Err  error
}

// Async runs Client requests in the background so callers on a tick loop
// never block. Results are collected with Poll.
type Async struct {
	client  *Client
	results chan Result
	ctx     context.Context
	cancel  context.CancelFunc
	group   errgroup.Group
}

// NewAsync wraps client. Up to buffer results are held until polled; further
// completions wait for room or for Close.
func NewAsync(client *Client, buffer int) *Async {
	ctx, cancel := context.WithCancel(context.Background())
	return &Async{
		client:  client,
		results: make(chan Result, max(1, buffer)),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// NewClient registers name in the background.
func (a *Async) NewClient(name string) {
	a.spawn(func(ctx context.Context) Result {
		s, err := a.client.NewClient(ctx, name)
		return Result{Kind: KindNewClient, Stats: s, Err: err}
	})
}

// UpdateStats publishes s in the background.
func (a *Async) UpdateStats(s Stats) {
	a.spawn(func(ctx context.Context) Result {
		out, err := a.client.UpdateStats(ctx, s)
		return Result{Kind: KindUpdateStats, Stats: out, Err: err}
	})
}

// ReadStats fetches the table in the background.
func (a *Async) ReadStats() {
	a.spawn(func(ctx context.Context) Result {
		list, err := a.client.ReadStats(ctx)
		return Result{Kind: KindReadStats, List: list, Err: err}
	})
}

func (a *Async) spawn(fn func(context.Context) Result) {
	if a.ctx.Err() != nil {
		return
	}
	a.group.Go(func() error {
		r := fn(a.ctx)
		if a.ctx.Err() != nil {
			return nil
		}
		r.Status = StatusOf(r.Err)
		select {
		case a.results <- r:
		case <-a.ctx.Done():
		}
		return nil
	})
}

// Poll returns every result that has arrived, without blocking.
func (a *Async) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-a.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Close cancels in-flight requests and waits for their goroutines.
func (a *Async) Close() {
	a.cancel()
	_ = a.group.Wait()
}
