package scan

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aceteam-ai/cronwatch/internal/record"
)

// DefaultConcurrency bounds parallel ssh listings.
const DefaultConcurrency = 4

// Sources returns the local source followed by one ssh source per host, in order.
func Sources(local record.Store, hosts []string, remoteDir string, runner Runner) []Source {
	sources := make([]Source, 0, len(hosts)+1)
	sources = append(sources, &LocalSource{Store: local})
	for _, h := range hosts {
		sources = append(sources, &SSHSource{HostName: h, Dir: remoteDir, Runner: runner})
	}
	return sources
}

// Collect queries every source concurrently and returns one group per source in
// the order given. The first error cancels the remaining listings and is returned.
func Collect(ctx context.Context, log zerolog.Logger, sources []Source, limit int) ([]HostGroup, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	groups := make([]HostGroup, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, src := range sources {
		g.Go(func() error {
			jobs, err := src.FailedJobs(ctx)
			if err != nil {
				log.Debug().Err(err).Str("host", src.Host()).Msg("listing failed")
				return err
			}
			log.Debug().Str("host", src.Host()).Int("failing", len(jobs)).Msg("listed host")
			groups[i] = HostGroup{Host: src.Host(), Jobs: jobs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}

// Total counts failing jobs across all groups.
func Total(groups []HostGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Jobs)
	}
	return n
}

// progressSource reports each finished listing to a callback.
type progressSource struct {
	Source
	done func(host string, err error)
}

func (p progressSource) FailedJobs(ctx context.Context) ([]string, error) {
	jobs, err := p.Source.FailedJobs(ctx)
	p.done(p.Host(), err)
	return jobs, err
}

// WithProgress wraps sources so done is called as each one finishes. done may
// be called from several goroutines at once.
func WithProgress(sources []Source, done func(host string, err error)) []Source {
	wrapped := make([]Source, len(sources))
	for i, src := range sources {
		wrapped[i] = progressSource{Source: src, done: done}
	}
	return wrapped
}
