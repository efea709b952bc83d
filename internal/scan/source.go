// Package scan enumerates failing jobs on the local machine and on remote
// hosts reached over ssh.
package scan

import (
	"context"
	"fmt"
	"sort"

	"github.com/aceteam-ai/cronwatch/internal/record"
)

// LocalHost labels the group read from the local errors directory.
const LocalHost = "local"

// HostGroup is the set of failing job identifiers seen on one host.
type HostGroup struct {
	Host string
	Jobs []string
}

// Source lists failing jobs for a single host.
type Source interface {
	Host() string
	FailedJobs(ctx context.Context) ([]string, error)
}

// LocalSource reads the local record store.
type LocalSource struct {
	Store record.Store
}

func (s *LocalSource) Host() string { return LocalHost }

func (s *LocalSource) FailedJobs(ctx context.Context) ([]string, error) {
	ids, err := s.Store.List()
	if err != nil {
		return nil, fmt.Errorf("list local records: %w", err)
	}
	return normalize(ids), nil
}

// normalize sorts ids and drops duplicates.
func normalize(ids []string) []string {
	out := make([]string, 0, len(ids))
	out = append(out, ids...)
	sort.Strings(out)

	n := 0
	for i, id := range out {
		if i > 0 && id == out[n-1] {
			continue
		}
		out[n] = id
		n++
	}
	return out[:n]
}
