package quotes

import (
	"context"
	"hash/fnv"
	"sort"
	"time"
)

// Selector decides which quote to feature for a given day. Selection policy
// is an application concern; the library only persists the outcome.
type Selector interface {
	Select(ctx context.Context, quotes []Quote, day time.Time) (*Quote, error)
}

// Provider fetches quotes from a remote source. Concrete network providers
// live outside this module and feed the library through Add/ImportPack.
type Provider interface {
	Fetch(ctx context.Context) ([]Quote, error)
}

// dateSelector picks a quote deterministically from the calendar date, so
// every surface of the app agrees on the day's quote without coordination.
type dateSelector struct{}

// DateSelector returns the default day-stable selection policy.
func DateSelector() Selector {
	return dateSelector{}
}

func (dateSelector) Select(_ context.Context, quotes []Quote, day time.Time) (*Quote, error) {
	if len(quotes) == 0 {
		return nil, nil
	}

	sorted := make([]Quote, len(quotes))
	copy(sorted, quotes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := fnv.New32a()
	_, _ = h.Write([]byte(day.Format("2006-01-02")))
	pick := sorted[int(h.Sum32())%len(sorted)]
	return &pick, nil
}
