package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

// SearchBatch runs independent searches on up to Threads goroutines.
// Results keep the order of params. The first error cancels the rest.
func (e *Engine) SearchBatch(ctx context.Context, params []common.SearchParams) ([]common.SearchResult, error) {
	var results = make([]common.SearchResult, len(params))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(common.Max(1, e.Threads))
	for i := range params {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var result, err = e.Search(params[i])
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
