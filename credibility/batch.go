package credibility

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one AssessBatch slot: the item's result or its error.
type BatchItem struct {
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// AssessBatch assesses inputs with bounded parallelism, preserving input
// order. One failing item never fails the batch.
func (e *Engine) AssessBatch(ctx context.Context, inputs []*Input) []BatchItem {
	items := make([]BatchItem, len(inputs))
	var g errgroup.Group
	g.SetLimit(e.cfg.BatchParallelism)
	for i, in := range inputs {
		g.Go(func() error {
			res, err := e.Assess(ctx, in)
			if err != nil {
				items[i].Error = err.Error()
			} else {
				items[i].Result = res
			}
			return nil
		})
	}
	_ = g.Wait() // per-item errors are captured in items
	return items
}
