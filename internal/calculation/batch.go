package calculation

import (
	"context"
	"runtime"
	"sync"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// ProjectionRequest is one run in a batch
type ProjectionRequest struct {
	Name         string
	Input        domain.ReverseMortgageInput
	HorizonYears int
}

// BatchResult pairs a request with its outcome. Exactly one of Result and Err is set.
type BatchResult struct {
	Request ProjectionRequest
	Result  *domain.ProjectionResult
	Err     error
}

// ProjectBatch runs independent projections concurrently. Results are returned
// in request order and one failed run does not affect the others.
func (pe *ProjectionEngine) ProjectBatch(ctx context.Context, requests []ProjectionRequest) []BatchResult {
	results := make([]BatchResult, len(requests))
	workers := runtime.NumCPU()
	if workers > len(requests) {
		workers = len(requests)
	}

	sem := make(chan struct{}, max(workers, 1))
	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req ProjectionRequest) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i].Request = req
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			res, err := pe.ProjectNamed(ctx, req.Name, req.Input, req.HorizonYears)
			if err != nil {
				pe.Logger.Warnf("projection %q failed: %v", req.Name, err)
				results[i].Err = err
				return
			}
			results[i].Result = res
		}(i, req)
	}
	wg.Wait()
	return results
}
