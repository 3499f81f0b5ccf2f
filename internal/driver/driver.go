// Package driver runs batches of derivation requests: eligibility checks
// fan out across workers, synthesis stays serialized because the arenas
// have a single writer. Results come back in request order regardless of
// worker scheduling.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tern/internal/ast"
	"tern/internal/derive"
	"tern/internal/diag"
	"tern/internal/iface"
)

// Request asks for one derivation: the interface k for the declared type,
// synthesized into the given target.
type Request struct {
	Decl   ast.DeclID
	Target ast.TargetID
	Iface  iface.Known
}

// Result is the outcome of one request. Members is nil unless synthesis
// succeeded; Bag holds the request's diagnostics.
type Result struct {
	Request Request
	Members []ast.MemberID
	Bag     *diag.Bag
	Err     error
}

// Options tune a DeriveAll run.
type Options struct {
	// Jobs caps the eligibility workers; <=0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps each request's bag; <=0 picks a default.
	MaxDiagnostics int
	// Cache, when set, serves eligibility answers by declaration shape.
	Cache *derive.DiskCache
}

// DeriveAll processes every request. The oracle phase is read-only and
// runs in parallel; requests the oracle declines are marked ErrIneligible
// without ever reaching the synthesis phase. Synthesis then runs
// sequentially in request order, which keeps arena handle assignment and
// target append order reproducible for a fixed request list.
func DeriveAll(ctx context.Context, sess *derive.Session, requests []Request, opts Options) ([]Result, error) {
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = 100
	}
	results := make([]Result, len(requests))
	for i := range requests {
		results[i] = Result{
			Request: requests[i],
			Bag:     diag.NewBag(maxDiags),
		}
	}
	if len(requests) == 0 {
		return results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// The eligibility workers share the session read-only, but field
	// signature resolution writes on first access. Resolve everything the
	// oracle can reach before fanning out.
	resolved := make(map[ast.DeclID]struct{}, len(requests))
	for _, req := range requests {
		if _, done := resolved[req.Decl]; done {
			continue
		}
		resolved[req.Decl] = struct{}{}
		sess.ResolveSignatures(req.Decl)
	}

	offered := make([]bool, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(requests)))
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if opts.Cache != nil {
				ok, err := derive.CachedOffers(sess, opts.Cache, req.Target, req.Decl, req.Iface)
				if err == nil {
					offered[i] = ok
					return nil
				}
				// A broken cache entry falls back to the oracle.
			}
			offered[i] = derive.OffersDerivation(sess, req.Target, req.Decl, req.Iface)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	for i, req := range requests {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if !offered[i] {
			results[i].Err = derive.ErrIneligible
			continue
		}
		members, err := derive.Synthesize(sess, results[i].Bag, req.Target, req.Decl, req.Iface)
		results[i].Members = members
		results[i].Err = err
	}
	return results, nil
}
