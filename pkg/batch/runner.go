// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/figtriage/pkg/log"
	"github.com/walteh/figtriage/pkg/router"
	"github.com/walteh/figtriage/pkg/stats"
	"github.com/walteh/figtriage/pkg/textmap"
)

// 📬 Routing pairs a document with its result
type Routing struct {
	Document Document
	Result   *router.Result
}

// ⚙️ Option configures a Runner
type Option func(*Runner)

// WithWorkers sets the number of concurrent routers. Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithStats feeds every result into c
func WithStats(c *stats.Collector) Option {
	return func(r *Runner) { r.stats = c }
}

// WithConsole prints one line per document to l
func WithConsole(l *log.Logger) Option {
	return func(r *Runner) { r.console = l }
}

// 🏃 Runner routes documents in parallel.
// Each worker owns a router, so age matches never cross goroutines.
type Runner struct {
	opts    router.Options
	workers int
	stats   *stats.Collector
	console *log.Logger

	ageGroups []textmap.Group
}

// 🏗️ NewRunner creates a runner, checking opts by building a router once
func NewRunner(opts router.Options, options ...Option) (*Runner, error) {
	if _, err := router.New(opts); err != nil {
		return nil, errors.Errorf("building router: %w", err)
	}

	r := &Runner{opts: opts}
	for _, o := range options {
		o(r)
	}
	if r.workers < 1 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r, nil
}

// Workers is the number of routers Run starts
func (r *Runner) Workers() int {
	return r.workers
}

// 🏃 Run routes docs and returns routings in the order of docs.
// The order does not depend on the number of workers.
func (r *Runner) Run(ctx context.Context, docs []Document) ([]Routing, error) {
	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run", runID).Logger()
	ctx = logger.WithContext(ctx)

	workers := min(r.workers, max(len(docs), 1))
	if r.console != nil {
		r.console.StartRun(ctx, log.Run{ID: runID, Documents: len(docs), Workers: workers})
		defer r.console.EndRun(ctx)
	}

	routers := make([]*router.Router, workers)
	for i := range routers {
		rt, err := router.New(r.opts)
		if err != nil {
			return nil, errors.Errorf("building router: %w", err)
		}
		routers[i] = rt
	}

	out := make([]Routing, len(docs))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range docs {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for _, rt := range routers {
		rt := rt
		g.Go(func() error {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				doc := docs[i]
				res := rt.Route(ctx, doc.Text, doc.Journal)
				out[i] = Routing{Document: doc, Result: res}
				r.observe(ctx, doc, res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Errorf("routing documents: %w", err)
	}

	groups := make([][]textmap.Group, 0, len(routers))
	for _, rt := range routers {
		groups = append(groups, rt.AgeGroups())
	}
	r.ageGroups = textmap.MergeGroups(groups...)

	logger.Info().Int("documents", len(docs)).Int("workers", workers).Msg("batch routed")

	return out, nil
}

func (r *Runner) observe(ctx context.Context, doc Document, res *router.Result) {
	if r.stats != nil {
		r.stats.Observe(res)
	}
	if r.console != nil {
		c := res.Counts()
		r.console.LogDocument(ctx, log.Document{
			ID:        doc.ID,
			Journal:   doc.Journal,
			Routed:    res.Routed(),
			Skipped:   !res.GoodJournal,
			ShortText: res.ShortText,
			Cat1:      c.Cat1Matches,
			Age:       c.AgeMatches,
			Cat2:      c.Cat2Matches,
			Excludes:  c.Cat1Excludes + c.AgeExcludes + c.Cat2Excludes,
		})
	}
}

// 📝 AgeReport renders the age mappings of the last Run across all workers
func (r *Runner) AgeReport(title string) string {
	return textmap.FormatReport(title, r.ageGroups)
}
