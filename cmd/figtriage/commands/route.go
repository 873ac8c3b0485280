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

package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/cmd/figtriage/opts"
	"github.com/walteh/figtriage/pkg/batch"
	"github.com/walteh/figtriage/pkg/stats"
)

type routeFlags struct {
	journal   string
	workers   int
	routings  string
	matches   string
	ageReport string
}

// NewRouteCmd creates the route command
func NewRouteCmd(o *opts.RootOpts) *cobra.Command {
	flags := &routeFlags{}

	cmd := &cobra.Command{
		Use:   "route [glob...]",
		Short: "Route documents and write the reports",
		Long: `Route loads every document matched by the globs, routes them in parallel
and prints one line per document. Globs support ** and are matched against
files only. A .json file holds an array of {id, journal, text} documents,
any other file is one document.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "route").Logger().WithContext(cmd.Context())

			routerOpts, err := o.RouterOptions()
			if err != nil {
				return errors.Errorf("building router options: %w", err)
			}

			docs, err := batch.LoadDocuments(ctx, args, flags.journal)
			if err != nil {
				return errors.Errorf("loading documents: %w", err)
			}

			collector := stats.New()
			runner, err := batch.NewRunner(routerOpts,
				batch.WithWorkers(flags.workers),
				batch.WithStats(collector),
				batch.WithConsole(o.Console),
			)
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			o.Console.Header("routing documents")
			routings, err := runner.Run(ctx, docs)
			if err != nil {
				return errors.Errorf("routing: %w", err)
			}
			o.Console.LogNewline()

			if err := writeFile(flags.routings, func(f *os.File) error { return batch.WriteRoutings(f, routings) }); err != nil {
				return err
			}
			if err := writeFile(flags.matches, func(f *os.File) error { return batch.WriteMatches(f, routings) }); err != nil {
				return err
			}
			if err := writeFile(flags.ageReport, func(f *os.File) error {
				_, err := f.WriteString(runner.AgeReport("Age mapping report"))
				return err
			}); err != nil {
				return err
			}

			snap, err := collector.Snapshot()
			if err != nil {
				return errors.Errorf("reading counters: %w", err)
			}
			zerolog.Ctx(ctx).Debug().Str("stats", snap.String()).Msg("route complete")

			return printSummary(snap)
		},
	}

	cmd.Flags().StringVar(&flags.journal, "journal", "", "journal for documents that do not name one")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "number of parallel routers (default GOMAXPROCS)")
	cmd.Flags().StringVar(&flags.routings, "routings", "", "write the '|' delimited routings report to this file")
	cmd.Flags().StringVar(&flags.matches, "matches", "", "write the tab delimited matches report to this file")
	cmd.Flags().StringVar(&flags.ageReport, "age-report", "", "write the grouped age mapping report to this file")

	return cmd
}

// writeFile creates path and hands it to write, doing nothing for an empty path
func writeFile(path string, write func(f *os.File) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing %s: %w", path, err)
	}
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Printf("wrote %s\n", path)
	return nil
}
