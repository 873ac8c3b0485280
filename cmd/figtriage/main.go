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

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/walteh/figtriage/cmd/figtriage/commands"
	"github.com/walteh/figtriage/cmd/figtriage/opts"
)

func main() {
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "figtriage",
		Short: "Route biomedical papers by what their figures describe",
		Long: `figtriage decides whether a paper should be routed for curation.
A paper is routed when it mentions a topic term anywhere, and its figure
text mentions both a developmental age and a secondary method term.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			return initRootOpts(cmd.Context(), rootOpts)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewRouteCmd(rootOpts),
		commands.NewExplainCmd(rootOpts),
		commands.NewAgesCmd(rootOpts),
		commands.NewFigtextCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println("Command failed")
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
