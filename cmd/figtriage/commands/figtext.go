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
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/cmd/figtriage/opts"
	"github.com/walteh/figtriage/pkg/figtext"
)

// NewFigtextCmd creates the figtext command
func NewFigtextCmd(o *opts.RootOpts) *cobra.Command {
	var (
		strategy string
		numWords int
	)

	cmd := &cobra.Command{
		Use:   "figtext [file]",
		Short: "Print the figure text spans of a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			s := o.Config.FigureText.Strategy
			if strategy != "" {
				s = figtext.Strategy(strategy)
			}
			n := o.Config.FigureText.NumWords
			if cmd.Flags().Changed("num-words") {
				n = numWords
			}

			ex, err := figtext.New(s, n)
			if err != nil {
				return errors.Errorf("creating extractor: %w", err)
			}

			for i, span := range ex.Extract(text) {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintln(cmd.OutOrStdout(), span)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "legends, legCloseWords or legParagraphs (default from config)")
	cmd.Flags().IntVar(&numWords, "num-words", 0, "words kept around a figure reference (default from config)")

	return cmd
}
