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
	"io"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/cmd/figtriage/opts"
	"github.com/walteh/figtriage/pkg/age"
)

// NewAgesCmd creates the ages command
func NewAgesCmd(o *opts.RootOpts) *cobra.Command {
	var showText bool

	cmd := &cobra.Command{
		Use:   "ages [file]",
		Short: "Report the age mappings found in a file or stdin",
		Long: `Ages runs the age rules over the whole text, without figure text
extraction or exclusions, and prints the grouped mapping report.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			tr, err := age.NewTransformer(o.Config.Age.Context, o.Config.Age.FixContext)
			if err != nil {
				return errors.Errorf("creating age transformer: %w", err)
			}

			out, _ := tr.Transform(text)
			if showText {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			fmt.Fprint(cmd.OutOrStdout(), tr.Report("Age mapping report"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showText, "text", false, "also print the transformed text")

	return cmd
}

// readInput reads the file named in args, or stdin when there is none
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", errors.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
