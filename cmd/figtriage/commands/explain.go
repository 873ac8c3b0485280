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
	"github.com/walteh/figtriage/pkg/router"
)

// NewExplainCmd creates the explain command
func NewExplainCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Print the vocabularies and patterns the router uses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			routerOpts, err := o.RouterOptions()
			if err != nil {
				return errors.Errorf("building router options: %w", err)
			}

			r, err := router.New(routerOpts)
			if err != nil {
				return errors.Errorf("creating router: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), r.Explanation())
			return nil
		},
	}

	return cmd
}
