// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/modwire/modwire/pkg/defaults"
	"github.com/modwire/modwire/pkg/profile"
	"github.com/modwire/modwire/pkg/registrar"
	"github.com/modwire/modwire/pkg/serializer"
)

func registerCmd() *cli.Command {
	return &cli.Command{
		Name:                  "register",
		EnableShellCompletion: true,
		Usage:                 "Register an entry in a configuration file",
		Description: `Register a named entry in the ordered list of a configuration file.
The profile selects the pattern table for the file kind. The category
decides where the entry is inserted:

  component        - after the longest-spanning present dependency
  module           - before the first application-group entry
  dependency       - appended via the generic insertion point
  pre-application  - appended via the generic insertion point

Registration is idempotent: registering a present entry changes nothing.
When a declared dependency is missing the file is left untouched and the
missing dependency is reported.

# Examples

Register a module in an inline list:
  modwire register --file config/modules.php --entry 'Acme\Blog'

Register a component behind its dependencies:
  modwire register --file config/application.config.php \
    --profile application-config \
    --entry 'Acme\Search' --category component \
    --dependency 'Acme\Core' --dependency 'Acme\Db'`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Configuration file to modify",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "entry",
				Aliases:  []string{"e"},
				Usage:    "Entry name to register",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "category",
				Value: string(registrar.CategoryModule),
				Usage: fmt.Sprintf("Entry category (supported values: %v)",
					registrar.SupportedCategories()),
			},
			&cli.StringFlag{
				Name:  "profile",
				Value: profile.ModulesInline,
				Usage: "Pattern profile for the file kind",
			},
			&cli.StringSliceFlag{
				Name:  "dependency",
				Usage: "Dependency entry the registration anchors on (repeatable, overrides profile defaults)",
			},
			&cli.StringSliceFlag{
				Name:  "application",
				Usage: "Application-group entry insertions stay ahead of (repeatable, overrides profile defaults)",
			},
			profilesFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			b, target, err := singleTargetBuilder(cmd)
			if err != nil {
				return err
			}

			opCtx, cancel := context.WithTimeout(ctx, defaults.RegistrationTimeout)
			defer cancel()

			resp, err := b.Register(opCtx, target, cmd.String("entry"), cmd.String("category"))
			if err != nil {
				return fmt.Errorf("failed to register %q: %w", cmd.String("entry"), err)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			return ser.Serialize(ctx, resp)
		},
	}
}
