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

	"github.com/modwire/modwire/pkg/apply"
	"github.com/modwire/modwire/pkg/defaults"
	"github.com/modwire/modwire/pkg/serializer"
)

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "apply",
		EnableShellCompletion: true,
		Usage:                 "Apply a registration manifest across targets",
		Description: `Apply every entry in a registration manifest to its targets. Targets are
processed concurrently, entries per target in manifest order. The report
lists per-entry outcomes (registered, removed, skipped, blocked, error)
and the notifications raised while applying.

The manifest path may be a local file or an HTTP/HTTPS URL.

# Manifest

  targets:
    - name: web
      file: config/modules.php
      profile: modules-inline
  entries:
    - name: Acme\Blog
      category: module
    - name: Acme\Legacy
      remove: true

# Examples

Apply a local manifest:
  modwire apply --manifest registrations.yaml

Apply a remote manifest and save the report:
  modwire apply -m https://config.example.com/registrations.yaml \
    --output report.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "manifest",
				Aliases:  []string{"m"},
				Usage:    "Path or URL of the registration manifest",
				Required: true,
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

			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			manifestPath := cmd.String("manifest")
			m, err := serializer.FromFile[apply.Manifest](manifestPath)
			if err != nil {
				return fmt.Errorf("failed to load manifest from %q: %w", manifestPath, err)
			}

			applier := apply.NewApplier(apply.WithRegistry(registry))

			opCtx, cancel := context.WithTimeout(ctx, defaults.ApplyTimeout)
			defer cancel()

			report, runErr := applier.Run(opCtx, m)

			if report != nil {
				ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
				defer func() {
					if err := ser.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}()
				if err := ser.Serialize(ctx, report); err != nil {
					return err
				}
			}

			return runErr
		},
	}
}
