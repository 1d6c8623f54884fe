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
	"github.com/modwire/modwire/pkg/serializer"
)

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:                  "status",
		EnableShellCompletion: true,
		Usage:                 "Check whether an entry is registered",
		Description: `Report whether a named entry is present in the ordered list of a
configuration file. The file is not modified.

# Examples

  modwire status --file config/modules.php --entry 'Acme\Blog'`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Configuration file to inspect",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "entry",
				Aliases:  []string{"e"},
				Usage:    "Entry name to check",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "profile",
				Value: profile.ModulesInline,
				Usage: "Pattern profile for the file kind",
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

			resp, err := b.Status(opCtx, target, cmd.String("entry"))
			if err != nil {
				return fmt.Errorf("failed to check %q: %w", cmd.String("entry"), err)
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
