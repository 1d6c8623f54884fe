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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/modwire/modwire/pkg/registrar"
	"github.com/modwire/modwire/pkg/serializer"
)

// profileListing is the serialized form of one profile in the listing,
// with human-readable category names for table output.
type profileListing struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Categories  []string `json:"categories" yaml:"categories"`
}

func profilesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "profiles",
		EnableShellCompletion: true,
		Usage:                 "List available pattern profiles",
		Description: `List the pattern profiles available for registration commands: the
builtin profiles plus any loaded with --profiles.

# Examples

  modwire profiles
  modwire profiles --profiles extra-profiles.yaml --format json`,
		Flags: []cli.Flag{
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

			listings := make([]profileListing, 0, len(registry.Names()))
			for _, p := range registry.All() {
				cats := p.Categories()
				display := make([]string, 0, len(cats))
				for _, c := range cats {
					display = append(display, registrar.Category(c).DisplayName())
				}
				listings = append(listings, profileListing{
					Name:        p.Name,
					Description: p.Description,
					Categories:  display,
				})
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			return ser.Serialize(ctx, listings)
		},
	}
}
