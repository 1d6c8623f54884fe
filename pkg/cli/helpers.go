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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/modwire/modwire/pkg/apply"
	"github.com/modwire/modwire/pkg/profile"
	"github.com/modwire/modwire/pkg/registration"
	"github.com/modwire/modwire/pkg/serializer"
)

// parseOutputFormat validates the --format flag value.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format %q, supported values: %v",
			cmd.String("format"), serializer.SupportedFormats())
	}
	return f, nil
}

// loadRegistry returns the builtin profile registry, extended with the
// profile file named by --profiles when set.
func loadRegistry(cmd *cli.Command) (*profile.Registry, error) {
	registry := profile.Builtin()
	if path := cmd.String("profiles"); path != "" {
		if err := registry.LoadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load profiles from %q: %w", path, err)
		}
	}
	return registry, nil
}

// singleTargetBuilder assembles a registration builder for the one file
// named by the command's --file flag. The file path doubles as the target
// name so command output identifies the file it touched.
func singleTargetBuilder(cmd *cli.Command) (*registration.Builder, string, error) {
	file := cmd.String("file")
	if file == "" {
		return nil, "", fmt.Errorf("--file is required")
	}

	registry, err := loadRegistry(cmd)
	if err != nil {
		return nil, "", err
	}

	b, err := registration.NewBuilder([]apply.Target{{
		Name:             file,
		File:             file,
		Profile:          cmd.String("profile"),
		Dependencies:     cmd.StringSlice("dependency"),
		ApplicationGroup: cmd.StringSlice("application"),
	}}, registry)
	if err != nil {
		return nil, "", err
	}
	return b, file, nil
}
