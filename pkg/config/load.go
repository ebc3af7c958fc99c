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

package config

import (
	"fmt"
	"log/slog"

	"github.com/NVIDIA/node-checker/pkg/serializer"
)

// Load reads and validates one configuration from a file path, an
// http(s) URL or a ConfigMap URI (cm://namespace/name).
func Load(path, kubeconfig string) (*BaselineConfiguration, error) {
	c, err := serializer.FromFileWithKubeconfig[BaselineConfiguration](path, kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid baseline configuration %s: %w", path, err)
	}
	slog.Debug("loaded baseline configuration", "path", path, "name", c.ConfigurationName)
	return c, nil
}

// LoadAll loads every path in order. Configuration names must be unique.
func LoadAll(paths []string, kubeconfig string) ([]*BaselineConfiguration, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no baseline configurations given")
	}

	configs := make([]*BaselineConfiguration, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		c, err := Load(p, kubeconfig)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[c.ConfigurationName]; ok {
			return nil, fmt.Errorf("configuration name %q used by both %s and %s", c.ConfigurationName, prev, p)
		}
		seen[c.ConfigurationName] = p
		configs = append(configs, c)
	}
	return configs, nil
}
