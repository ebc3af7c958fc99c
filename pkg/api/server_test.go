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

package api

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `configuration_name: devnet_fullnode
configuration_name_pretty: Devnet Full Node
node_address:
  url: http://baseline.example.com
chain_id: 4
role_type: full_node
evaluators:
  - build_version
  - api_latency
runner_args:
  metrics_fetch_delay_secs: 1
`

func TestConstants(t *testing.T) {
	assert.Equal(t, "nodecheckd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestNewHandlerFromConfigs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	h, err := NewHandlerFromConfigs(context.Background(), ServeOptions{
		ConfigPaths:         []string{path},
		MaxConcurrentChecks: 2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, h.maxConcurrent)

	cfgs := h.Configurations()
	require.Len(t, cfgs, 1)
	assert.Equal(t, "devnet_fullnode", cfgs[0].Name)
	assert.Equal(t, "Devnet Full Node", cfgs[0].PrettyName)
	assert.EqualValues(t, 4, cfgs[0].ChainID)
	assert.Equal(t, []string{"build_version", "api_latency"}, cfgs[0].Evaluators)
	assert.Equal(t, "1s", cfgs[0].MetricsFetchDelay)

	routes := Routes(h)
	assert.Contains(t, routes, RouteCheck)
	assert.Contains(t, routes, RouteConfigurations)
}

func TestNewHandlerFromConfigsErrors(t *testing.T) {
	_, err := NewHandlerFromConfigs(context.Background(), ServeOptions{})
	assert.Error(t, err)

	_, err = NewHandlerFromConfigs(context.Background(), ServeOptions{
		ConfigPaths: []string{filepath.Join(t.TempDir(), "missing.yaml")},
	})
	assert.Error(t, err)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv(EnvConfigs, "a.yaml, cm://ns/b ,,")
	t.Setenv(EnvAddress, "127.0.0.1")
	t.Setenv(EnvCheckTimeout, "45s")
	t.Setenv(EnvMaxConcurrentChecks, "4")
	t.Setenv(EnvKubernetes, "true")
	t.Setenv(EnvKubeconfig, "/tmp/kc")

	opts, err := OptionsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "cm://ns/b"}, opts.ConfigPaths)
	assert.Equal(t, "127.0.0.1", opts.Address)
	assert.Equal(t, 45*time.Second, opts.CheckTimeout)
	assert.Equal(t, int64(4), opts.MaxConcurrentChecks)
	assert.True(t, opts.Kubernetes)
	assert.Equal(t, "/tmp/kc", opts.Kubeconfig)
}

func TestOptionsFromEnvErrors(t *testing.T) {
	tests := map[string]string{
		EnvCheckTimeout:        "soon",
		EnvMaxConcurrentChecks: "0",
		EnvKubernetes:          "maybe",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := OptionsFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
