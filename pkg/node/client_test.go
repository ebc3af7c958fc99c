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

package node

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/NVIDIA/node-checker/pkg/errors"
)

// addressFor points an Address at a test server, using its port as both the
// API and the metrics port.
func addressFor(t *testing.T, srv *httptest.Server) Address {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return Address{URL: u.Scheme + "://" + u.Hostname(), APIPort: uint16(port), MetricsPort: uint16(port)}
}

func TestLedgerInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1", r.URL.Path)
		_, _ = w.Write([]byte(`{"chain_id":4,"epoch":"12","ledger_version":"1500","oldest_ledger_version":"0",` +
			`"ledger_timestamp":"1700000000000000","node_role":"full_node","block_height":"99","git_hash":"abc"}`))
	}))
	defer srv.Close()

	li, err := NewClient().LedgerInfo(context.Background(), addressFor(t, srv))
	require.NoError(t, err)
	assert.EqualValues(t, 4, li.ChainID)
	assert.EqualValues(t, 1500, li.LedgerVersion)
	assert.EqualValues(t, 12, li.Epoch)
	assert.Equal(t, RoleFullNode, li.NodeRole)
	assert.Equal(t, "abc", li.GitHash)
}

func TestLedgerInfoErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("{")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient().LedgerInfo(context.Background(), addressFor(t, srv))
			require.Error(t, err)
			assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeUpstream))
		})
	}
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chain_id":1,"ledger_version":"1","node_role":"validator"}`))
	}))
	defer srv.Close()

	d, err := NewClient().Probe(context.Background(), addressFor(t, srv))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.Nanoseconds(), int64(0))

	srv.Close()
	_, err = NewClient().Probe(context.Background(), addressFor(t, srv))
	assert.Error(t, err)
}
