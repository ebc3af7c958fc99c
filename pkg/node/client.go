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
	"encoding/json"
	"fmt"
	"time"

	"k8s.io/utils/clock"

	cnserrors "github.com/NVIDIA/node-checker/pkg/errors"
	"github.com/NVIDIA/node-checker/pkg/serializer"
)

// LedgerInfo is the summary served by GET {api}/v1.
type LedgerInfo struct {
	ChainID         uint8  `json:"chain_id"`
	Epoch           uint64 `json:"epoch,string"`
	LedgerVersion   uint64 `json:"ledger_version,string"`
	LedgerTimestamp uint64 `json:"ledger_timestamp,string"`
	BlockHeight     uint64 `json:"block_height,string"`
	NodeRole        string `json:"node_role"`
	GitHash         string `json:"git_hash,omitempty"`
}

// Client reads ledger information from a node's REST API.
type Client struct {
	reader *serializer.HttpReader
	clock  clock.PassiveClock
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithReader sets the HTTP reader used for requests.
func WithReader(r *serializer.HttpReader) ClientOption {
	return func(c *Client) {
		c.reader = r
	}
}

// WithPassiveClock sets the clock used to time probes.
func WithPassiveClock(clk clock.PassiveClock) ClientOption {
	return func(c *Client) {
		c.clock = clk
	}
}

// NewClient returns a Client with a default HTTP reader and the real clock.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.reader == nil {
		c.reader = serializer.NewHttpReader()
	}
	if c.clock == nil {
		c.clock = clock.RealClock{}
	}
	return c
}

// LedgerInfo fetches the ledger summary of the node at addr.
func (c *Client) LedgerInfo(ctx context.Context, addr Address) (*LedgerInfo, error) {
	u := addr.APIURL("/v1")
	data, err := c.reader.ReadWithContext(ctx, u)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUpstream,
			"failed to fetch ledger info", err, map[string]any{"url": u})
	}

	var li LedgerInfo
	if err := json.Unmarshal(data, &li); err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUpstream,
			"failed to decode ledger info", err, map[string]any{"url": u})
	}
	return &li, nil
}

// Probe performs one ledger info request and returns how long it took.
func (c *Client) Probe(ctx context.Context, addr Address) (time.Duration, error) {
	start := c.clock.Now()
	if _, err := c.LedgerInfo(ctx, addr); err != nil {
		return 0, fmt.Errorf("probe %s: %w", addr.URL, err)
	}
	return c.clock.Since(start), nil
}
