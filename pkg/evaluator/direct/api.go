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

package direct

import (
	"context"
	"time"

	"github.com/NVIDIA/node-checker/pkg/node"
)

// NodeAPI is the part of node.Client the direct evaluators use.
type NodeAPI interface {
	LedgerInfo(ctx context.Context, addr node.Address) (*node.LedgerInfo, error)
	Probe(ctx context.Context, addr node.Address) (time.Duration, error)
}

// Evaluator names.
const (
	NodeIdentityName = "node_identity"
	LatencyName      = "api_latency"
	TpsName          = "tps"
)

const categoryAPI = "api"
