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
	"fmt"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
)

// NodeIdentityEvaluator checks that the target reports the same chain ID
// and role as the baseline.
type NodeIdentityEvaluator struct {
	api NodeAPI
	rb  evaluator.ResultBuilder
}

// NewNodeIdentityEvaluator returns a NodeIdentityEvaluator.
func NewNodeIdentityEvaluator(api NodeAPI) *NodeIdentityEvaluator {
	return &NodeIdentityEvaluator{
		api: api,
		rb:  evaluator.NewResultBuilder(NodeIdentityName, "identity"),
	}
}

// Name implements evaluator.Evaluator.
func (e *NodeIdentityEvaluator) Name() string { return NodeIdentityName }

// Evaluate implements evaluator.Evaluator.
func (e *NodeIdentityEvaluator) Evaluate(ctx context.Context, in *evaluator.DirectInput) ([]evaluator.Result, error) {
	li, err := e.api.LedgerInfo(ctx, in.TargetNodeAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to read target identity: %w", err)
	}

	want := in.BaselineNodeInformation
	results := make([]evaluator.Result, 0, 2)

	if li.ChainID == want.ChainID {
		results = append(results, e.rb.Resultf("Chain ID reported by node matches", evaluator.MaxScore,
			"The node reports chain ID %d, the same as the baseline.", li.ChainID))
	} else {
		results = append(results, e.rb.Resultf("Chain ID reported by node does not match", 0,
			"The node reports chain ID %d but the baseline is on chain ID %d. "+
				"Make sure the node is connected to the right network.", li.ChainID, want.ChainID))
	}

	if li.NodeRole == want.RoleType {
		results = append(results, e.rb.Resultf("Role type reported by node matches", evaluator.MaxScore,
			"The node reports role type %q, the same as the baseline.", li.NodeRole))
	} else {
		results = append(results, e.rb.Resultf("Role type reported by node does not match", 0,
			"The node reports role type %q but the baseline is a %q. "+
				"Pick a baseline configuration for the right role.", li.NodeRole, want.RoleType))
	}

	return results, nil
}
