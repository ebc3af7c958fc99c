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

// Package node describes how to reach a node and who it claims to be.
//
// An Address combines a base URL with the API and metrics ports. Information
// is the identity fingerprint of a baseline node: its address, chain ID and
// role. Client talks to the node's REST API to read the ledger summary used
// by the identity, TPS and latency evaluators.
//
//	addr, err := node.NewAddress("http://fullnode.devnet.example.com", 8080, 9101)
//	info, err := node.NewClient().LedgerInfo(ctx, addr)
package node
