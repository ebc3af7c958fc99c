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

// Package config loads baseline configurations and builds runners from them.
//
// A baseline configuration names the baseline node, the evaluators targets
// are checked with and their settings. Settings left out of the document
// take their defaults:
//
//	configuration_name: devnet_fullnode
//	configuration_name_pretty: Devnet Full Node
//	node_address:
//	  url: http://baseline.example.com
//	  api_port: 8080
//	  metrics_port: 9101
//	evaluators:
//	  - state_sync_version
//	  - build_version
//	  - tps
//	evaluator_args:
//	  tps:
//	    minimum_tps: 50
//	runner_args:
//	  metrics_fetch_delay_secs: 5
//
// When chain_id or role_type are omitted they are read from the baseline's
// API while the runner is built. An optional kubernetes section names the
// Kubernetes node the baseline runs on, adding its Node information to the
// baseline's system information.
//
// Configurations are read with Load from a file, an http(s) URL or a
// ConfigMap (cm://namespace/name).
package config
