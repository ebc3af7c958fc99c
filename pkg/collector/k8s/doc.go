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

// Package k8s enriches node system information with data from the
// Kubernetes Node object the node runs on.
//
// The "k8s" subtype holds:
//   - node_name: the Kubernetes node name
//   - kubelet_version, container_runtime, os_image, kernel_version,
//     architecture: from the node's status.nodeInfo
//   - role: from node-role.kubernetes.io/<role> or nodeRole labels
//   - provider: managed service detected from spec.providerID (eks, gke,
//     aks, oke)
//
// The node name comes from NodeEnricher.NodeName or, when empty, from the
// NODE_NAME, KUBERNETES_NODE_NAME or HOSTNAME environment variables.
//
//	e := &k8s.NodeEnricher{ClientSet: clientset, NodeName: "node-a"}
//	subtypes, err := e.Enrich(ctx)
package k8s
