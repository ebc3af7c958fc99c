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

// Package client builds Kubernetes clients for the node checker.
//
// GetKubeClient returns a process-wide client discovered from $KUBECONFIG,
// ~/.kube/config or the in-cluster service account. BuildKubeClient
// bypasses the cache for an explicit kubeconfig path:
//
//	cs, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
//	if err != nil {
//	    return err
//	}
//
// Clients identify themselves with a "nodecheck" user agent and carry
// DefaultQPS and DefaultBurst unless the kubeconfig sets its own limits.
package client
