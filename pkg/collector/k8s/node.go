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

package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/measurement"
)

// EnricherName identifies the Kubernetes enricher in logs and metrics.
const EnricherName = "k8s"

// NodeEnricher reads the Kubernetes Node object a node runs on and reports
// it as the "k8s" system information subtype.
type NodeEnricher struct {
	ClientSet kubernetes.Interface

	// NodeName is the Kubernetes node to read. When empty it is taken from
	// the environment, see GetNodeName.
	NodeName string
}

// Name implements collector.Enricher.
func (e *NodeEnricher) Name() string { return EnricherName }

// Enrich implements collector.Enricher.
func (e *NodeEnricher) Enrich(ctx context.Context) ([]measurement.Subtype, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.ClientSet == nil {
		return nil, fmt.Errorf("kubernetes client is not configured")
	}

	nodeName := e.NodeName
	if nodeName == "" {
		nodeName = GetNodeName()
	}
	if nodeName == "" {
		return nil, fmt.Errorf("node name not set in configuration or environment")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorK8sTimeout)
	defer cancel()

	n, err := e.ClientSet.CoreV1().Nodes().Get(ctx, nodeName, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get node %q: %w", nodeName, err)
	}

	info := n.Status.NodeInfo
	b := measurement.NewSubtypeBuilder(measurement.SubtypeK8s).
		SetString(measurement.KeyK8sNodeName, nodeName).
		SetString(measurement.KeyK8sKubeletVersion, info.KubeletVersion).
		SetString(measurement.KeyK8sContainerRuntime, info.ContainerRuntimeVersion).
		SetString(measurement.KeyK8sOSImage, info.OSImage).
		SetString(measurement.KeyK8sKernelVersion, info.KernelVersion).
		SetString(measurement.KeyK8sArchitecture, info.Architecture).
		SetString(measurement.KeyK8sProvider, parseProvider(n.Spec.ProviderID)).
		SetString(measurement.KeyK8sRole, parseRole(n.Labels)).
		SetContext("source", "node/"+nodeName)

	slog.Debug("collected kubernetes node", "node", nodeName, "kubelet", info.KubeletVersion)

	return []measurement.Subtype{b.Build()}, nil
}

// parseProvider maps a node providerID onto a managed Kubernetes service:
//
//	aws:///us-west-2a/i-0123456789abcdef0 -> eks
//	gce://my-project/us-central1-a/node   -> gke
//	azure:///subscriptions/...            -> aks
//	oci://...                             -> oke
//
// Unknown schemes are returned as-is; an empty providerID yields "".
func parseProvider(providerID string) string {
	if providerID == "" {
		return ""
	}
	scheme, _, _ := strings.Cut(providerID, "://")
	provider := strings.ToLower(strings.TrimSpace(scheme))

	switch provider {
	case "aws":
		return "eks"
	case "gce":
		return "gke"
	case "azure":
		return "aks"
	case "oci":
		return "oke"
	default:
		return provider
	}
}

const (
	nodeRoleLabelPrefix = "node-role.kubernetes.io/"
	nodeRoleLabel       = "nodeRole"
	nodeRoleUndefined   = "undefined"
)

// parseRole derives a node role from node-role.kubernetes.io/<role> labels,
// then from a nodeRole label. The first role in label order wins.
func parseRole(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if role, ok := strings.CutPrefix(k, nodeRoleLabelPrefix); ok && role != "" {
			return role
		}
	}
	for _, k := range keys {
		if strings.EqualFold(k, nodeRoleLabel) && labels[k] != "" {
			return labels[k]
		}
	}
	return nodeRoleUndefined
}

// GetNodeName returns the Kubernetes node name from NODE_NAME (set via the
// Downward API), then KUBERNETES_NODE_NAME, then HOSTNAME.
func GetNodeName() string {
	for _, env := range []string{"NODE_NAME", "KUBERNETES_NODE_NAME", "HOSTNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}
