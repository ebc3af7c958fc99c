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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/header"
	"github.com/NVIDIA/node-checker/pkg/k8s/client"
)

const (
	configMapFormatKey    = "format"
	configMapTimestampKey = "timestamp"
	configMapFieldManager = "nodecheck"
)

func configMapDataKey(f Format) string {
	return "data." + f.Extension()
}

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap,
// creating or updating it with server-side apply.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format

	// Client overrides the discovered Kubernetes client.
	Client client.Interface
}

// NewConfigMapWriter creates a ConfigMapWriter. Unknown formats fall back
// to JSON.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
	}
}

// Serialize writes v to the ConfigMap. The ConfigMap holds:
//   - data.{json|yaml|txt}: the serialized document
//   - format: the format used
//   - timestamp: the document timestamp, or now
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	k8s := w.Client
	if k8s == nil {
		var err error
		k8s, _, err = client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	content, err := Marshal(w.format, v)
	if err != nil {
		return err
	}

	kind := "document"
	version := "unknown"
	timestamp := time.Now().UTC().Format(time.RFC3339)
	if h, ok := v.(interface{ GetHeader() *header.Header }); ok && h.GetHeader() != nil {
		hdr := h.GetHeader()
		kind = hdr.Kind.String()
		if ver, ok := hdr.Metadata[header.MetadataVersion]; ok {
			version = ver
		}
		if ts, ok := hdr.Metadata[header.MetadataTimestamp]; ok {
			timestamp = ts
		}
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "nodecheck",
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			configMapDataKey(w.format): string(content),
			configMapFormatKey:         string(w.format),
			configMapTimestampKey:      timestamp,
		})

	slog.Info("applying ConfigMap", "namespace", w.namespace, "name", w.name, "format", w.format)

	_, err = k8s.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, configMap, metav1.ApplyOptions{
		FieldManager: configMapFieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !IsConfigMapURI(uri) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	namespace, name, ok := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}
	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI: invalid name %q", name)
	}
	return namespace, name, nil
}
