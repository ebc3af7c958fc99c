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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/node-checker/pkg/header"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		uri     string
		ns      string
		name    string
		wantErr bool
	}{
		{uri: "cm://nodecheck/report", ns: "nodecheck", name: "report"},
		{uri: "cm:// ns / name ", ns: "ns", name: "name"},
		{uri: "cm://nodecheck", wantErr: true},
		{uri: "cm:///name", wantErr: true},
		{uri: "cm://ns/", wantErr: true},
		{uri: "cm://ns/a/b", wantErr: true},
		{uri: "file://ns/name", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			ns, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ns, ns)
			assert.Equal(t, tt.name, name)
		})
	}
}

type headered struct {
	header.Header `json:",inline" yaml:",inline"`
	Name          string `json:"name" yaml:"name"`
}

func TestConfigMapWriterRoundTrip(t *testing.T) {
	cs := fake.NewClientset()

	doc := headered{Name: "report"}
	doc.InitAt(header.KindCheckReport, "nodecheck.nvidia.com/v1", "v1.2.3", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	w := NewConfigMapWriter("ns", "report", FormatYAML)
	w.Client = cs
	require.NoError(t, w.Serialize(context.Background(), &doc))
	require.NoError(t, w.Close())

	cm, err := cs.CoreV1().ConfigMaps("ns").Get(context.Background(), "report", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cm.Data["format"])
	assert.Equal(t, "2026-01-02T03:04:05Z", cm.Data["timestamp"])
	assert.Equal(t, "CheckReport", cm.Labels["app.kubernetes.io/component"])
	assert.Equal(t, "v1.2.3", cm.Labels["app.kubernetes.io/version"])

	got, err := FromConfigMap[headered](context.Background(), cs, "ns", "report")
	require.NoError(t, err)
	assert.Equal(t, "report", got.Name)
	assert.Equal(t, header.KindCheckReport, got.Kind)
}
