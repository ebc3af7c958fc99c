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

package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/node-checker/pkg/collector/k8s"
	hostos "github.com/NVIDIA/node-checker/pkg/collector/os"
	"github.com/NVIDIA/node-checker/pkg/collector/systemd"
	"github.com/NVIDIA/node-checker/pkg/node"
	"github.com/NVIDIA/node-checker/pkg/serializer"
)

func TestDefaultFactoryCreate(t *testing.T) {
	reader := serializer.NewHttpReader()
	f := NewDefaultFactory(WithFactoryReader(reader), WithFactoryTimeout(3*time.Second))

	addr := node.Address{URL: "http://10.0.0.1", APIPort: 8080, MetricsPort: 9101}
	e := KubernetesEnricher(fake.NewClientset(), "node-a")
	col := f.Create(addr, e)

	hc, ok := col.(*HTTPCollector)
	require.True(t, ok)
	assert.Equal(t, addr, hc.Address())
	assert.Same(t, reader, hc.reader)
	assert.Equal(t, 3*time.Second, hc.timeout)
	require.Len(t, hc.enrichers, 1)
	assert.Equal(t, k8s.EnricherName, hc.enrichers[0].Name())
}

func TestNewDefaultFactoryDefaults(t *testing.T) {
	f := NewDefaultFactory()
	assert.NotNil(t, f.reader)
	assert.Positive(t, f.timeout)
}

func TestHostEnrichers(t *testing.T) {
	t.Run("os only", func(t *testing.T) {
		es := HostEnrichers(nil, nil)
		require.Len(t, es, 1)
		assert.Equal(t, hostos.EnricherName, es[0].Name())
	})

	t.Run("os and systemd", func(t *testing.T) {
		es := HostEnrichers([]string{"kubelet.service"}, []string{"/proc/sys/vm/*"})
		require.Len(t, es, 2)
		assert.Equal(t, hostos.EnricherName, es[0].Name())
		se, ok := es[1].(*systemd.Enricher)
		require.True(t, ok)
		assert.Equal(t, []string{"kubelet.service"}, se.Units)
	})
}
