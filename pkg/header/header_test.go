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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindBaselineConfiguration, true},
		{KindEvaluationSummary, true},
		{KindCheckReport, true},
		{Kind("Recipe"), false},
		{Kind(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.IsValid())
		})
	}
}

func TestNewWithOptions(t *testing.T) {
	h := New(
		WithKind(KindCheckReport),
		WithAPIVersion("nodecheck.nvidia.com/v1alpha1"),
		WithMetadata("configuration", "devnet"),
	)
	assert.Equal(t, KindCheckReport, h.Kind)
	assert.Equal(t, "nodecheck.nvidia.com/v1alpha1", h.APIVersion)
	assert.Equal(t, "devnet", h.Metadata["configuration"])
}

func TestWithMetadataOnNilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, "v", h.Metadata["k"])
}

func TestInitAt(t *testing.T) {
	at := time.Date(2025, 12, 30, 10, 30, 0, 0, time.FixedZone("x", 3600))

	var h Header
	h.Metadata = map[string]string{"stale": "yes"}
	h.InitAt(KindEvaluationSummary, "v1", "v1.2.3", at)

	assert.Equal(t, KindEvaluationSummary, h.Kind)
	assert.Equal(t, "2025-12-30T09:30:00Z", h.Metadata["timestamp"])
	assert.Equal(t, "v1.2.3", h.Metadata["version"])
	assert.NotContains(t, h.Metadata, "stale")
	assert.True(t, at.Equal(h.Timestamp()))
}

func TestInitOmitsEmptyVersion(t *testing.T) {
	var h Header
	h.Init(KindCheckReport, "v1", "")
	assert.NotContains(t, h.Metadata, "version")
	assert.False(t, h.Timestamp().IsZero())
}

func TestTimestampMalformed(t *testing.T) {
	h := New(WithMetadata("timestamp", "yesterday"))
	assert.True(t, h.Timestamp().IsZero())
}
