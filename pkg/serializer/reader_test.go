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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestReaderRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(f, sample())
			require.NoError(t, err)

			r, err := NewReader(f, strings.NewReader(string(data)))
			require.NoError(t, err)
			var got nested
			require.NoError(t, r.Deserialize(&got))
			require.NoError(t, r.Close())

			want := sample()
			want.Skip = ""
			assert.Equal(t, want, got)
		})
	}
}

func TestNewReaderErrors(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.ErrorContains(t, err, "table format")

	_, err = NewReader("xml", strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown format")

	r, err := NewReader(FormatJSON, strings.NewReader("{"))
	require.NoError(t, err)
	var v map[string]any
	assert.ErrorContains(t, r.Deserialize(&v), "failed to decode JSON")

	var nilReader *Reader
	assert.Error(t, nilReader.Deserialize(&v))
	assert.NoError(t, nilReader.Close())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: local\nscore: 3\n"), 0o600))

	got, err := FromFile[nested](path)
	require.NoError(t, err)
	assert.Equal(t, "local", got.Name)

	_, err = FromFile[nested](filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFromFileURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"remote","score":1}`))
	}))
	defer srv.Close()

	got, err := FromFile[nested](srv.URL + "/doc.json")
	require.NoError(t, err)
	assert.Equal(t, "remote", got.Name)
}

func TestFromConfigMap(t *testing.T) {
	cs := fake.NewClientset(
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "by-format", Namespace: "ns"},
			Data: map[string]string{
				"format":    "json",
				"data.json": `{"name":"formatted"}`,
				"a.yaml":    "name: ignored",
			},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "by-key", Namespace: "ns"},
			Data:       map[string]string{"README": "x", "baseline.yaml": "name: keyed"},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "empty", Namespace: "ns"},
			Data:       map[string]string{"README": "x"},
		},
	)
	ctx := context.Background()

	got, err := FromConfigMap[nested](ctx, cs, "ns", "by-format")
	require.NoError(t, err)
	assert.Equal(t, "formatted", got.Name)

	got, err = FromConfigMap[nested](ctx, cs, "ns", "by-key")
	require.NoError(t, err)
	assert.Equal(t, "keyed", got.Name)

	_, err = FromConfigMap[nested](ctx, cs, "ns", "empty")
	assert.ErrorContains(t, err, "no yaml or json data")

	_, err = FromConfigMap[nested](ctx, cs, "ns", "missing")
	assert.Error(t, err)
}
