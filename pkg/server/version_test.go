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

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := map[string]string{
		"":                                        "v1",
		"application/json":                        "v1",
		"application/vnd.nvidia.nodecheck.v1+json": "v1",
		"text/html, application/vnd.nvidia.nodecheck.v1+json;q=0.9": "v1",
		"application/vnd.nvidia.nodecheck.v9+json":                  "v1",
		"application/vnd.nvidia.other.v1+json":                      "v1",
	}

	for accept, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		if got := negotiateAPIVersion(req); got != want {
			t.Errorf("negotiateAPIVersion(%q) = %q, want %q", accept, got, want)
		}
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := New()
	var seen string
	h := s.versionMiddleware(func(_ http.ResponseWriter, r *http.Request) {
		seen = APIVersion(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	req.Header.Set("Accept", "application/vnd.nvidia.nodecheck.v1+json")
	rec := httptest.NewRecorder()
	h(rec, req)

	if seen != "v1" {
		t.Errorf("handler saw API version %q, want v1", seen)
	}
	if got := rec.Header().Get("X-API-Version"); got != "v1" {
		t.Errorf("X-API-Version = %q, want v1", got)
	}
}
