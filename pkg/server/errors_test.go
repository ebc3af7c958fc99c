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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	cnserrors "github.com/NVIDIA/node-checker/pkg/errors"
)

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-1"))
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest, "bad", false,
		map[string]any{"field": "node_url"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != string(cnserrors.ErrCodeInvalidRequest) || resp.RequestID != "req-1" || resp.Retryable {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Details["field"] != "node_url" {
		t.Errorf("expected details to carry field, got %v", resp.Details)
	}
}

func TestWriteErrorFromErr(t *testing.T) {
	cause := cnserrors.WrapWithContext(cnserrors.ErrCodeUpstream, "target unreachable",
		fmt.Errorf("dial tcp: refused"), map[string]any{"stage": "collect_metrics"})
	err := fmt.Errorf("check failed: %w", cause)

	rec := httptest.NewRecorder()
	WriteErrorFromErr(rec, httptest.NewRequest(http.MethodGet, "/v1/check", nil), err, "check failed",
		map[string]any{"configuration": "base"})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Retryable || resp.RequestID == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Details["stage"] != "collect_metrics" || resp.Details["configuration"] != "base" {
		t.Errorf("expected merged details, got %v", resp.Details)
	}
}

func TestStatusOf(t *testing.T) {
	tests := map[cnserrors.ErrorCode]int{
		cnserrors.ErrCodeInvalidRequest:    http.StatusBadRequest,
		cnserrors.ErrCodeNotFound:          http.StatusNotFound,
		cnserrors.ErrCodeMethodNotAllowed:  http.StatusMethodNotAllowed,
		cnserrors.ErrCodeRateLimitExceeded: http.StatusTooManyRequests,
		cnserrors.ErrCodeTimeout:           http.StatusGatewayTimeout,
		cnserrors.ErrCodeUpstream:          http.StatusBadGateway,
		cnserrors.ErrCodeUnavailable:       http.StatusServiceUnavailable,
		cnserrors.ErrCodeInternal:          http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got, _ := StatusOf(code); got != want {
			t.Errorf("StatusOf(%s) = %d, want %d", code, got, want)
		}
	}
}
