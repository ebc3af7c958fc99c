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
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	cnserrors "github.com/NVIDIA/node-checker/pkg/errors"
	"github.com/NVIDIA/node-checker/pkg/serializer"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an ErrorResponse carrying the request ID from r.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cnserrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr writes err as an ErrorResponse. The status and
// retryability follow the code of the outermost StructuredError; the
// StructuredError context is merged into details.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string, details map[string]any) {
	code := cnserrors.CodeOf(err)
	status, retryable := StatusOf(code)

	merged := map[string]any{"error": err.Error()}
	if se := asStructured(err); se != nil {
		for k, v := range se.Context {
			merged[k] = v
		}
	}
	for k, v := range details {
		merged[k] = v
	}

	WriteError(w, r, status, code, message, retryable, merged)
}

// StatusOf maps an error code onto an HTTP status and whether the client
// may retry.
func StatusOf(code cnserrors.ErrorCode) (int, bool) {
	switch code {
	case cnserrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest, false
	case cnserrors.ErrCodeNotFound:
		return http.StatusNotFound, false
	case cnserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed, false
	case cnserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests, true
	case cnserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, true
	case cnserrors.ErrCodeUpstream:
		return http.StatusBadGateway, true
	case cnserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, true
	}
}

func asStructured(err error) *cnserrors.StructuredError {
	var se *cnserrors.StructuredError
	if errors.As(err, &se) {
		return se
	}
	return nil
}
