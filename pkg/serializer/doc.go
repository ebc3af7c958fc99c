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

// Package serializer reads and writes node checker documents.
//
// Three formats are supported: JSON, YAML and a flattened key/value table
// (write-only).
//
// # Writing
//
// NewFileWriterOrStdout picks the destination from a path: stdout when
// empty, a Kubernetes ConfigMap for cm://namespace/name, a file otherwise.
//
//	ser, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "cm://nodecheck/report")
//	if err != nil {
//	    return err
//	}
//	if c, ok := ser.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	err = ser.Serialize(ctx, report)
//
// ConfigMaps are written with server-side apply. The document goes under
// data.{json|yaml|txt} next to "format" and "timestamp" entries.
//
// # Reading
//
// FromFile loads a typed value from a local file, an http(s) URL or a
// ConfigMap. File and URL formats come from the extension:
//
//	cfg, err := serializer.FromFile[config.BaselineConfiguration]("baseline.yaml")
//
// # HTTP
//
// HttpReader is the HTTP client used for every outbound GET: node APIs,
// metrics scrapes and remote documents. It uses a pooled transport with
// connect, TLS handshake and response header timeouts, TLS 1.2 or later,
// and a bounded response size. Non-200 responses return a *StatusError.
//
// RespondJSON writes buffered JSON responses for the API server.
package serializer
