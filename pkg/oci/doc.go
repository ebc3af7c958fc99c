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

// Package oci publishes check reports to OCI-compliant registries.
//
// A report is pushed as a single-layer OCI 1.1 artifact with artifact type
// ArtifactType. The layer carries the serialized report under its file name and
// the manifest carries creation time, version and status annotations.
//
//	ref, err := oci.ParseReference("oci://ghcr.io/acme/node-reports:run-42")
//	res, err := oci.Push(ctx, oci.PushOptions{
//	    Reference: ref,
//	    FileName:  "report.json",
//	    Content:   data,
//	})
//
// Registry credentials are read from the Docker credential store when present.
package oci
