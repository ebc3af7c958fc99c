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

// Package report defines the CheckReport document: the outcome of one
// check of a target node against a baseline configuration, with a
// Kubernetes-style header, a run ID, pass/fail counts and either the
// evaluation summary or the stage that failed.
//
// Reports are written by the CLI through pkg/serializer and can be
// published as OCI artifacts with pkg/oci.
package report
