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

// Package metrics turns raw Prometheus text exposition lines scraped from a
// node into an immutable Snapshot that evaluators can query.
//
// Parsing is delegated to prometheus/common/expfmt. A Snapshot is never
// modified after Parse returns, so the same value may be shared by several
// evaluators running against the same run.
//
//	snap, err := metrics.NewTextParser().Parse(lines)
//	if err != nil {
//	    return err
//	}
//	v, ok := snap.Value("state_sync_version", map[string]string{"type": "synced"})
package metrics
