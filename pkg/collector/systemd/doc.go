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

// Package systemd reports the state of systemd units on the host running the
// checker, read over D-Bus.
//
// The Enricher adds a "systemd" subtype to collected system information with
// one set of keys per unit:
//
//	kubelet.service.active_state = active
//	kubelet.service.sub_state    = running
//	kubelet.service.load_state   = loaded
//
// Connecting requires access to the system bus. Tests replace Connect with a
// fake UnitReader.
package systemd
