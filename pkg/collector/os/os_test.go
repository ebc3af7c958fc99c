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

package os

import (
	"context"
	stdos "os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/node-checker/pkg/measurement"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, stdos.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, stdos.WriteFile(path, []byte(content), 0o600))
}

func testEnricher(t *testing.T) *Enricher {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "os-release"), `# comment
NAME="Ubuntu"
ID=ubuntu
VERSION_ID="22.04"
PRETTY_NAME='Ubuntu 22.04.4 LTS'
MALFORMED
`)
	writeFile(t, filepath.Join(dir, "osrelease"), "6.8.0-1015-aws\n")
	writeFile(t, filepath.Join(dir, "cmdline"), "BOOT_IMAGE=/vmlinuz root=PARTUUID=abc-1 ro  hugepages=1024 quiet\n")

	sys := filepath.Join(dir, "sys")
	writeFile(t, filepath.Join(sys, "vm", "swappiness"), "60\n")
	writeFile(t, filepath.Join(sys, "vm", "max_map_count"), "262144\n")
	writeFile(t, filepath.Join(sys, "net", "core", "somaxconn"), "4096\n")
	writeFile(t, filepath.Join(sys, "fs", "file-max"), "9223372036854775807\n")

	return NewEnricher(
		WithReleasePaths(filepath.Join(dir, "missing"), filepath.Join(dir, "os-release")),
		WithKernelPath(filepath.Join(dir, "osrelease")),
		WithCmdlinePath(filepath.Join(dir, "cmdline")),
		WithSysctlRoot(sys),
		WithSysctlPatterns("/proc/sys/vm/*", "/proc/sys/net/core/somaxconn"),
	)
}

func TestEnrich(t *testing.T) {
	e := testEnricher(t)
	assert.Equal(t, EnricherName, e.Name())

	sts, err := e.Enrich(context.Background())
	require.NoError(t, err)
	require.Len(t, sts, 4)

	m := measurement.NewMeasurement(measurement.TypeSystemInformation).WithSubtypes(sts...).Build()

	release := m.GetSubtype(measurement.SubtypeRelease)
	require.NotNil(t, release)
	id, _ := release.GetString(measurement.KeyReleaseID)
	assert.Equal(t, "ubuntu", id)
	ver, _ := release.GetString(measurement.KeyReleaseVersion)
	assert.Equal(t, "22.04", ver)
	pretty, _ := release.GetString("PRETTY_NAME")
	assert.Equal(t, "Ubuntu 22.04.4 LTS", pretty)
	assert.False(t, release.Has("MALFORMED"))

	kernel := m.GetSubtype(measurement.SubtypeKernel)
	require.NotNil(t, kernel)
	kv, _ := kernel.GetString(measurement.KeyKernelRelease)
	assert.Equal(t, "6.8.0-1015-aws", kv)

	cmdline := m.GetSubtype(measurement.SubtypeCmdline)
	require.NotNil(t, cmdline)
	root, _ := cmdline.GetString("root")
	assert.Equal(t, "PARTUUID=abc-1", root)
	hp, _ := cmdline.GetString("hugepages")
	assert.Equal(t, "1024", hp)
	assert.True(t, cmdline.Has("quiet"))
	assert.True(t, cmdline.Has("ro"))

	sysctl := m.GetSubtype(measurement.SubtypeSysctl)
	require.NotNil(t, sysctl)
	assert.Equal(t, []string{
		"/proc/sys/net/core/somaxconn",
		"/proc/sys/vm/max_map_count",
		"/proc/sys/vm/swappiness",
	}, sysctl.Keys())
	n, err := sysctl.GetInt64("/proc/sys/vm/swappiness")
	require.NoError(t, err)
	assert.EqualValues(t, 60, n)
}

func TestEnrichWithoutSysctl(t *testing.T) {
	e := testEnricher(t)
	WithSysctlPatterns()(e)

	sts, err := e.Enrich(context.Background())
	require.NoError(t, err)
	assert.Len(t, sts, 3)
}

func TestEnrichWithoutCmdline(t *testing.T) {
	e := testEnricher(t)
	WithCmdlinePath(filepath.Join(t.TempDir(), "nope"))(e)

	sts, err := e.Enrich(context.Background())
	require.NoError(t, err)
	for _, st := range sts {
		assert.NotEqual(t, measurement.SubtypeCmdline, st.Name)
	}
}

func TestEnrichErrors(t *testing.T) {
	t.Run("no release file", func(t *testing.T) {
		e := testEnricher(t)
		WithReleasePaths(filepath.Join(t.TempDir(), "nope"))(e)
		_, err := e.Enrich(context.Background())
		assert.ErrorContains(t, err, "no os-release file")
	})

	t.Run("no kernel file", func(t *testing.T) {
		e := testEnricher(t)
		WithKernelPath(filepath.Join(t.TempDir(), "nope"))(e)
		_, err := e.Enrich(context.Background())
		assert.ErrorContains(t, err, "kernel release")
	})

	t.Run("invalid cmdline", func(t *testing.T) {
		e := testEnricher(t)
		p := filepath.Join(t.TempDir(), "cmdline")
		writeFile(t, p, "quiet \xff\xfe")
		WithCmdlinePath(p)(e)
		_, err := e.Enrich(context.Background())
		assert.ErrorContains(t, err, "UTF-8")
	})

	t.Run("missing sysctl root", func(t *testing.T) {
		e := testEnricher(t)
		WithSysctlRoot(filepath.Join(t.TempDir(), "nope"))(e)
		_, err := e.Enrich(context.Background())
		assert.ErrorContains(t, err, "sysctl")
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := testEnricher(t).Enrich(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
