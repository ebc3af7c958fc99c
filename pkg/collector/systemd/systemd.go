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

package systemd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/node-checker/pkg/measurement"
)

// EnricherName identifies the systemd enricher.
const EnricherName = "systemd"

// DefaultUnits are inspected when no units are configured.
var DefaultUnits = []string{"kubelet.service", "containerd.service"}

// unit properties read over D-Bus, mapped to measurement keys.
var unitProperties = map[string]string{
	"ActiveState": measurement.KeyUnitActive,
	"SubState":    measurement.KeyUnitSub,
	"LoadState":   measurement.KeyUnitLoad,
}

// UnitReader reads unit properties from systemd.
type UnitReader interface {
	GetUnitPropertiesContext(ctx context.Context, unit string) (map[string]any, error)
	Close()
}

// ConnectFunc opens a UnitReader.
type ConnectFunc func(ctx context.Context) (UnitReader, error)

func connectDBus(ctx context.Context) (UnitReader, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Enricher reports the state of systemd units on the local host.
type Enricher struct {
	Units   []string
	Connect ConnectFunc
}

// NewEnricher returns an Enricher for units, or DefaultUnits when none are
// given.
func NewEnricher(units ...string) *Enricher {
	if len(units) == 0 {
		units = DefaultUnits
	}
	return &Enricher{
		Units:   units,
		Connect: connectDBus,
	}
}

// Name implements collector.Enricher.
func (e *Enricher) Name() string { return EnricherName }

// Enrich implements collector.Enricher. Each unit contributes
// <unit>.active_state, <unit>.sub_state and <unit>.load_state.
func (e *Enricher) Enrich(ctx context.Context) ([]measurement.Subtype, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	connect := e.Connect
	if connect == nil {
		connect = connectDBus
	}

	conn, err := connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	b := measurement.NewSubtypeBuilder(measurement.SubtypeSystemd)
	for _, unit := range e.Units {
		props, err := conn.GetUnitPropertiesContext(ctx, unit)
		if err != nil {
			return nil, fmt.Errorf("failed to get properties of unit %s: %w", unit, err)
		}
		for prop, key := range unitProperties {
			if v, ok := props[prop].(string); ok {
				b.SetString(unit+"."+key, v)
			}
		}
	}

	slog.Debug("collected systemd unit state", "units", len(e.Units))
	return []measurement.Subtype{b.Build()}, nil
}
