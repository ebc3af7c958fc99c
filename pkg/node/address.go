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

package node

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultAPIPort is the REST API port of a node.
	DefaultAPIPort uint16 = 8080

	// DefaultMetricsPort is the port serving /metrics and /system_information.
	DefaultMetricsPort uint16 = 9101
)

// Node roles as reported by the ledger API.
const (
	RoleValidator = "validator"
	RoleFullNode  = "full_node"
)

// Address locates a node: a scheme and host plus the two ports it serves on.
type Address struct {
	URL         string `json:"url" yaml:"url"`
	APIPort     uint16 `json:"api_port" yaml:"api_port"`
	MetricsPort uint16 `json:"metrics_port" yaml:"metrics_port"`
}

// NewAddress validates and returns an Address. Zero ports take the defaults.
func NewAddress(rawURL string, apiPort, metricsPort uint16) (Address, error) {
	a := Address{URL: strings.TrimRight(strings.TrimSpace(rawURL), "/"), APIPort: apiPort, MetricsPort: metricsPort}
	a = a.WithDefaults()
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

// WithDefaults returns a copy with zero ports replaced by the defaults.
func (a Address) WithDefaults() Address {
	if a.APIPort == 0 {
		a.APIPort = DefaultAPIPort
	}
	if a.MetricsPort == 0 {
		a.MetricsPort = DefaultMetricsPort
	}
	return a
}

// Validate checks that URL is an absolute http(s) URL without its own port.
func (a Address) Validate() error {
	if a.URL == "" {
		return fmt.Errorf("node url is required")
	}
	u, err := url.Parse(a.URL)
	if err != nil {
		return fmt.Errorf("invalid node url %q: %w", a.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid node url %q: scheme must be http or https", a.URL)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("invalid node url %q: host is required", a.URL)
	}
	if u.Port() != "" {
		return fmt.Errorf("invalid node url %q: ports are configured separately", a.URL)
	}
	if a.APIPort == 0 || a.MetricsPort == 0 {
		return fmt.Errorf("node ports must be non-zero")
	}
	return nil
}

// APIURL returns the URL of path on the API port.
func (a Address) APIURL(path string) string {
	return a.join(a.APIPort, path)
}

// MetricsURL returns the URL of path on the metrics port.
func (a Address) MetricsURL(path string) string {
	return a.join(a.MetricsPort, path)
}

func (a Address) join(port uint16, path string) string {
	u, err := url.Parse(a.URL)
	if err != nil || u.Hostname() == "" {
		return strings.TrimRight(a.URL, "/") + ":" + strconv.Itoa(int(port)) + "/" + strings.TrimLeft(path, "/")
	}
	u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(int(port)))
	u.Path = "/" + strings.TrimLeft(path, "/")
	return u.String()
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return fmt.Sprintf("%s (api %d, metrics %d)", a.URL, a.APIPort, a.MetricsPort)
}

// Information is the identity a baseline node is expected to have. Targets
// are compared against it before anything else is evaluated.
type Information struct {
	NodeAddress Address `json:"node_address" yaml:"node_address"`
	ChainID     uint8   `json:"chain_id" yaml:"chain_id"`
	RoleType    string  `json:"role_type" yaml:"role_type"`
}
