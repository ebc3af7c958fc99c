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

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	apperrors "github.com/NVIDIA/node-checker/pkg/errors"
)

const (
	// ArtifactType is the artifact type of published check reports.
	ArtifactType = "application/vnd.nvidia.nodecheck.report.v1"

	// DefaultTag is applied when the target reference carries no tag.
	DefaultTag = "latest"

	// AnnotationConfiguration names the baseline configuration a report was produced for.
	AnnotationConfiguration = "com.nvidia.nodecheck.configuration"
	// AnnotationStatus carries the overall report status.
	AnnotationStatus = "com.nvidia.nodecheck.status"

	reportTitle = "Node Check Report"
)

// PushOptions configures publishing of a single report document.
type PushOptions struct {
	// Reference is the target repository and tag.
	Reference *Reference
	// FileName is the layer title (e.g., "report.json").
	FileName string
	// MediaType is the layer media type; derived from FileName when empty.
	MediaType string
	// Content is the serialized report.
	Content []byte
	// Version is recorded as org.opencontainers.image.version.
	Version string
	// Annotations are merged into the manifest annotations.
	Annotations map[string]string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Created overrides the manifest creation time; defaults to now.
	Created time.Time
}

// PushResult contains the result of a successful push.
type PushResult struct {
	// Digest is the manifest digest.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
}

// Push publishes the report document to the remote registry.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if err := validate(&opts); err != nil {
		return nil, err
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", opts.Reference.Registry, opts.Reference.Repository))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	slog.Info("pushing report as OCI artifact",
		"registry", opts.Reference.Registry,
		"repository", opts.Reference.Repository,
		"tag", opts.Reference.Tag,
	)

	return pushTo(ctx, opts, repo)
}

// pushTo packs the document into a local file store and copies it to dst.
func pushTo(ctx context.Context, opts PushOptions, dst oras.Target) (*PushResult, error) {
	workDir, err := os.MkdirTemp("", "nodecheck-push-*")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create temp directory", err)
	}
	defer os.RemoveAll(workDir)

	path := filepath.Join(workDir, opts.FileName)
	if err := os.WriteFile(path, opts.Content, 0o600); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to stage report", err)
	}

	fs, err := file.New(workDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()

	layer, err := fs.Add(ctx, opts.FileName, opts.MediaType, path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to add report to store", err)
	}

	manifest, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: annotations(opts),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}

	tag := opts.Reference.Tag
	if err := fs.Tag(ctx, manifest, tag); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest in local store", err)
	}

	desc, err := oras.Copy(ctx, fs, tag, dst, tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUpstream, "failed to push artifact to registry", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: opts.Reference.ImageReference(),
	}, nil
}

func validate(opts *PushOptions) error {
	if opts.Reference == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}
	if opts.Reference.Tag == "" {
		opts.Reference = opts.Reference.WithTag(DefaultTag)
	}
	if opts.FileName == "" || filepath.Base(opts.FileName) != opts.FileName {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid report file name %q", opts.FileName))
	}
	if len(opts.Content) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "report content is empty")
	}
	if opts.MediaType == "" {
		opts.MediaType = MediaTypeFor(opts.FileName)
	}
	return nil
}

// MediaTypeFor maps a report file name to its layer media type.
func MediaTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "text/plain"
	}
}

func annotations(opts PushOptions) map[string]string {
	created := opts.Created
	if created.IsZero() {
		created = time.Now()
	}
	a := map[string]string{
		ociv1.AnnotationCreated: created.UTC().Format(time.RFC3339),
		ociv1.AnnotationVendor:  "NVIDIA",
		ociv1.AnnotationTitle:   reportTitle,
		ociv1.AnnotationSource:  "https://github.com/NVIDIA/node-checker",
	}
	if opts.Version != "" {
		a[ociv1.AnnotationVersion] = opts.Version
	}
	for k, v := range opts.Annotations {
		a[k] = v
	}
	return a
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
