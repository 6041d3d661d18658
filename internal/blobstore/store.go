/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package blobstore persists opaque byte blobs under string keys. The backend
// (memory, filesystem, sqlite, postgres or s3) is chosen by configuration.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	applog "inspiraview/internal/log"
)

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("blob not found")

// Store is a key/value blob store. Put overwrites; Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory     = "memory"
	BackendFilesystem = "filesystem"
	BackendSQLite     = "sqlite"
	BackendPostgres   = "postgres"
	BackendS3         = "s3"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string // filesystem directory or sqlite file
	DSN     string // postgres connection string

	Bucket    string
	Region    string
	Endpoint  string // custom S3 endpoint (MinIO etc.)
	Prefix    string
	AccessKey string
	SecretKey string
}

// Open returns the backend named by opts.Backend; unknown or empty names use memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	l := applog.WithOperation(applog.WithComponent("blobstore"), "open").With(slog.String("backend", opts.Backend))
	var (
		st  Store
		err error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendFilesystem:
		st, err = NewFS(opts.Path)
	case BackendSQLite:
		st, err = OpenSQLite(ctx, opts.Path)
	case BackendPostgres:
		st, err = OpenPostgres(ctx, opts.DSN)
	case BackendS3:
		st, err = OpenS3(ctx, opts)
	default:
		st = NewMemory()
		l = l.With(slog.String("backend", BackendMemory))
	}
	if err != nil {
		l.Error("open blob store failed", slog.Any("err", err))
		return nil, fmt.Errorf("open %s blob store: %w", opts.Backend, err)
	}
	l.Info("blob store ready")
	return st, nil
}

// validKey rejects keys that could escape a directory or bucket prefix.
func validKey(key string) error {
	if key == "" || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	if path.Base(key) != key || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid key %q: must not be a path", key)
	}
	return nil
}
