/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package persist saves and restores the scene: a debounced autosave into the
// blob store plus explicit JSON export and import.
package persist

import (
	"context"
	"errors"
	"log/slog"

	"inspiraview/internal/blobstore"
	"inspiraview/internal/domain"
	applog "inspiraview/internal/log"
)

// SceneKey is the single autosave slot in the blob store.
const SceneKey = "inspiraview.scene"

// LoadScene reads the autosaved scene. Missing, unreadable or malformed
// snapshots are logged and yield an empty scene.
func LoadScene(ctx context.Context, blobs blobstore.Store) []domain.Item {
	items, _ := LoadSnapshot(ctx, blobs)
	return items
}

// LoadSnapshot is LoadScene that also reports whether a valid snapshot was
// read. A false ok means the caller starts from scratch, camera included.
func LoadSnapshot(ctx context.Context, blobs blobstore.Store) (items []domain.Item, ok bool) {
	l := applog.WithOperation(applog.WithComponent("persist"), "load")
	data, err := blobs.Get(ctx, SceneKey)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			l.Debug("no autosaved scene")
		} else {
			l.Warn("autosave unreadable; starting empty", slog.Any("err", err))
		}
		return nil, false
	}
	items, err = domain.DecodeItems(data)
	if err != nil {
		l.Warn("autosave malformed; starting empty", slog.Any("err", err), slog.Int("bytes", len(data)))
		return nil, false
	}
	l.Info("scene restored", slog.Int("items", len(items)))
	return items, true
}

// SaveScene writes items into the autosave slot.
func SaveScene(ctx context.Context, blobs blobstore.Store, items []domain.Item) error {
	data, err := domain.EncodeItems(items)
	if err != nil {
		return err
	}
	return blobs.Put(ctx, SceneKey, data)
}
