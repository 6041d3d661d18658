/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"context"
	"errors"
	"time"

	"inspiraview/internal/blobstore"
	"inspiraview/internal/persist"
	"inspiraview/internal/settings"
)

// Session bundles an engine with the stores it restores from and autosaves to.
type Session struct {
	Engine   *Engine
	Autosave *persist.Autosaver
	Blobs    blobstore.Store
	Settings *settings.File
}

// OpenSession restores the last scene, camera and window settings into a new
// engine. opts.Autosave and opts.Settings are replaced by the session's own.
// A missing, unreadable or malformed scene snapshot yields an empty scene
// with the reset camera.
func OpenSession(ctx context.Context, blobs blobstore.Store, prefs *settings.File, interval time.Duration, opts Options) *Session {
	as := persist.NewAutosaver(blobs, prefs, interval)
	opts.Autosave = as
	opts.Settings = prefs
	e := New(opts)

	st := prefs.Load()
	items, ok := persist.LoadSnapshot(ctx, blobs)
	cam := st.Camera
	if !ok {
		cam = nil
	}
	e.Restore(items, cam)
	e.ApplyWindowSettings(st)
	return &Session{Engine: e, Autosave: as, Blobs: blobs, Settings: prefs}
}

// Close stops background work, writes any pending autosave and closes the blob store.
func (s *Session) Close(ctx context.Context) error {
	s.Engine.Close()
	return errors.Join(s.Autosave.Close(ctx), s.Blobs.Close())
}
