/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package persist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"inspiraview/internal/blobstore"
	"inspiraview/internal/camera"
	"inspiraview/internal/domain"
	applog "inspiraview/internal/log"
)

// DefaultInterval is the autosave quiet period.
const DefaultInterval = time.Second

// CameraSaver stores the camera outside the blob store.
type CameraSaver interface {
	SaveCamera(camera.Camera) error
}

type snapshot struct {
	seq   uint64
	items []domain.Item
	cam   camera.Camera
}

// Autosaver coalesces scene changes and writes only the latest state once no
// change has arrived for the quiet interval.
type Autosaver struct {
	blobs    blobstore.Store
	cams     CameraSaver
	interval time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *snapshot
	seq     uint64
	stopped bool

	writeMu  sync.Mutex
	written  uint64
	savedCam *camera.Camera
	onSaved  func(error)
}

// NewAutosaver returns an idle autosaver. cams may be nil.
func NewAutosaver(blobs blobstore.Store, cams CameraSaver, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Autosaver{
		blobs:    blobs,
		cams:     cams,
		interval: interval,
		log:      applog.WithComponent("autosave"),
	}
}

// OnSaved registers a callback invoked after every write attempt.
func (a *Autosaver) OnSaved(fn func(error)) {
	a.writeMu.Lock()
	a.onSaved = fn
	a.writeMu.Unlock()
}

// Touch records the latest state and restarts the quiet period. items are
// cloned before Touch returns, so the caller may keep mutating them.
func (a *Autosaver) Touch(items []domain.Item, cam camera.Camera) {
	snap := &snapshot{items: domain.CloneAll(items), cam: cam}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.seq++
	snap.seq = a.seq
	a.pending = snap
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.interval, func() {
		if err := a.Flush(context.Background()); err != nil {
			a.log.Warn("autosave failed", slog.Any("err", err))
		}
	})
}

// Pending reports whether a write is scheduled.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Flush writes the pending snapshot now, if any.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	snap := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	if snap == nil {
		return nil
	}
	return a.write(ctx, snap)
}

func (a *Autosaver) write(ctx context.Context, snap *snapshot) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	if snap.seq <= a.written {
		return nil
	}
	err := SaveScene(ctx, a.blobs, snap.items)
	if err == nil && a.cams != nil && (a.savedCam == nil || *a.savedCam != snap.cam) {
		if cerr := a.cams.SaveCamera(snap.cam); cerr != nil {
			a.log.Warn("camera not saved", slog.Any("err", cerr))
		} else {
			c := snap.cam
			a.savedCam = &c
		}
	}
	if err == nil {
		a.written = snap.seq
		a.log.Debug("scene saved", slog.Int("items", len(snap.items)), slog.Uint64("seq", snap.seq))
	}
	if a.onSaved != nil {
		a.onSaved(err)
	}
	return err
}

// Close flushes the pending snapshot and ignores later Touch calls.
func (a *Autosaver) Close(ctx context.Context) error {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
	return a.Flush(ctx)
}
