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
	"log/slog"

	"inspiraview/internal/persist"
	"inspiraview/internal/telemetry"
)

// ExportScene serializes the scene and hands it to the host's save dialog.
func (e *Engine) ExportScene() {
	items := e.store.Snapshot()
	data, err := persist.Export(items)
	if err != nil {
		e.log.Error("export encode failed", slog.Any("err", err))
		e.toasts.Errorf("Export failed")
		return
	}
	name := persist.ExportFileName(e.now())
	e.async("export", func(ctx context.Context) func() {
		if err := e.dialogs.SaveFile(ctx, name, persist.ExportMIME, data); err != nil {
			return e.dialogFailed("save the moodboard", err)
		}
		return func() {
			e.event(telemetry.EventSceneExport, map[string]any{"count": len(items)})
			e.toasts.Successf("Exported %d items", len(items))
		}
	})
}

// ImportScene asks the host for a JSON file and replaces the scene with it.
func (e *Engine) ImportScene() {
	e.async("import", func(ctx context.Context) func() {
		f, err := e.dialogs.PickJSON(ctx)
		if err != nil {
			return e.dialogFailed("open the moodboard", err)
		}
		return func() { _ = e.ApplyImport(f.Data) }
	})
}

// ApplyImport replaces the scene with the items in data. Invalid input leaves
// the scene untouched and raises an error toast.
func (e *Engine) ApplyImport(data []byte) error {
	items, err := persist.Import(data)
	if err != nil {
		e.log.Warn("import rejected", slog.Any("err", err))
		if errors.Is(err, persist.ErrNotArray) {
			e.toasts.Errorf("Import failed: the file is not a moodboard array")
		} else {
			e.toasts.Errorf("Import failed: the file contains invalid items")
		}
		return err
	}
	e.setMode(Idle{})
	e.store.Replace(items)
	e.changed()
	e.event(telemetry.EventSceneImport, map[string]any{"count": len(items)})
	e.toasts.Successf("Imported %d items", len(items))
	return nil
}
