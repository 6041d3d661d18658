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

	"inspiraview/internal/domain"
	"inspiraview/internal/host"
	"inspiraview/internal/media"
	"inspiraview/internal/telemetry"
	"inspiraview/internal/vector"
)

// AddImage places a decoded image centred on the world point and selects it.
func (e *Engine) AddImage(d media.Decoded, at vector.Pt) string {
	e.commitEditing()
	im := domain.NewImage(d.Src, float64(d.Width), float64(d.Height))
	w, h := im.Size()
	if side := max(w, h); side > FitImageSide {
		im.Scale = FitImageSide / side
	}
	im.X = at.X - w/2
	im.Y = at.Y - h/2
	e.store.Add(im)
	e.changed()
	return im.ID
}

// decodeAll decodes files off the engine's thread. Files that are not images
// are reported by name.
func decodeAll(files []host.File) (ok []media.Decoded, bad []string) {
	for _, f := range files {
		d, err := media.Decode(f.Name, f.MIME, f.Data)
		if err != nil {
			bad = append(bad, f.Name)
			continue
		}
		ok = append(ok, d)
	}
	return ok, bad
}

// placeDecoded adds images starting at the screen point, each one offset
// further down and to the right.
func (e *Engine) placeDecoded(decoded []media.Decoded, bad []string, at vector.Pt) {
	for i, d := range decoded {
		p := at.Add(vector.Pt{X: float64(i) * DropCascade, Y: float64(i) * DropCascade})
		e.AddImage(d, e.cam.ScreenToWorld(p))
	}
	if len(decoded) > 0 {
		e.event(telemetry.EventItemsAdded, map[string]any{"count": len(decoded), "kind": string(domain.KindImage)})
	}
	for _, name := range bad {
		e.toasts.Errorf("%s is not a supported image", name)
	}
}

// DropFiles adds the image files among files at the drop point.
func (e *Engine) DropFiles(at vector.Pt, files []host.File) {
	e.SetDropHover(false)
	var images []host.File
	for _, f := range files {
		if media.IsImageMIME(f.MIME) || (f.MIME == "" && media.IsImageName(f.Name)) {
			images = append(images, f)
		}
	}
	if len(images) == 0 {
		e.toasts.Errorf("Drop an image file")
		return
	}
	e.async("drop", func(context.Context) func() {
		decoded, bad := decodeAll(images)
		return func() { e.placeDecoded(decoded, bad, at) }
	})
}

// OpenImages asks the host for image files and adds them at the viewport centre.
func (e *Engine) OpenImages() {
	at := e.viewportCenter()
	e.async("open-images", func(ctx context.Context) func() {
		files, err := e.dialogs.PickImages(ctx)
		if err != nil {
			return e.dialogFailed("open images", err)
		}
		if len(files) == 0 {
			return nil
		}
		decoded, bad := decodeAll(files)
		return func() { e.placeDecoded(decoded, bad, at) }
	})
}

// Paste adds the first image found on the clipboard at the viewport centre.
func (e *Engine) Paste() {
	at := e.viewportCenter()
	e.async("paste", func(ctx context.Context) func() {
		items, err := e.clip.Read(ctx)
		if err != nil && !errors.Is(err, host.ErrUnsupported) {
			e.log.Warn("clipboard read failed", slog.Any("err", err))
		}
		mime, data, ok := host.FirstImage(items)
		if !ok {
			return func() { e.toasts.Errorf("No image on the clipboard") }
		}
		d, err := media.Decode("clipboard", mime, data)
		if err != nil {
			e.log.Warn("clipboard image undecodable", slog.String("mime", mime), slog.Any("err", err))
			return func() { e.toasts.Errorf("The clipboard image could not be read") }
		}
		return func() { e.placeDecoded([]media.Decoded{d}, nil, at) }
	})
}

// dialogFailed handles a dialog error off the engine's thread. User cancel and
// engine shutdown are silent, a missing dialog is logged, anything else is
// shown to the user.
func (e *Engine) dialogFailed(what string, err error) func() {
	switch {
	case errors.Is(err, host.ErrCanceled), errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, host.ErrUnsupported):
		e.log.Warn(what+": no dialog available", slog.Any("err", err))
		return nil
	default:
		e.log.Error(what+" failed", slog.Any("err", err))
		return func() { e.toasts.Errorf("Could not %s", what) }
	}
}
