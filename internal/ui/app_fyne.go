//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"inspiraview/internal/blobstore"
	"inspiraview/internal/crash"
	"inspiraview/internal/engine"
	"inspiraview/internal/host"
	applog "inspiraview/internal/log"
	"inspiraview/internal/media"
	"inspiraview/internal/settings"
	"inspiraview/internal/telemetry"
	"inspiraview/internal/textlayout"
	"inspiraview/internal/toast"
	"inspiraview/internal/vector"
)

const (
	toastTick    = time.Second / 30
	closeTimeout = 3 * time.Second
)

var canvasBackground = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x22, A: 0xff}

// Run starts the Fyne desktop shell around the moodboard engine.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blobs, err := blobstore.Open(ctx, opts.Config.BlobOptions(opts.ConfigDir, opts.Secrets))
	storageErr := err
	if err != nil {
		l.Error("open storage failed; using memory", slog.Any("err", err))
		blobs = blobstore.NewMemory()
	}
	prefsFile := settings.NewFile(filepath.Join(opts.ConfigDir, settings.FileName))

	fyneApp := app.NewWithID("inspiraview")
	w := fyneApp.NewWindow("InspiraView")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1000)
	winH := prefs.IntWithFallback("window.height", 700)
	w.Resize(fyne.NewSize(float32(max(winW, 480)), float32(max(winH, 360))))

	dh := &desktopHost{app: fyneApp, win: w}
	sink := toast.New()
	b := newBoard(NewCompositor(fontProvider(opts.Config.General.FontPath, l)))
	toasts := newToastLayer(sink)
	bar := &toolbar{}

	sess := engine.OpenSession(ctx, blobs, prefsFile, opts.Config.Autosave.AutosaveInterval(), engine.Options{
		Context:   ctx,
		Layout:    textlayout.NewWordWrap(b.comp.Provider),
		Toasts:    sink,
		Shell:     dh,
		Dialogs:   dh,
		Clipboard: dh,
		Telemetry: telemetry.Default(),
		Schedule:  fyne.Do,
		OnChange: func() {
			b.Refresh()
			bar.sync()
		},
	})
	defer crash.Recover(crash.Guard{Dir: filepath.Join(opts.ConfigDir, "crash"), Autosave: sess.Autosave})

	eng := sess.Engine
	b.eng = eng
	bar.build(eng, w)
	sink.OnChange(func() { fyne.Do(toasts.Refresh) })
	if storageErr != nil {
		sink.Errorf("Storage unavailable, changes will not be kept")
	}

	go func() {
		t := time.NewTicker(toastTick)
		defer t.Stop()
		dt := float32(toastTick.Seconds())
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				fyne.Do(func() {
					if len(sink.Visible()) == 0 {
						return
					}
					sink.Update(dt)
					toasts.Refresh()
				})
			}
		}
	}()

	w.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		at := b.localPos(pos)
		go func() {
			files := readDropped(uris, l)
			fyne.Do(func() { eng.DropFiles(at, files) })
		}()
	})
	for _, sc := range []*desktop.CustomShortcut{
		{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierShortcutDefault},
		{KeyName: fyne.KeyV, Modifier: fyne.KeyModifierShortcutDefault},
		{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
		{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
	} {
		w.Canvas().AddShortcut(sc, func(s fyne.Shortcut) { b.TypedShortcut(s) })
	}

	w.SetContent(container.NewStack(
		canvas.NewRectangle(canvasBackground),
		b,
		container.NewBorder(bar.root, nil, nil, bar.tools, nil),
		toasts,
	))
	w.Canvas().Focus(b)

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		cctx, ccancel := context.WithTimeout(context.Background(), closeTimeout)
		defer ccancel()
		if err := sess.Close(cctx); err != nil {
			l.Error("close session failed", slog.Any("err", err))
		}
		cancel()
		w.Close()
	})

	w.ShowAndRun()
	return nil
}

func fontProvider(path string, l *slog.Logger) textlayout.Provider {
	if path != "" {
		p, err := textlayout.LoadFontFile(path)
		if err == nil {
			return p
		}
		l.Warn("font file unusable; using default", slog.String("path", path), slog.Any("err", err))
	}
	return textlayout.Default()
}

func readDropped(uris []fyne.URI, l *slog.Logger) []host.File {
	files := make([]host.File, 0, len(uris))
	for _, u := range uris {
		f, err := readURI(u)
		if err != nil {
			l.Warn("read dropped file failed", slog.String("uri", u.String()), slog.Any("err", err))
			continue
		}
		files = append(files, f)
	}
	return files
}

func readURI(u fyne.URI) (host.File, error) {
	rc, err := fstorage.Reader(u)
	if err != nil {
		return host.File{}, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return host.File{}, fmt.Errorf("read %s: %w", u.Name(), err)
	}
	mime := u.MimeType()
	if !media.IsImageMIME(mime) && mime != "application/json" {
		mime = media.MIMEFromName(u.Name())
	}
	return host.File{Name: u.Name(), MIME: mime, Data: data}, nil
}

// board is the moodboard canvas. It forwards raw input to the engine and
// paints the projected scene through a Compositor.
type board struct {
	widget.BaseWidget
	eng  *engine.Engine
	comp *Compositor
	mods fyne.KeyModifier

	entry   *noteEntry
	editing string
}

func newBoard(comp *Compositor) *board {
	b := &board{comp: comp}
	b.entry = newNoteEntry(b)
	b.ExtendBaseWidget(b)
	return b
}

func (b *board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{b: b}
	r.raster = canvas.NewRaster(r.frame)
	return r
}

func (b *board) MinSize() fyne.Size { return fyne.NewSize(320, 240) }

func (b *board) Resize(s fyne.Size) {
	b.BaseWidget.Resize(s)
	if b.eng != nil {
		b.eng.SetViewport(float64(s.Width), float64(s.Height))
	}
}

// localPos converts a window canvas position into board coordinates.
func (b *board) localPos(p fyne.Position) vector.Pt {
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	return vector.Pt{X: float64(p.X - origin.X), Y: float64(p.Y - origin.Y)}
}

func pt(p fyne.Position) vector.Pt { return vector.Pt{X: float64(p.X), Y: float64(p.Y)} }

func modifiers(m fyne.KeyModifier) engine.Modifiers {
	var out engine.Modifiers
	if m&fyne.KeyModifierShift != 0 {
		out |= engine.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		out |= engine.ModCtrl
	}
	if m&fyne.KeyModifierAlt != 0 {
		out |= engine.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		out |= engine.ModSuper
	}
	return out
}

func (b *board) MouseDown(e *desktop.MouseEvent) {
	if b.eng == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	if b.eng.PointerDown(engine.Pointer{Pos: pt(e.Position), Target: engine.TargetCanvas, Mods: modifiers(e.Modifier)}) {
		_, editing := b.eng.Mode().(engine.EditingText)
		if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil && !editing {
			c.Focus(b)
		}
	}
}

func (b *board) MouseUp(e *desktop.MouseEvent) {
	if b.eng != nil && e.Button == desktop.MouseButtonPrimary {
		b.eng.PointerUp(pt(e.Position))
	}
}

func (b *board) MouseIn(*desktop.MouseEvent) {}
func (b *board) MouseOut()                   {}

func (b *board) MouseMoved(e *desktop.MouseEvent) {
	if b.eng != nil {
		b.eng.PointerMove(pt(e.Position))
	}
}

func (b *board) Dragged(e *fyne.DragEvent) {
	if b.eng != nil {
		b.eng.PointerMove(pt(e.Position))
	}
}

func (b *board) DragEnd() {}

func (b *board) DoubleTapped(e *fyne.PointEvent) {
	if b.eng != nil {
		b.eng.DoubleClick(pt(e.Position))
	}
}

// Scrolled zooms about the pointer. Fyne reports wheel-up as positive DY.
func (b *board) Scrolled(e *fyne.ScrollEvent) {
	if b.eng != nil {
		b.eng.Wheel(pt(e.Position), -float64(e.Scrolled.DY))
	}
}

func (b *board) FocusGained()     {}
func (b *board) FocusLost()       {}
func (b *board) TypedRune(r rune) {}

func (b *board) KeyDown(e *fyne.KeyEvent) { b.mods |= modifierFor(e.Name) }
func (b *board) KeyUp(e *fyne.KeyEvent)   { b.mods &^= modifierFor(e.Name) }

func modifierFor(k fyne.KeyName) fyne.KeyModifier {
	switch k {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		return fyne.KeyModifierShift
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		return fyne.KeyModifierControl
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		return fyne.KeyModifierAlt
	case desktop.KeySuperLeft, desktop.KeySuperRight:
		return fyne.KeyModifierSuper
	}
	return 0
}

func (b *board) TypedKey(e *fyne.KeyEvent) {
	if b.eng != nil {
		b.eng.HandleKey(engine.Key{Name: string(e.Name), Mods: modifiers(b.mods)})
	}
}

// TypedShortcut routes modifier chords to the engine keymap.
func (b *board) TypedShortcut(s fyne.Shortcut) {
	if b.eng == nil {
		return
	}
	if k, ok := shortcutKey(s); ok {
		b.eng.HandleKey(k)
	}
}

func shortcutKey(s fyne.Shortcut) (engine.Key, bool) {
	switch sc := s.(type) {
	case *fyne.ShortcutPaste:
		return engine.Key{Name: "v", Mods: engine.ModCtrl}, true
	case *fyne.ShortcutSelectAll:
		return engine.Key{Name: "a", Mods: engine.ModCtrl}, true
	case *desktop.CustomShortcut:
		return engine.Key{Name: string(sc.KeyName), Mods: modifiers(sc.Modifier)}, true
	}
	return engine.Key{}, false
}

// syncEditor shows the note editor over the text being edited.
func (b *board) syncEditor() {
	m, ok := b.eng.Mode().(engine.EditingText)
	if !ok {
		b.editing = ""
		b.entry.Hide()
		return
	}
	for _, v := range b.eng.Views() {
		if v.ID != m.ID {
			continue
		}
		r := v.Bounds
		b.entry.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
		b.entry.Resize(fyne.NewSize(float32(max(r.W, 120)), float32(max(r.H, 40))))
		break
	}
	if b.editing != m.ID {
		b.editing = m.ID
		b.entry.SetText(m.Draft)
		b.entry.Show()
		if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
			c.Focus(b.entry)
		}
	}
}

type boardRenderer struct {
	b      *board
	raster *canvas.Raster
}

func (r *boardRenderer) frame(w, h int) image.Image {
	b := r.b
	if b.eng == nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	scale := 1.0
	if lw := b.Size().Width; lw > 0 {
		scale = float64(w) / float64(lw)
	}
	views := b.eng.Views()
	var band *vector.Rect
	if sb, ok := b.eng.SelectionBox(); ok {
		rect := sb.Rect()
		band = &rect
	}
	b.comp.Prune(views)
	return b.comp.Frame(w, h, scale, views, band)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.raster.Move(fyne.NewPos(0, 0))
}

func (r *boardRenderer) MinSize() fyne.Size { return r.b.MinSize() }

func (r *boardRenderer) Refresh() {
	if r.b.eng != nil {
		r.b.syncEditor()
	}
	r.raster.Refresh()
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster, r.b.entry}
}

func (r *boardRenderer) Destroy() {}

// noteEntry edits a text note in place. Escape cancels, losing focus commits.
type noteEntry struct {
	widget.Entry
	b *board
}

func newNoteEntry(b *board) *noteEntry {
	e := &noteEntry{b: b}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	e.OnChanged = func(s string) {
		if b.eng != nil && b.editing != "" {
			b.eng.TypeText(s)
		}
	}
	e.Hide()
	return e
}

func (e *noteEntry) TypedKey(k *fyne.KeyEvent) {
	if k.Name == fyne.KeyEscape && e.b.eng != nil {
		e.b.eng.CancelEdit()
		return
	}
	e.Entry.TypedKey(k)
}

func (e *noteEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.b.eng != nil && e.b.editing != "" {
		e.b.eng.CommitEdit()
	}
}

// toastLayer stacks notifications in the bottom-right corner and slides them
// horizontally by their animation offset.
type toastLayer struct {
	widget.BaseWidget
	sink *toast.Sink
}

func newToastLayer(s *toast.Sink) *toastLayer {
	t := &toastLayer{sink: s}
	t.ExtendBaseWidget(t)
	return t
}

func (t *toastLayer) CreateRenderer() fyne.WidgetRenderer {
	return &toastRenderer{t: t}
}

type toastRenderer struct {
	t       *toastLayer
	objects []fyne.CanvasObject
}

const (
	toastW   = 280
	toastH   = 36
	toastGap = 8
)

func toastColor(l toast.Level) color.Color {
	switch l {
	case toast.Success:
		return color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xee}
	case toast.Error:
		return color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xee}
	}
	return color.NRGBA{R: 0x37, G: 0x47, B: 0x4f, A: 0xee}
}

func (r *toastRenderer) Layout(size fyne.Size) {
	r.objects = r.objects[:0]
	views := r.t.sink.Visible()
	y := size.Height - toastGap
	for i := len(views) - 1; i >= 0; i-- {
		v := views[i]
		y -= toastH
		x := size.Width - toastW - toastGap + v.Offset*(toastW+toastGap)
		bg := canvas.NewRectangle(toastColor(v.Level))
		bg.CornerRadius = 6
		bg.Resize(fyne.NewSize(toastW, toastH))
		bg.Move(fyne.NewPos(x, y))
		txt := canvas.NewText(v.Message, color.White)
		txt.TextSize = 13
		txt.Move(fyne.NewPos(x+12, y+(toastH-txt.MinSize().Height)/2))
		r.objects = append(r.objects, bg, txt)
		y -= toastGap
	}
}

func (r *toastRenderer) MinSize() fyne.Size           { return fyne.NewSize(0, 0) }
func (r *toastRenderer) Refresh()                     { r.Layout(r.t.Size()); canvas.Refresh(r.t) }
func (r *toastRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *toastRenderer) Destroy()                     {}

// toolbar holds the top controls and the collapsible tools column.
type toolbar struct {
	eng     *engine.Engine
	root    *fyne.Container
	tools   *fyne.Container
	opacity *widget.Slider
	pin     *widget.Check
	busy    *widget.ProgressBarInfinite
	zoom    *widget.Select
	syncing bool
}

var zoomLevels = []string{"25%", "50%", "100%", "200%", "400%"}

// parseZoom reads a "150%" style percentage.
func parseZoom(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")), 64)
	if err != nil || !(v > 0) {
		return 0, false
	}
	return v, true
}

func zoomLabel(percent float64) string { return fmt.Sprintf("%.0f%%", percent) }

func (t *toolbar) build(eng *engine.Engine, w fyne.Window) {
	t.eng = eng
	t.opacity = widget.NewSlider(settings.MinOpacity, 100)
	t.opacity.Step = 1
	t.opacity.OnChangeEnded = func(v float64) {
		if !t.syncing {
			eng.SetOpacity(int(v))
		}
	}
	t.pin = widget.NewCheck("On top", func(on bool) {
		if !t.syncing {
			eng.SetPinned(on)
		}
	})
	t.busy = widget.NewProgressBarInfinite()
	t.busy.Hide()
	t.zoom = widget.NewSelect(zoomLevels, func(v string) {
		if p, ok := parseZoom(v); ok && !t.syncing {
			eng.SetZoom(p)
		}
	})

	t.root = container.NewHBox(
		widget.NewButton("Open", eng.OpenImages),
		widget.NewButton("Paste", eng.Paste),
		widget.NewButton("Text", eng.AddTextAtCenter),
		widget.NewButton("Export", eng.ExportScene),
		widget.NewButton("Import", eng.ImportScene),
		widget.NewButton("Clear", func() {
			dialog.ShowConfirm("Clear board", "Remove every item from the board?", func(ok bool) {
				if ok {
					eng.Clear()
				}
			}, w)
		}),
		widget.NewButton("Tools", eng.ToggleTools),
		t.zoom,
		widget.NewButton("Fit", eng.FitAll),
		widget.NewLabel("Opacity"),
		container.NewGridWrap(fyne.NewSize(140, 36), t.opacity),
		t.pin,
		t.busy,
	)
	t.tools = container.NewVBox(
		widget.NewButton("Flip H", func() { eng.FlipH() }),
		widget.NewButton("Flip V", func() { eng.FlipV() }),
		widget.NewButton("Grayscale", func() { eng.ToggleGrayscale() }),
		widget.NewButton("Guides", func() { eng.ToggleGuides() }),
		widget.NewButton("Rotate", func() { eng.Rotate(engine.RotateStep) }),
		widget.NewButton("Colour", func() { eng.Recolor() }),
		widget.NewButton("Delete", func() { eng.DeleteSelected() }),
		widget.NewButton("Reset view", eng.ResetCamera),
	)
	t.sync()
}

// sync mirrors engine state into the controls without feeding it back.
func (t *toolbar) sync() {
	if t.eng == nil || t.root == nil {
		return
	}
	st := t.eng.State()
	t.syncing = true
	defer func() { t.syncing = false }()
	if int(t.opacity.Value) != st.Opacity {
		t.opacity.SetValue(float64(st.Opacity))
	}
	if t.pin.Checked != st.Pinned {
		t.pin.SetChecked(st.Pinned)
	}
	if z := zoomLabel(t.eng.ZoomPercent()); t.zoom.PlaceHolder != z || t.zoom.Selected != "" {
		t.zoom.ClearSelected()
		t.zoom.PlaceHolder = z
		t.zoom.Refresh()
	}
	setVisible(t.busy, st.Busy > 0)
	setVisible(t.root, st.UIVisible)
	setVisible(t.tools, st.UIVisible && st.ToolsOpen)
}

func setVisible(o fyne.CanvasObject, on bool) {
	if on && !o.Visible() {
		o.Show()
	} else if !on && o.Visible() {
		o.Hide()
	}
}

// desktopHost adapts fyne to the host collaborators. Fyne exposes neither
// window opacity nor always-on-top, so those report ErrUnsupported.
type desktopHost struct {
	app fyne.App
	win fyne.Window
}

func (*desktopHost) SetWindowOpacity(float64) error { return host.ErrUnsupported }
func (*desktopHost) SetAlwaysOnTop(bool) error      { return host.ErrUnsupported }

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff"}

// open shows a file-open dialog on the UI thread and waits for the choice.
func (h *desktopHost) open(ctx context.Context, exts []string) (host.File, error) {
	type result struct {
		f   host.File
		err error
	}
	ch := make(chan result, 1)
	fyne.Do(func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				ch <- result{err: err}
				return
			}
			if rc == nil {
				ch <- result{err: host.ErrCanceled}
				return
			}
			uri := rc.URI()
			_ = rc.Close()
			go func() {
				f, err := readURI(uri)
				ch <- result{f: f, err: err}
			}()
		}, h.win)
		fd.SetFilter(fstorage.NewExtensionFileFilter(exts))
		fd.Show()
	})
	select {
	case r := <-ch:
		return r.f, r.err
	case <-ctx.Done():
		return host.File{}, ctx.Err()
	}
}

func (h *desktopHost) PickImages(ctx context.Context) ([]host.File, error) {
	f, err := h.open(ctx, imageExtensions)
	if err != nil {
		return nil, err
	}
	return []host.File{f}, nil
}

func (h *desktopHost) PickJSON(ctx context.Context) (host.File, error) {
	return h.open(ctx, []string{".json"})
}

func (h *desktopHost) SaveFile(ctx context.Context, suggestedName, _ string, data []byte) error {
	ch := make(chan error, 1)
	fyne.Do(func() {
		fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil {
				ch <- err
				return
			}
			if wc == nil {
				ch <- host.ErrCanceled
				return
			}
			_, werr := wc.Write(data)
			ch <- errors.Join(werr, wc.Close())
		}, h.win)
		fd.SetFileName(suggestedName)
		fd.SetFilter(fstorage.NewExtensionFileFilter([]string{filepath.Ext(suggestedName)}))
		fd.Show()
	})
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Read exposes the text clipboard. A data URI holding an image is surfaced
// as image content so pasting a copied image link works.
func (h *desktopHost) Read(ctx context.Context) ([]host.ClipboardItem, error) {
	ch := make(chan string, 1)
	fyne.Do(func() { ch <- h.app.Clipboard().Content() })
	var text string
	select {
	case text = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return clipboardItems(text), nil
}

func clipboardItems(text string) []host.ClipboardItem {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if mime, data, err := media.ParseDataURI(text); err == nil && media.IsImageMIME(mime) {
		return []host.ClipboardItem{{Types: []string{mime}, Data: map[string][]byte{mime: data}}}
	}
	return []host.ClipboardItem{{Types: []string{"text/plain"}, Data: map[string][]byte{"text/plain": []byte(text)}}}
}
