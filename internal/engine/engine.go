/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package engine is the interaction core of the moodboard. It owns the scene,
// the camera and the interaction mode, and turns pointer, wheel and keyboard
// input into mutations.
//
// An Engine is single-threaded: every exported method except Post must be
// called from the goroutine that drains it (Drain, Run, or the host's main
// thread when Options.Schedule is set). Background work posts exactly one
// mutation back when it completes.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"inspiraview/internal/camera"
	"inspiraview/internal/domain"
	"inspiraview/internal/host"
	applog "inspiraview/internal/log"
	"inspiraview/internal/render"
	"inspiraview/internal/scene"
	"inspiraview/internal/settings"
	"inspiraview/internal/telemetry"
	"inspiraview/internal/textlayout"
	"inspiraview/internal/toast"
	"inspiraview/internal/vector"
)

// Saver receives every scene or camera change; *persist.Autosaver implements it.
type Saver interface {
	Touch(items []domain.Item, cam camera.Camera)
}

// WindowSettings persists window preferences; *settings.File implements it.
type WindowSettings interface {
	SaveOpacity(percent int) error
	SavePinned(on bool) error
}

// Options wires an Engine to its collaborators. Nil fields get inert defaults.
type Options struct {
	Context   context.Context
	Layout    textlayout.Layouter
	Toasts    *toast.Sink
	Autosave  Saver
	Settings  WindowSettings
	Shell     host.Shell
	Dialogs   host.Dialogs
	Clipboard host.Clipboard
	Telemetry telemetry.Recorder
	// Schedule runs fn on the engine's thread. When nil, posted work is queued
	// until Drain or Run picks it up.
	Schedule func(fn func())
	// OnChange is called on the engine's thread after anything visible changed.
	OnChange func()
	Now      func() time.Time
}

type Engine struct {
	store *scene.Store
	cam   camera.Camera
	mode  Mode
	state AppState

	proj    *render.Projector
	toasts  *toast.Sink
	saver   Saver
	prefs   WindowSettings
	shell   host.Shell
	dialogs host.Dialogs
	clip    host.Clipboard
	tel     telemetry.Recorder
	now     func() time.Time
	log     *slog.Logger

	onChange func()
	schedule func(func())

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	qmu    sync.Mutex
	queue  []func()
	wakeup chan struct{}
}

func New(opts Options) *Engine {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	e := &Engine{
		store:    scene.New(),
		cam:      camera.New(),
		mode:     Idle{},
		state:    AppState{UIVisible: true, Opacity: settings.DefaultOpacity},
		proj:     render.New(opts.Layout),
		toasts:   opts.Toasts,
		saver:    opts.Autosave,
		prefs:    opts.Settings,
		shell:    opts.Shell,
		dialogs:  opts.Dialogs,
		clip:     opts.Clipboard,
		tel:      opts.Telemetry,
		now:      opts.Now,
		log:      applog.WithComponent("engine"),
		onChange: opts.OnChange,
		schedule: opts.Schedule,
		ctx:      ctx,
		cancel:   cancel,
		wakeup:   make(chan struct{}, 1),
	}
	if e.toasts == nil {
		e.toasts = toast.New()
	}
	if e.shell == nil {
		e.shell = host.Nop{}
	}
	if e.dialogs == nil {
		e.dialogs = host.Nop{}
	}
	if e.clip == nil {
		e.clip = host.Nop{}
	}
	if e.tel == nil {
		e.tel = telemetry.Nop{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Restore installs a previously saved scene and camera without triggering an
// autosave. Call it before the engine starts handling input.
func (e *Engine) Restore(items []domain.Item, cam *camera.Camera) {
	e.store.Replace(items)
	e.cam = camera.New()
	if cam != nil {
		e.cam = cam.Sanitize()
	}
	e.mode = Idle{}
	e.log.Info("session restored", slog.Int("items", e.store.Len()), slog.Float64("scale", e.cam.Scale))
	e.notify()
}

func (e *Engine) Mode() Mode                   { return e.mode }
func (e *Engine) State() AppState              { return e.state }
func (e *Engine) Camera() camera.Camera        { return e.cam }
func (e *Engine) Toasts() *toast.Sink          { return e.toasts }
func (e *Engine) Len() int                     { return e.store.Len() }
func (e *Engine) Items() []domain.Item         { return e.store.Snapshot() }
func (e *Engine) SelectedIDs() []string        { return e.store.Selected() }
func (e *Engine) Projector() *render.Projector { return e.proj }

// Item returns a copy of the item with id.
func (e *Engine) Item(id string) (domain.Item, bool) {
	it, ok := e.store.Get(id)
	if !ok {
		return nil, false
	}
	return it.Clone(), true
}

// EditState reports the text item being edited, if any.
func (e *Engine) EditState() render.EditState {
	if m, ok := e.mode.(EditingText); ok {
		return render.EditState{ID: m.ID, Draft: m.Draft}
	}
	return render.EditState{}
}

// SelectionBox returns the rubber band while one is being drawn.
func (e *Engine) SelectionBox() (SelectionBox, bool) {
	if m, ok := e.mode.(RubberBand); ok {
		return m.Box, true
	}
	return SelectionBox{}, false
}

// Views projects the scene for display, bottom to top.
func (e *Engine) Views() []render.View {
	return e.proj.Scene(e.store.Items(), e.cam, e.EditState())
}

// HitTest returns the id of the topmost item under the screen point.
func (e *Engine) HitTest(p vector.Pt) (string, bool) {
	return render.HitTest(e.Views(), p)
}

func (e *Engine) setMode(m Mode) {
	if e.mode.String() != m.String() {
		e.log.Debug("mode", slog.String("from", e.mode.String()), slog.String("to", m.String()))
	}
	e.mode = m
}

// notify tells the host to redraw.
func (e *Engine) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}

// changed records a scene or camera mutation: schedules an autosave and redraws.
func (e *Engine) changed() {
	if e.saver != nil {
		e.saver.Touch(e.store.Items(), e.cam)
	}
	e.notify()
}

// viewportCenter is the middle of the canvas in screen coordinates.
func (e *Engine) viewportCenter() vector.Pt {
	return vector.Pt{X: e.state.Viewport.W / 2, Y: e.state.Viewport.H / 2}
}

// Post queues fn to run on the engine's thread. Safe from any goroutine.
func (e *Engine) Post(fn func()) {
	if e.schedule != nil {
		e.schedule(fn)
		return
	}
	e.qmu.Lock()
	e.queue = append(e.queue, fn)
	e.qmu.Unlock()
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

// Drain runs every queued function and returns how many ran.
func (e *Engine) Drain() int {
	n := 0
	for {
		e.qmu.Lock()
		q := e.queue
		e.queue = nil
		e.qmu.Unlock()
		if len(q) == 0 {
			return n
		}
		for _, fn := range q {
			fn()
			n++
		}
	}
}

// Run drains posted work until ctx is done.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.wakeup:
			e.Drain()
		}
	}
}

// Wait blocks until background tasks have posted their results.
func (e *Engine) Wait() { e.wg.Wait() }

// Close cancels background tasks and waits for them. Posted results that
// were not drained are dropped.
func (e *Engine) Close() {
	e.cancel()
	e.wg.Wait()
}

// async runs work off the engine's thread and applies the mutation it returns
// on the engine's thread. A nil mutation only updates the busy count.
func (e *Engine) async(op string, work func(ctx context.Context) func()) {
	e.state.Busy++
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		apply := work(applog.ContextWith(e.ctx, slog.String("op", op)))
		e.Post(func() {
			e.state.Busy--
			if apply != nil {
				apply()
			}
			e.notify()
		})
	}()
}

// SetViewport records the canvas size in screen pixels.
func (e *Engine) SetViewport(w, h float64) {
	e.state.Viewport = vector.Size{W: max(0, w), H: max(0, h)}
}

// ToggleUI shows or hides the toolbars.
func (e *Engine) ToggleUI() {
	e.state.UIVisible = !e.state.UIVisible
	e.notify()
}

// ToggleTools opens or closes the compact tools popup.
func (e *Engine) ToggleTools() {
	e.state.ToolsOpen = !e.state.ToolsOpen
	e.notify()
}

// SetDropHover flags files being dragged over the window.
func (e *Engine) SetDropHover(on bool) {
	if e.state.DropHover == on {
		return
	}
	e.state.DropHover = on
	e.notify()
}

func (e *Engine) event(name string, props map[string]any) { e.tel.Event(name, props) }
