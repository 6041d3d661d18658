/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package toast is the transient notification queue. Toasts slide in, stay
// for a fixed lifetime and slide out; the display drives time through Update.
package toast

import (
	"fmt"
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	applog "inspiraview/internal/log"
)

type Level int

const (
	Info Level = iota
	Success
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

const (
	Lifetime   float32 = 3.0 // seconds a toast stays fully visible
	SlideTime  float32 = 0.3
	MaxVisible         = 5
)

type phase int

const (
	entering phase = iota
	shown
	leaving
)

type entry struct {
	id    int
	level Level
	msg   string
	phase phase
	age   float32
	slide *gween.Tween
	off   float32
}

// View is the display state of one toast. Offset is 1 when fully off-screen
// and 0 when fully slid in.
type View struct {
	ID      int
	Level   Level
	Message string
	Offset  float32
}

// Sink queues toasts. Safe for concurrent use.
type Sink struct {
	mu       sync.Mutex
	next     int
	entries  []*entry
	onChange func()
}

func New() *Sink { return &Sink{} }

// OnChange registers fn to be called after every push or visible change.
func (s *Sink) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Notify queues a toast and returns its id. The oldest toast is dropped when
// more than MaxVisible are queued.
func (s *Sink) Notify(level Level, msg string) int {
	s.mu.Lock()
	s.next++
	e := &entry{id: s.next, level: level, msg: msg, phase: entering, off: 1,
		slide: gween.New(1, 0, SlideTime, ease.OutCubic)}
	s.entries = append(s.entries, e)
	if len(s.entries) > MaxVisible {
		s.entries = s.entries[len(s.entries)-MaxVisible:]
	}
	cb := s.onChange
	s.mu.Unlock()

	applog.WithComponent("toast").Debug("notify", "level", level.String(), "msg", msg)
	if cb != nil {
		cb()
	}
	return e.id
}

func (s *Sink) Infof(format string, args ...any) int {
	return s.Notify(Info, fmt.Sprintf(format, args...))
}

func (s *Sink) Successf(format string, args ...any) int {
	return s.Notify(Success, fmt.Sprintf(format, args...))
}

func (s *Sink) Errorf(format string, args ...any) int {
	return s.Notify(Error, fmt.Sprintf(format, args...))
}

// Dismiss starts the slide-out of the toast with id.
func (s *Sink) Dismiss(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.id == id && e.phase != leaving {
			e.startLeaving()
		}
	}
}

func (e *entry) startLeaving() {
	e.phase = leaving
	e.slide = gween.New(e.off, 1, SlideTime, ease.InCubic)
}

// Update advances all toasts by dt seconds and reports whether any are left.
func (s *Sink) Update(dt float32) bool {
	s.mu.Lock()
	kept := s.entries[:0]
	changed := false
	for _, e := range s.entries {
		if e.advance(dt) {
			kept = append(kept, e)
		} else {
			changed = true
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept
	live := len(kept) > 0
	cb := s.onChange
	s.mu.Unlock()
	if changed && cb != nil {
		cb()
	}
	return live
}

// advance returns false once the toast has fully slid out.
func (e *entry) advance(dt float32) bool {
	switch e.phase {
	case entering:
		v, done := e.slide.Update(dt)
		e.off = v
		if done {
			e.phase = shown
		}
	case shown:
		e.age += dt
		if e.age >= Lifetime {
			e.startLeaving()
		}
	case leaving:
		v, done := e.slide.Update(dt)
		e.off = v
		if done {
			return false
		}
	}
	return true
}

// Visible returns the queued toasts, oldest first.
func (s *Sink) Visible() []View {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]View, len(s.entries))
	for i, e := range s.entries {
		out[i] = View{ID: e.id, Level: e.level, Message: e.msg, Offset: e.off}
	}
	return out
}
