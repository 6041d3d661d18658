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
	"log/slog"

	"inspiraview/internal/settings"
)

// SetOpacity sets the window opacity in percent, clamped to the allowed range.
// Host failures are logged only.
func (e *Engine) SetOpacity(percent int) {
	p := settings.ClampOpacity(percent)
	e.state.Opacity = p
	e.notify()
	e.async("opacity", func(context.Context) func() {
		if err := e.shell.SetWindowOpacity(float64(p) / 100); err != nil {
			e.log.Warn("window opacity unavailable", slog.Int("percent", p), slog.Any("err", err))
		}
		if e.prefs != nil {
			if err := e.prefs.SaveOpacity(p); err != nil {
				e.log.Warn("opacity not saved", slog.Any("err", err))
			}
		}
		return nil
	})
}

// SetPinned keeps the window above others. If the host refuses, the flag
// reverts and the user is told.
func (e *Engine) SetPinned(on bool) {
	e.state.Pinned = on
	e.notify()
	e.async("pin", func(context.Context) func() {
		if err := e.shell.SetAlwaysOnTop(on); err != nil {
			e.log.Warn("always-on-top unavailable", slog.Bool("on", on), slog.Any("err", err))
			return func() {
				if e.state.Pinned == on {
					e.state.Pinned = !on
				}
				e.toasts.Infof("Always on top is not available")
			}
		}
		if e.prefs != nil {
			if err := e.prefs.SavePinned(on); err != nil {
				e.log.Warn("pinned not saved", slog.Any("err", err))
			}
		}
		return nil
	})
}

// TogglePinned flips the always-on-top flag.
func (e *Engine) TogglePinned() { e.SetPinned(!e.state.Pinned) }

// ApplyWindowSettings re-applies stored opacity and pin state at start-up.
func (e *Engine) ApplyWindowSettings(s settings.Settings) {
	if s.Opacity != nil && *s.Opacity != e.state.Opacity {
		e.SetOpacity(*s.Opacity)
	}
	if s.Pinned != nil && *s.Pinned {
		e.SetPinned(true)
	}
}
