/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import "strings"

// Key is a key press: a lower-case key name ("a", "+", "delete", "escape")
// plus the modifiers held.
type Key struct {
	Name string
	Mods Modifiers
}

type chord struct {
	name string
	mods Modifiers
}

// keymap binds chords to engine actions. Shift is ignored for printable
// shortcuts unless a chord names it explicitly.
var keymap = map[chord]func(*Engine){
	{"delete", 0}:    func(e *Engine) { e.DeleteSelected() },
	{"backspace", 0}: func(e *Engine) { e.DeleteSelected() },
	{"escape", 0}:    func(e *Engine) { e.ClearSelection() },
	{"tab", 0}:       func(e *Engine) { e.ToggleUI() },

	{"h", 0}: func(e *Engine) { e.FlipH() },
	{"v", 0}: func(e *Engine) { e.FlipV() },
	{"g", 0}: func(e *Engine) { e.ToggleGrayscale() },
	{"l", 0}: func(e *Engine) { e.ToggleGuides() },
	{"c", 0}: func(e *Engine) { e.Recolor() },
	{"]", 0}: func(e *Engine) { e.ResizeFont(1) },
	{"[", 0}: func(e *Engine) { e.ResizeFont(-1) },
	{"e", 0}: func(e *Engine) { e.Rotate(RotateStep) },
	{"q", 0}: func(e *Engine) { e.Rotate(-RotateStep) },
	{".", 0}: func(e *Engine) { e.ScaleItems(ScaleStep) },
	{",", 0}: func(e *Engine) { e.ScaleItems(1 / ScaleStep) },
	{"t", 0}: func(e *Engine) { e.AddTextAtCenter() },

	{"r", 0}: func(e *Engine) { e.ResetCamera() },
	{"0", 0}: func(e *Engine) { e.ResetCamera() },
	{"+", 0}: func(e *Engine) { e.ZoomIn() },
	{"=", 0}: func(e *Engine) { e.ZoomIn() },
	{"-", 0}: func(e *Engine) { e.ZoomOut() },
	{"1", 0}: func(e *Engine) { e.SetZoom(100) },
	{"2", 0}: func(e *Engine) { e.SetZoom(200) },
	{"f", 0}: func(e *Engine) { e.FitAll() },

	{"a", ModCtrl}:            func(e *Engine) { e.SelectAll() },
	{"v", ModCtrl}:            func(e *Engine) { e.Paste() },
	{"o", ModCtrl}:            func(e *Engine) { e.OpenImages() },
	{"s", ModCtrl}:            func(e *Engine) { e.ExportScene() },
	{"o", ModCtrl | ModShift}: func(e *Engine) { e.ImportScene() },
}

// HandleKey runs the shortcut bound to k and reports whether one matched.
// Keys are ignored while a note is being edited; the editor gets them.
func (e *Engine) HandleKey(k Key) bool {
	if _, editing := e.mode.(EditingText); editing {
		return false
	}
	name := strings.ToLower(strings.TrimSpace(k.Name))
	mods := k.Mods &^ ModAlt
	if mods.Has(ModSuper) {
		// Cmd on macOS acts as Ctrl
		mods = mods&^ModSuper | ModCtrl
	}
	action, ok := keymap[chord{name, mods}]
	if !ok && mods == ModShift {
		// "+" usually arrives with shift held
		action, ok = keymap[chord{name, 0}]
	}
	if !ok {
		return false
	}
	action(e)
	return true
}
