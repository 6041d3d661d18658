/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"fmt"

	"inspiraview/internal/vector"
)

// Mode is the interaction state. Exactly one is active; the concrete types
// below are the only implementations.
type Mode interface {
	fmt.Stringer
	mode()
}

// Idle waits for the next gesture.
type Idle struct{}

// Panning moves the camera with the pointer.
type Panning struct {
	Last vector.Pt
}

// DraggingItems moves every selected item with the pointer.
type DraggingItems struct {
	Start vector.Pt
	Last  vector.Pt
}

// RubberBand draws a selection box in screen coordinates.
type RubberBand struct {
	Box SelectionBox
}

// EditingText edits the content of one text item. Draft holds the
// uncommitted text.
type EditingText struct {
	ID    string
	Draft string
}

func (Idle) mode()          {}
func (Panning) mode()       {}
func (DraggingItems) mode() {}
func (RubberBand) mode()    {}
func (EditingText) mode()   {}

func (Idle) String() string          { return "idle" }
func (Panning) String() string       { return "panning" }
func (DraggingItems) String() string { return "dragging" }
func (RubberBand) String() string    { return "rubber-band" }
func (m EditingText) String() string { return "editing(" + m.ID + ")" }

// SelectionBox is the rubber band: the corner where the gesture started and
// where the pointer is now, both in screen coordinates.
type SelectionBox struct {
	Start   vector.Pt
	Current vector.Pt
}

func (b SelectionBox) Rect() vector.Rect { return vector.FromCorners(b.Start, b.Current) }

// MinBoxDrag is the size, in screen pixels, a rubber band must exceed on at
// least one axis before it selects anything.
const MinBoxDrag = 5.0

// AppState holds presentation state that is orthogonal to the interaction mode.
type AppState struct {
	Viewport  vector.Size // canvas size in screen pixels
	UIVisible bool        // toolbars shown
	ToolsOpen bool        // compact tools popup
	DropHover bool        // files dragged over the window
	Opacity   int         // window opacity in percent
	Pinned    bool        // always on top
	Busy      int         // background tasks in flight
}

// Target is what a pointer-down landed on, as far as the host can tell.
type Target int

const (
	TargetCanvas Target = iota
	TargetChrome        // toolbars, menus, dialogs
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// Additive and box-select modifiers for pointer gestures.
const (
	AdditiveModifier  = ModShift
	BoxSelectModifier = ModAlt
)

// Pointer is a pointer-down event.
type Pointer struct {
	Pos    vector.Pt
	Target Target
	Mods   Modifiers
}
