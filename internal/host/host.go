/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package host declares the collaborators the canvas core consumes from the
// desktop environment: window chrome, file dialogs and the clipboard.
package host

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrCanceled is returned when the user closes a dialog without choosing.
	ErrCanceled = errors.New("dialog canceled")
	// ErrUnsupported is returned by hosts that lack a capability.
	ErrUnsupported = errors.New("not supported by host")
)

// Shell controls the application window. Calls are fire-and-forget from the
// caller's point of view; errors are only reported.
type Shell interface {
	SetWindowOpacity(fraction float64) error
	SetAlwaysOnTop(on bool) error
}

// File is a named blob returned by a dialog or dropped onto the window.
type File struct {
	Name string
	MIME string // may be empty
	Data []byte
}

// Dialogs opens native file pickers.
type Dialogs interface {
	PickImages(ctx context.Context) ([]File, error)
	PickJSON(ctx context.Context) (File, error)
	SaveFile(ctx context.Context, suggestedName, mime string, data []byte) error
}

// ClipboardItem is one entry of the clipboard with its data keyed by MIME type.
type ClipboardItem struct {
	Types []string
	Data  map[string][]byte
}

// Clipboard reads the system clipboard.
type Clipboard interface {
	Read(ctx context.Context) ([]ClipboardItem, error)
}

// FirstImage returns the first clipboard entry carrying image content, with
// the matching MIME type and bytes.
func FirstImage(items []ClipboardItem) (mime string, data []byte, ok bool) {
	for _, it := range items {
		for _, t := range it.Types {
			if strings.HasPrefix(strings.ToLower(t), "image/") {
				if b := it.Data[t]; len(b) > 0 {
					return t, b, true
				}
			}
		}
	}
	return "", nil, false
}

// Nop implements every collaborator and reports ErrUnsupported. Headless
// commands and tests use it.
type Nop struct{}

func (Nop) SetWindowOpacity(float64) error                { return ErrUnsupported }
func (Nop) SetAlwaysOnTop(bool) error                     { return ErrUnsupported }
func (Nop) PickImages(context.Context) ([]File, error)    { return nil, ErrUnsupported }
func (Nop) PickJSON(context.Context) (File, error)        { return File{}, ErrUnsupported }
func (Nop) Read(context.Context) ([]ClipboardItem, error) { return nil, ErrUnsupported }
func (Nop) SaveFile(context.Context, string, string, []byte) error {
	return ErrUnsupported
}
