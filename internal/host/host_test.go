/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package host

import (
	"context"
	"errors"
	"testing"
)

func TestFirstImagePicksFirstImageEntry(t *testing.T) {
	items := []ClipboardItem{
		{Types: []string{"text/plain"}, Data: map[string][]byte{"text/plain": []byte("hi")}},
		{Types: []string{"text/html", "image/png"}, Data: map[string][]byte{"image/png": {1, 2}}},
		{Types: []string{"image/jpeg"}, Data: map[string][]byte{"image/jpeg": {3}}},
	}
	mime, data, ok := FirstImage(items)
	if !ok || mime != "image/png" || len(data) != 2 {
		t.Fatalf("FirstImage = %q, %v, %v", mime, data, ok)
	}
	if _, _, ok := FirstImage(items[:1]); ok {
		t.Fatalf("text-only clipboard reported an image")
	}
}

func TestNopIsUnsupported(t *testing.T) {
	var n Nop
	var s Shell = n
	var d Dialogs = n
	var c Clipboard = n
	if err := s.SetAlwaysOnTop(true); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("SetAlwaysOnTop err = %v", err)
	}
	if _, err := d.PickJSON(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("PickJSON err = %v", err)
	}
	if _, err := c.Read(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Read err = %v", err)
	}
}
