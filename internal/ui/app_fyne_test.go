//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne glue. They are gated behind the "fyne" build
// tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"bytes"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"inspiraview/internal/engine"
	"inspiraview/internal/host"
	"inspiraview/internal/media"
)

func TestModifiers_Translate(t *testing.T) {
	got := modifiers(fyne.KeyModifierShift | fyne.KeyModifierAlt)
	if !got.Has(engine.ModShift) || !got.Has(engine.ModAlt) || got.Has(engine.ModCtrl) {
		t.Fatalf("modifiers = %v", got)
	}
	if modifiers(0) != 0 {
		t.Fatal("expected no modifiers")
	}
}

func TestModifierFor_TracksHeldKeys(t *testing.T) {
	var held fyne.KeyModifier
	held |= modifierFor(desktop.KeyShiftLeft)
	held |= modifierFor(desktop.KeyAltRight)
	held |= modifierFor(fyne.KeyA)
	if held != fyne.KeyModifierShift|fyne.KeyModifierAlt {
		t.Fatalf("held = %v", held)
	}
	held &^= modifierFor(desktop.KeyShiftLeft)
	if held != fyne.KeyModifierAlt {
		t.Fatalf("after release held = %v", held)
	}
}

func TestShortcutKey(t *testing.T) {
	cases := []struct {
		in   fyne.Shortcut
		want engine.Key
	}{
		{&fyne.ShortcutPaste{}, engine.Key{Name: "v", Mods: engine.ModCtrl}},
		{&fyne.ShortcutSelectAll{}, engine.Key{Name: "a", Mods: engine.ModCtrl}},
		{&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl | fyne.KeyModifierShift},
			engine.Key{Name: "O", Mods: engine.ModCtrl | engine.ModShift}},
	}
	for _, c := range cases {
		got, ok := shortcutKey(c.in)
		if !ok || got != c.want {
			t.Fatalf("shortcutKey(%T) = %+v, %v; want %+v", c.in, got, ok, c.want)
		}
	}
	if _, ok := shortcutKey(&fyne.ShortcutCopy{}); ok {
		t.Fatal("copy should not map to a key")
	}
}

func TestClipboardItems(t *testing.T) {
	if items := clipboardItems("   "); items != nil {
		t.Fatalf("blank clipboard = %v, want nil", items)
	}
	png := []byte{0x89, 'P', 'N', 'G'}
	items := clipboardItems(media.DataURI("image/png", png))
	mime, data, ok := host.FirstImage(items)
	if !ok || mime != "image/png" || !bytes.Equal(data, png) {
		t.Fatalf("FirstImage = %q, %v, %v", mime, data, ok)
	}
	if _, _, ok := host.FirstImage(clipboardItems("hello")); ok {
		t.Fatal("plain text must not count as an image")
	}
}

func TestParseZoom(t *testing.T) {
	for _, lvl := range zoomLevels {
		if _, ok := parseZoom(lvl); !ok {
			t.Fatalf("zoom level %q does not parse", lvl)
		}
	}
	if v, ok := parseZoom(" 150 % "); !ok || v != 150 {
		t.Fatalf("parseZoom = %v %v", v, ok)
	}
	for _, bad := range []string{"", "%", "-5%", "0%", "abc"} {
		if _, ok := parseZoom(bad); ok {
			t.Fatalf("parseZoom(%q) accepted", bad)
		}
	}
	if got := zoomLabel(249.6); got != "250%" {
		t.Fatalf("zoomLabel = %q", got)
	}
}
