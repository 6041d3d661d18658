/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	data := pngBytes(t, 30, 12)
	d, err := Decode("shot.bin", "", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Width != 30 || d.Height != 12 {
		t.Fatalf("size = %dx%d, want 30x12", d.Width, d.Height)
	}
	if d.MIME != "image/png" || !strings.HasPrefix(d.Src, "data:image/png;base64,") {
		t.Fatalf("MIME = %q, Src prefix = %q", d.MIME, d.Src[:min(30, len(d.Src))])
	}
	mime, back, err := ParseDataURI(d.Src)
	if err != nil || mime != "image/png" || !bytes.Equal(back, data) {
		t.Fatalf("ParseDataURI = %q, %d bytes, %v", mime, len(back), err)
	}
}

func TestDecodeRejectsNonImage(t *testing.T) {
	if _, err := Decode("notes.txt", "text/plain", []byte("hello")); !errors.Is(err, ErrNotImage) {
		t.Fatalf("err = %v, want ErrNotImage", err)
	}
	if _, err := Decode("empty.png", "", nil); !errors.Is(err, ErrNotImage) {
		t.Fatalf("err = %v, want ErrNotImage", err)
	}
}

func TestMIMEFromName(t *testing.T) {
	cases := map[string]string{
		"a.PNG":     "image/png",
		"b.jpeg":    "image/jpeg",
		"c.webp":    "image/webp",
		"d.tiff":    "image/tiff",
		"e":         "image/jpeg",
		"f.unknown": "image/jpeg",
	}
	for name, want := range cases {
		if got := MIMEFromName(name); got != want {
			t.Fatalf("MIMEFromName(%q) = %q, want %q", name, got, want)
		}
	}
	if !IsImageName("x.gif") || IsImageName("x.json") {
		t.Fatalf("IsImageName mismatch")
	}
	if !IsImageMIME(" Image/PNG") || IsImageMIME("text/html") {
		t.Fatalf("IsImageMIME mismatch")
	}
}
