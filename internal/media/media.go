/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package media turns raw image bytes into canvas image sources: it sniffs the
// format, measures the natural size with EXIF orientation applied and encodes
// the bytes as a data URI.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrNotImage is returned for payloads that are not a decodable image.
var ErrNotImage = errors.New("not an image")

var extMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// MIMEFromName guesses an image MIME type from a file name, defaulting to image/jpeg.
func MIMEFromName(name string) string {
	if m, ok := extMIME[strings.ToLower(filepath.Ext(name))]; ok {
		return m
	}
	return "image/jpeg"
}

// IsImageName reports whether name has a known image extension.
func IsImageName(name string) bool {
	_, ok := extMIME[strings.ToLower(filepath.Ext(name))]
	return ok
}

// IsImageMIME reports whether a MIME type denotes image content.
func IsImageMIME(mime string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mime)), "image/")
}

// Decoded is an image ready to be placed on the canvas.
type Decoded struct {
	Src    string // data URI
	MIME   string
	Width  int
	Height int
	Image  image.Image
}

// Decode decodes data, applying EXIF orientation. mime may be empty, in which
// case it is derived from the sniffed format or from name.
func Decode(name, mime string, data []byte) (Decoded, error) {
	if len(data) == 0 {
		return Decoded{}, fmt.Errorf("%s: %w: empty payload", name, ErrNotImage)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Decoded{}, fmt.Errorf("%s: %w: %v", name, ErrNotImage, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Decoded{}, fmt.Errorf("%s: %w: %v", name, ErrNotImage, err)
	}
	if !IsImageMIME(mime) {
		mime = "image/" + format
		if format == "" {
			mime = MIMEFromName(name)
		}
	}
	b := img.Bounds()
	return Decoded{
		Src:    DataURI(mime, data),
		MIME:   mime,
		Width:  b.Dx(),
		Height: b.Dy(),
		Image:  img,
	}, nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI returns the MIME type and bytes of a base64 data URI.
func ParseDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri without payload")
	}
	mime, isB64 := strings.CutSuffix(meta, ";base64")
	if !isB64 {
		return mime, []byte(payload), nil
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data uri: %w", err)
	}
	return mime, data, nil
}
