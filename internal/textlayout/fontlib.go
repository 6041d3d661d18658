/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// OTProvider builds opentype faces at the requested pixel size and caches
// them per size. Safe for concurrent use.
type OTProvider struct {
	font     *opentype.Font
	fallback Provider

	mu    sync.Mutex
	faces map[int]font.Face
}

// NewGoRegular returns a provider backed by the embedded Go Regular font.
func NewGoRegular() (*OTProvider, error) {
	return newOTProvider(goregular.TTF)
}

// LoadFontFile parses a TrueType/OpenType font from path.
func LoadFontFile(path string) (*OTProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	p, err := newOTProvider(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return p, nil
}

func newOTProvider(data []byte) (*OTProvider, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &OTProvider{font: f, fallback: BasicProvider{}, faces: make(map[int]font.Face)}, nil
}

// Resolve rounds the size to whole pixels so the face cache stays small.
func (p *OTProvider) Resolve(sizePx float64) (font.Face, float64) {
	if sizePx <= 0 {
		sizePx = 12
	}
	key := int(math.Round(sizePx))
	if key < 1 {
		key = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if f, ok := p.faces[key]; ok {
		return f, sizePx / float64(key)
	}
	face, err := opentype.NewFace(p.font, &opentype.FaceOptions{Size: float64(key), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return p.fallback.Resolve(sizePx)
	}
	p.faces[key] = face
	return face, sizePx / float64(key)
}

// Default returns a Go Regular provider, or the basic font when parsing fails.
func Default() Provider {
	if p, err := NewGoRegular(); err == nil {
		return p
	}
	return BasicProvider{}
}
