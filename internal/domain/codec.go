/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotArray is returned when a scene payload's top-level value is not a JSON array.
	ErrNotArray = errors.New("scene is not a JSON array")
	// ErrUnknownKind is returned for items whose type cannot be determined.
	ErrUnknownKind = errors.New("unknown item type")
	// ErrInvalidItem is returned for items with out-of-range fields.
	ErrInvalidItem = errors.New("invalid item")
)

type (
	plainImage Image
	plainText  Text
)

func (i *Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plainImage
	}{KindImage, (*plainImage)(i)})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plainText
	}{KindText, (*plainText)(t)})
}

// EncodeItems serializes items as a bare JSON array in scene order.
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return b, nil
}

// DecodeItems parses a bare JSON array of items. Items without an id get a
// fresh one and duplicate ids are reassigned so ids stay unique in the scene.
func DecodeItems(data []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	out := make([]Item, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		it, err := UnmarshalItem(raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		b := it.Common()
		if _, dup := seen[b.ID]; dup || b.ID == "" {
			b.ID = NewID()
		}
		seen[b.ID] = struct{}{}
		out = append(out, it)
	}
	return out, nil
}

// UnmarshalItem decodes a single item. When "type" is absent the variant is
// inferred from its fields: "src" means image, "content" means text.
func UnmarshalItem(data []byte) (Item, error) {
	var peek struct {
		Type    Kind    `json:"type"`
		Src     *string `json:"src"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	kind := peek.Type
	if kind == "" {
		switch {
		case peek.Src != nil:
			kind = KindImage
		case peek.Content != nil:
			kind = KindText
		}
	}
	var it Item
	switch kind {
	case KindImage:
		im := &Image{Base: Base{Scale: 1}}
		if err := json.Unmarshal(data, (*plainImage)(im)); err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		it = im
	case KindText:
		tx := &Text{Base: Base{Scale: 1}, Color: DefaultTextColor, FontSize: DefaultTextFontSize, Width: DefaultTextWidth}
		if err := json.Unmarshal(data, (*plainText)(tx)); err != nil {
			return nil, fmt.Errorf("decode text: %w", err)
		}
		if c, err := NormalizeColor(tx.Color); err == nil {
			tx.Color = c
		} else {
			tx.Color = DefaultTextColor
		}
		if !(tx.FontSize > 0) {
			tx.FontSize = DefaultTextFontSize
		}
		if !(tx.Width > 0) {
			tx.Width = DefaultTextWidth
		}
		it = tx
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, peek.Type)
	}
	if err := validateBase(it.Common()); err != nil {
		return nil, err
	}
	return it, nil
}

func validateBase(b *Base) error {
	for _, v := range []float64{b.X, b.Y, b.Rotation, b.Scale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalidItem)
		}
	}
	if b.Scale < 0 {
		return fmt.Errorf("%w: negative scale %v", ErrInvalidItem, b.Scale)
	}
	return nil
}
