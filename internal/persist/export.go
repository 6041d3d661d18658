/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package persist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"inspiraview/internal/domain"
)

// ExportMIME is the media type of exported scene files.
const ExportMIME = "application/json"

var (
	// ErrNotArray is returned by Import when the top-level value is not an array.
	ErrNotArray = domain.ErrNotArray
	// ErrInvalidScene is returned by Import when items do not match the scene schema.
	ErrInvalidScene = errors.New("invalid scene file")
)

//go:embed scene.schema.json
var sceneSchema []byte

var compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(sceneSchema))

// ExportFileName returns the timestamped name offered when saving an export.
func ExportFileName(t time.Time) string {
	return "moodboard-" + t.Format("20060102-150405") + ".json"
}

// Export serializes the scene as an indented JSON array.
func Export(items []domain.Item) ([]byte, error) {
	raw, err := domain.EncodeItems(items)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("indent export: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Import parses an exported scene. It fails with ErrNotArray unless the
// top-level value is an array, and with ErrInvalidScene when an item does not
// match the scene schema.
func Import(data []byte) ([]domain.Item, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidScene)
	}
	if schemaErr != nil {
		return nil, fmt.Errorf("scene schema: %w", schemaErr)
	}
	res, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidScene, strings.Join(msgs, "; "))
	}
	items, err := domain.DecodeItems(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return items, nil
}
