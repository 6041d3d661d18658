/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the cycle used by the recolour shortcut.
var Palette = []string{
	"#ffffff",
	"#111111",
	"#ff5c5c",
	"#ffb347",
	"#ffe066",
	"#7bd389",
	"#5cc8ff",
	"#b28dff",
}

// NormalizeColor parses #rgb or #rrggbb and returns lowercase #rrggbb.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("parse color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// NextPaletteColor returns the palette entry after the one perceptually
// closest to current. Unparseable colours restart at the first entry.
func NextPaletteColor(current string) string {
	c, err := colorful.Hex(strings.TrimSpace(current))
	if err != nil {
		return Palette[0]
	}
	best, bestDist := 0, -1.0
	for i, hex := range Palette {
		p, _ := colorful.Hex(hex)
		if d := c.DistanceLab(p); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return Palette[(best+1)%len(Palette)]
}
