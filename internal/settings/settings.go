/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package settings keeps small per-user view preferences (camera, window
// opacity, always-on-top) in a YAML file. Each key is read and written on its
// own so one bad value never hides the others.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"inspiraview/internal/camera"
	applog "inspiraview/internal/log"
)

const (
	KeyCamera  = "camera"
	KeyOpacity = "opacity"
	KeyPinned  = "pinned"

	FileName = "settings.yaml"
)

// Opacity bounds in percent.
const (
	MinOpacity     = 30
	MaxOpacity     = 100
	DefaultOpacity = 100
)

// Settings holds whichever keys were present and valid; nil means absent.
type Settings struct {
	Camera  *camera.Camera
	Opacity *int
	Pinned  *bool
}

// File is a YAML settings file. Safe for concurrent use.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File { return &File{path: path} }

func (f *File) Path() string { return f.path }

func (f *File) readNodes() (map[string]yaml.Node, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]yaml.Node{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	nodes := map[string]yaml.Node{}
	if err := yaml.Unmarshal(b, &nodes); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return nodes, nil
}

// Load returns the stored settings. Read faults and malformed values are
// logged and reported as absent.
func (f *File) Load() Settings {
	l := applog.WithOperation(applog.WithComponent("settings"), "load").With(slog.String("path", f.path))
	f.mu.Lock()
	nodes, err := f.readNodes()
	f.mu.Unlock()
	if err != nil {
		l.Warn("settings unreadable; using defaults", slog.Any("err", err))
		return Settings{}
	}
	var s Settings
	if n, ok := nodes[KeyCamera]; ok {
		var c camera.Camera
		if err := n.Decode(&c); err != nil {
			l.Warn("discarding camera", slog.Any("err", err))
		} else {
			c = c.Sanitize()
			s.Camera = &c
		}
	}
	if n, ok := nodes[KeyOpacity]; ok {
		var o int
		if err := n.Decode(&o); err != nil {
			l.Warn("discarding opacity", slog.Any("err", err))
		} else {
			o = ClampOpacity(o)
			s.Opacity = &o
		}
	}
	if n, ok := nodes[KeyPinned]; ok {
		var p bool
		if err := n.Decode(&p); err != nil {
			l.Warn("discarding pinned", slog.Any("err", err))
		} else {
			s.Pinned = &p
		}
	}
	return s
}

// Set stores one key, keeping the others. A malformed existing file is replaced.
func (f *File) Set(key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	nodes, err := f.readNodes()
	if err != nil {
		applog.WithComponent("settings").Warn("overwriting unreadable settings", slog.Any("err", err))
		nodes = map[string]yaml.Node{}
	}
	var n yaml.Node
	if err := n.Encode(value); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	nodes[key] = n
	out, err := yaml.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func (f *File) SaveCamera(c camera.Camera) error { return f.Set(KeyCamera, c) }
func (f *File) SaveOpacity(percent int) error    { return f.Set(KeyOpacity, ClampOpacity(percent)) }
func (f *File) SavePinned(on bool) error         { return f.Set(KeyPinned, on) }

// ClampOpacity limits a percentage to [MinOpacity, MaxOpacity].
func ClampOpacity(p int) int {
	return min(MaxOpacity, max(MinOpacity, p))
}
