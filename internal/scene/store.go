/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene owns the ordered collection of canvas items. It is not safe
// for concurrent use; the engine serializes every mutation onto one goroutine.
package scene

import "inspiraview/internal/domain"

// Store holds items in insertion order. Items handed out by Get and Items are
// owned by the store and must only be mutated through Update.
type Store struct {
	items []domain.Item
}

func New() *Store { return &Store{} }

func (s *Store) Len() int { return len(s.items) }

// Items returns the live slice for read-only iteration.
func (s *Store) Items() []domain.Item { return s.items }

// Snapshot returns a deep copy of the scene.
func (s *Store) Snapshot() []domain.Item { return domain.CloneAll(s.items) }

func (s *Store) index(id string) int {
	for i, it := range s.items {
		if it.Common().ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Get(id string) (domain.Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return nil, false
}

// Add appends it, selected, and deselects every other item.
func (s *Store) Add(it domain.Item) {
	s.ClearSelection()
	it.Common().Selected = true
	s.items = append(s.items, it)
}

// Update applies fn to the item with id. Reports whether it exists.
func (s *Store) Update(id string, fn func(domain.Item)) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	fn(s.items[i])
	return true
}

// RemoveSelected deletes all selected items and returns how many were removed.
func (s *Store) RemoveSelected() int {
	kept := s.items[:0]
	removed := 0
	for _, it := range s.items {
		if it.Common().Selected {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	return removed
}

func (s *Store) Clear() { s.items = nil }

// Replace swaps the whole scene for items, taking ownership of them.
func (s *Store) Replace(items []domain.Item) {
	s.items = append([]domain.Item(nil), items...)
}

// SetSelected sets the selection flag of one item.
func (s *Store) SetSelected(id string, on bool) bool {
	return s.Update(id, func(it domain.Item) { it.Common().Selected = on })
}

// SelectOnly selects id and deselects everything else.
func (s *Store) SelectOnly(id string) {
	for _, it := range s.items {
		b := it.Common()
		b.Selected = b.ID == id
	}
}

func (s *Store) ClearSelection() {
	for _, it := range s.items {
		it.Common().Selected = false
	}
}

func (s *Store) SelectAll() {
	for _, it := range s.items {
		it.Common().Selected = true
	}
}

// Selected returns the ids of selected items in scene order.
func (s *Store) Selected() []string {
	var ids []string
	for _, it := range s.items {
		if b := it.Common(); b.Selected {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// ForEachSelected calls fn for every selected item in scene order.
func (s *Store) ForEachSelected(fn func(domain.Item)) {
	for _, it := range s.items {
		if it.Common().Selected {
			fn(it)
		}
	}
}

// VisitSelected dispatches v over every selected item.
func (s *Store) VisitSelected(v domain.Visitor) {
	s.ForEachSelected(func(it domain.Item) { it.Accept(v) })
}
