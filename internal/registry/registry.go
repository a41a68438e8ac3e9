// Package registry manages the category namespace: a fixed default set
// plus user-defined custom categories, unique across both.
package registry

import (
	"errors"
	"slices"
	"strings"

	"tally/internal/core"
)

// Default categories, permanent and listed first in this order.
var defaults = []string{"groceries", "transportation", "entertainment", "utilities"}

var errEmptyName = errors.New("empty category name")

// Registry holds default and custom category names. Names are stored
// lowercase; uniqueness is case-insensitive across the union of both sets.
// Not safe for concurrent use; callers serialize access.
type Registry struct {
	custom []string // insertion order
}

func New() *Registry {
	return &Registry{}
}

// NewWithCustom seeds a registry from persisted custom names. Names that
// collide with a default or an earlier custom name are dropped.
func NewWithCustom(names []string) *Registry {
	r := New()
	for _, name := range names {
		_ = r.AddCustom(name) // duplicates in a persisted file are ignored
	}
	return r
}

// Defaults returns the fixed default set in its fixed order.
func (r *Registry) Defaults() []string {
	return slices.Clone(defaults)
}

// Custom returns the custom categories in insertion order.
func (r *Registry) Custom() []string {
	return slices.Clone(r.custom)
}

// All returns every category: defaults first in fixed order, then custom
// in insertion order.
func (r *Registry) All() []string {
	out := make([]string, 0, len(defaults)+len(r.custom))
	out = append(out, defaults...)
	out = append(out, r.custom...)
	return out
}

// Contains reports case-insensitive membership in either set.
func (r *Registry) Contains(name string) bool {
	name = normalize(name)
	return slices.Contains(defaults, name) || slices.Contains(r.custom, name)
}

// ByIndex resolves a position in All() to a category name. Presentation
// shells translate menu indexes through this before touching the core.
func (r *Registry) ByIndex(i int) (string, error) {
	all := r.All()
	if i < 0 || i >= len(all) {
		return "", core.ErrInvalidSelection
	}
	return all[i], nil
}

// AddCustom registers a new custom category. The name is trimmed and
// lowercased; collisions with any existing default or custom name fail
// with ErrDuplicateCategory and leave the registry unchanged.
func (r *Registry) AddCustom(name string) error {
	name = normalize(name)
	if name == "" {
		return errEmptyName
	}
	if r.Contains(name) {
		return core.ErrDuplicateCategory
	}
	r.custom = append(r.custom, name)
	return nil
}

// RenameCustom renames a custom category in place, keeping its position.
// Defaults cannot be renamed through this interface. Existing expense
// records keep the old name; references are not rewritten.
func (r *Registry) RenameCustom(oldName, newName string) error {
	oldName = normalize(oldName)
	newName = normalize(newName)
	if newName == "" {
		return errEmptyName
	}
	i := slices.Index(r.custom, oldName)
	if i < 0 {
		return core.ErrCategoryNotFound
	}
	if newName == oldName {
		return nil
	}
	if r.Contains(newName) {
		return core.ErrDuplicateCategory
	}
	r.custom[i] = newName
	return nil
}

// RemoveCustom deletes a custom category. Defaults cannot be removed.
// Expenses already referencing the name are left untouched.
func (r *Registry) RemoveCustom(name string) error {
	name = normalize(name)
	i := slices.Index(r.custom, name)
	if i < 0 {
		return core.ErrCategoryNotFound
	}
	r.custom = slices.Delete(r.custom, i, i+1)
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
