package permission

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptyKey is returned when a catalog entry has an empty key.
	ErrEmptyKey = errors.New("permission key can not be empty")

	// ErrDuplicateKey is returned when the same key is declared twice in one catalog.
	ErrDuplicateKey = errors.New("duplicate permission key")
)

// Permission is a single catalog entry.
type Permission struct {
	// Key is the unique identifier, e.g. "staff:create" or "leave.approve".
	Key string `json:"key"`
	// Category is the human-readable grouping label, e.g. "Staff Management".
	Category string `json:"category"`
	// Description explains what the permission grants.
	Description string `json:"description"`
}

// Catalog is an immutable registry of permissions.
// The zero value is an empty catalog.
type Catalog struct {
	entries    []Permission
	index      map[string]int
	categories []string
}

// New builds a catalog from the given entries, keeping their order.
func New(entries ...Permission) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Permission, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	seen := make(map[string]struct{})

	for _, entry := range entries {
		if strings.TrimSpace(entry.Key) == "" {
			return nil, ErrEmptyKey
		}

		if _, exists := c.index[entry.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, entry.Key)
		}

		c.index[entry.Key] = len(c.entries)
		c.entries = append(c.entries, entry)

		if _, ok := seen[entry.Category]; !ok {
			seen[entry.Category] = struct{}{}
			c.categories = append(c.categories, entry.Category)
		}
	}

	sort.Strings(c.categories)

	return c, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew(entries ...Permission) *Catalog {
	c, err := New(entries...)
	if err != nil {
		panic(err)
	}

	return c
}

// ListAll returns every permission in declaration order.
// The returned slice is a copy and may be modified by the caller.
func (c *Catalog) ListAll() []Permission {
	if c == nil {
		return nil
	}

	out := make([]Permission, len(c.entries))
	copy(out, c.entries)

	return out
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}

	out := make([]string, len(c.categories))
	copy(out, c.categories)

	return out
}

// Lookup returns the permission with exactly the given key.
func (c *Catalog) Lookup(key string) (Permission, bool) {
	if c == nil {
		return Permission{}, false
	}

	i, ok := c.index[key]
	if !ok {
		return Permission{}, false
	}

	return c.entries[i], true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.entries)
}

// IsValid reports whether key is part of the catalog.
func (c *Catalog) IsValid(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}
