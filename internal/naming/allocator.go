// Package naming hands out synthetic identifiers that do not collide with
// each other or with the names a program already declares.
package naming

import "strconv"

// Allocator allocates fresh local names within one transformation run.
// The set of used names only ever grows.
type Allocator struct {
	used map[string]bool
}

// NewAllocator returns an allocator that treats the given names as taken.
func NewAllocator(reserved ...string) *Allocator {
	a := &Allocator{used: make(map[string]bool, len(reserved))}
	a.Reserve(reserved...)
	return a
}

// Reserve marks names as used without allocating them.
func (a *Allocator) Reserve(names ...string) {
	for _, n := range names {
		a.used[n] = true
	}
}

// Used reports whether name has been reserved or allocated.
func (a *Allocator) Used(name string) bool {
	return a.used[name]
}

// Fresh returns base if it is unused, otherwise base followed by the first
// integer suffix (starting at 0) that yields an unused name. The returned
// name is recorded as used.
func (a *Allocator) Fresh(base string) string {
	name := base
	for i := 0; a.used[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	a.used[name] = true
	return name
}

// Len returns the number of names in the used set.
func (a *Allocator) Len() int {
	return len(a.used)
}
