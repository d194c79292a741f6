// File: internal/cipher/registry.go
package cipher

import (
	"fmt"
	"strings"
)

// Names of the built-in ciphers.
const (
	AlphaQabbala = "alpha_qabbala"
	Qwerty       = "qwerty"
	Ordinal      = "ordinal"
	Reduction    = "reduction"

	// SelectAll is the selection keyword that expands to every registered cipher.
	SelectAll = "all"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Named pairs a cipher with its registry name.
type Named struct {
	Name   string
	Cipher Cipher
}

// Registry is an ordered, read-only set of named ciphers.
type Registry struct {
	order  []string
	byName map[string]Cipher
}

// UnknownCipherError is returned when a selection names ciphers that are not
// registered.
type UnknownCipherError struct {
	Unknown   []string
	Available []string
}

func (e *UnknownCipherError) Error() string {
	return fmt.Sprintf("Unknown ciphers: %s\nAvailable ciphers: %s, %s",
		strings.Join(e.Unknown, ", "), strings.Join(e.Available, ", "), SelectAll)
}

// NewRegistry builds a registry from the given ciphers, preserving their order.
// A repeated name keeps its first position and takes the later cipher.
func NewRegistry(ciphers ...Named) *Registry {
	r := &Registry{byName: make(map[string]Cipher, len(ciphers))}
	for _, n := range ciphers {
		if _, exists := r.byName[n.Name]; !exists {
			r.order = append(r.order, n.Name)
		}
		r.byName[n.Name] = n.Cipher
	}
	return r
}

var builtin = NewRegistry(
	Named{Name: AlphaQabbala, Cipher: Merge(
		FromMapping(Assignment{Chars: "0", Value: 0}),
		Sequential(alphabet, 10),
		Sequential("123456789", 1),
	)},
	Named{Name: Qwerty, Cipher: Merge(
		Sequential("1234567890", 1),
		Sequential("qwertyuiop", 11),
		Sequential("asdfghjkl", 21),
		Sequential("zxcvbnm", 30),
	)},
	Named{Name: Ordinal, Cipher: Merge(
		Sequential(alphabet, 1),
	)},
	Named{Name: Reduction, Cipher: Merge(
		Sequential("abcdefghi", 1),
		Sequential("jklmnopqr", 1),
		Sequential("stuvwxyz", 1),
	)},
)

// Default returns the registry of built-in ciphers. It is shared and must not
// be modified.
func Default() *Registry { return builtin }

// Names returns the cipher names in definition order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup returns the cipher registered under name.
func (r *Registry) Lookup(name string) (Cipher, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Select resolves a comma separated list of cipher names. The keyword "all"
// selects every cipher in definition order. Names are trimmed, duplicates
// are kept, and any unregistered name yields an *UnknownCipherError.
func (r *Registry) Select(expr string) ([]Named, error) {
	if strings.TrimSpace(expr) == SelectAll {
		selected := make([]Named, 0, len(r.order))
		for _, name := range r.order {
			selected = append(selected, Named{Name: name, Cipher: r.byName[name]})
		}
		return selected, nil
	}

	var (
		selected []Named
		unknown  []string
	)
	for _, part := range strings.Split(expr, ",") {
		name := strings.TrimSpace(part)
		c, ok := r.byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, Named{Name: name, Cipher: c})
	}
	if len(unknown) > 0 {
		return nil, &UnknownCipherError{Unknown: unknown, Available: r.Names()}
	}
	return selected, nil
}
