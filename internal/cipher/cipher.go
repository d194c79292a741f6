// File: internal/cipher/cipher.go
package cipher

import "sort"

// Cipher is an immutable table mapping single characters to integer weights.
// The zero value is an empty cipher in which every character is worth 0.
type Cipher struct {
	values map[rune]int
}

// Assignment gives every character in Chars the same Value.
type Assignment struct {
	Chars string
	Value int
}

// Entry is a single character/value pair of a cipher.
type Entry struct {
	Char  rune
	Value int
}

// Sequential assigns consecutive integers, beginning at start, to the
// characters of chars in order.
func Sequential(chars string, start int) Cipher {
	values := make(map[rune]int, len(chars))
	next := start
	for _, r := range chars {
		values[r] = next
		next++
	}
	return Cipher{values: values}
}

// FromMapping builds a cipher from explicit group assignments. Assignments
// are applied in order, so a character named by a later group takes that
// group's value.
func FromMapping(assignments ...Assignment) Cipher {
	values := make(map[rune]int)
	for _, a := range assignments {
		for _, r := range a.Chars {
			values[r] = a.Value
		}
	}
	return Cipher{values: values}
}

// Merge combines ciphers into a new one. On a key collision the value from
// the later cipher wins.
func Merge(ciphers ...Cipher) Cipher {
	size := 0
	for _, c := range ciphers {
		size += len(c.values)
	}
	values := make(map[rune]int, size)
	for _, c := range ciphers {
		for r, v := range c.values {
			values[r] = v
		}
	}
	return Cipher{values: values}
}

// Value reports the weight of r and whether the cipher defines it.
func (c Cipher) Value(r rune) (int, bool) {
	v, ok := c.values[r]
	return v, ok
}

// Len returns the number of characters the cipher defines.
func (c Cipher) Len() int { return len(c.values) }

// Entries returns the table ordered by value, then by character.
func (c Cipher) Entries() []Entry {
	entries := make([]Entry, 0, len(c.values))
	for r, v := range c.values {
		entries = append(entries, Entry{Char: r, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Char < entries[j].Char
	})
	return entries
}
