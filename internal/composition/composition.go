package composition

import (
	"sort"
	"strconv"
	"strings"
)

// Map associates species names with requested fraction values.
type Map map[string]float64

// Seed returns a Map holding every name mapped to value.
func Seed(names []string, value float64) Map {
	m := make(Map, len(names))
	for _, name := range names {
		m[name] = value
	}
	return m
}

// Get returns the value for name, or 0 if name is absent.
func (m Map) Get(name string) float64 {
	return m[name]
}

func (m Map) Set(name string, value float64) { m[name] = value }

func (m Map) Has(name string) bool {
	_, ok := m[name]
	return ok
}

func (m Map) Clear() {
	for name := range m {
		delete(m, name)
	}
}

// Names returns the keys in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String formats the strictly positive entries as "A:0.3, C:0.7".
func (m Map) String() string {
	var b strings.Builder
	for _, name := range m.Names() {
		v := m[name]
		if v <= 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}
