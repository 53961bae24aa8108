// Package hashers names the string hash functions a set can be configured with.
package hashers

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/trichner/strset/pkg/djb2"
	"github.com/trichner/strset/pkg/strset"
)

const (
	DJB2   = "djb2"
	XXHash = "xxhash"
)

// Default is the hasher used when none is configured.
const Default = DJB2

var ErrUnknownHasher = errors.New("unknown hasher")

var registry = map[string]strset.Hasher{
	DJB2:   djb2.Sum64String,
	XXHash: xxhash.Sum64String,
}

// Lookup returns the hasher registered under name. Names are case-insensitive,
// an empty name selects Default.
func Lookup(name string) (strset.Hasher, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	h, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, expected one of %s", ErrUnknownHasher, name, strings.Join(Names(), ", "))
	}
	return h, nil
}

// Names returns the registered hasher names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
