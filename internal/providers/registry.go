package providers

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownSource = errors.New("unknown source")

type Factory func(Deps) Source

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a source constructor available by id. It is meant to be
// called from a source package's init and panics on duplicate ids.
func Register(id string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[id]; dup {
		panic("providers: duplicate source " + id)
	}
	registry[id] = f
}

func New(id string, deps Deps) (Source, error) {
	registryMu.RLock()
	f, ok := registry[id]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, id)
	}

	return f(deps.WithDefaults()), nil
}

func IDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]string, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}
