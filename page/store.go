package page

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	addressObject   = "page"
	addressProperty = "address"
)

// Store persists the current page address across runs. A Store without a
// gdata manager keeps nothing and reports no errors.
type Store struct {
	manager *gdata.Manager
}

type addressRecord struct {
	Address string `yaml:"address"`
}

// OpenStore opens the per-user data directory for appName. When that fails
// the store runs in memory-only mode and the error is logged.
func OpenStore(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("page: open store %s: %v (address will not persist)", appName, err)
		return &Store{}
	}
	return &Store{manager: m}
}

// NewStore wraps an existing manager, which may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{manager: m}
}

// Persistent reports whether saves reach disk.
func (s *Store) Persistent() bool {
	return s != nil && s.manager != nil
}

func (s *Store) SaveAddress(a Address) error {
	if !s.Persistent() {
		return nil
	}
	data, err := yaml.Marshal(addressRecord{Address: a.String()})
	if err != nil {
		return fmt.Errorf("page: marshal address: %w", err)
	}
	if err := s.manager.SaveObjectProp(addressObject, addressProperty, data); err != nil {
		return fmt.Errorf("page: save address: %w", err)
	}
	return nil
}

// LoadAddress returns the saved address, if any.
func (s *Store) LoadAddress() (Address, bool, error) {
	if !s.Persistent() {
		return Address{}, false, nil
	}
	if !s.manager.ObjectPropExists(addressObject, addressProperty) {
		return Address{}, false, nil
	}
	data, err := s.manager.LoadObjectProp(addressObject, addressProperty)
	if err != nil {
		return Address{}, false, fmt.Errorf("page: load address: %w", err)
	}
	var rec addressRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Address{}, false, fmt.Errorf("page: unmarshal address: %w", err)
	}
	a, err := ParseAddress(rec.Address)
	if err != nil {
		return Address{}, false, err
	}
	return a, true, nil
}
