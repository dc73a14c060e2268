package page

import "log"

// History is the stack of visited addresses. Every change to the current
// address is written through to the store.
type History struct {
	entries []Address
	store   *Store
}

// NewHistory starts a history at start. store may be nil.
func NewHistory(start Address, store *Store) *History {
	h := &History{entries: []Address{start}, store: store}
	h.persist()
	return h
}

func (h *History) Current() Address {
	if h == nil || len(h.entries) == 0 {
		return Address{}
	}
	return h.entries[len(h.entries)-1]
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Push appends a as the new current address.
func (h *History) Push(a Address) error {
	if h == nil {
		return nil
	}
	h.entries = append(h.entries, a)
	return h.persist()
}

// Replace rewrites the current address in place.
func (h *History) Replace(a Address) error {
	if h == nil {
		return nil
	}
	if len(h.entries) == 0 {
		h.entries = append(h.entries, a)
	} else {
		h.entries[len(h.entries)-1] = a
	}
	return h.persist()
}

// Back drops the current address and reports whether there was one to go back to.
func (h *History) Back() bool {
	if h == nil || len(h.entries) < 2 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	if err := h.persist(); err != nil {
		log.Printf("page: back: %v", err)
	}
	return true
}

func (h *History) persist() error {
	if h.store == nil {
		return nil
	}
	return h.store.SaveAddress(h.Current())
}
