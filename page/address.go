package page

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	Landing     = "landing"
	Interactive = "interactive"

	// ExitParam marks a return from the interactive page.
	ExitParam = "exit"
)

var ErrEmptyAddress = errors.New("page: empty address")

// Address is a page name plus query parameters, written like a relative URL:
// "landing?exit=true".
type Address struct {
	Page  string
	Query url.Values
}

// ParseAddress parses "page?key=value&...". A leading slash is ignored.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "/")
	if s == "" {
		return Address{}, ErrEmptyAddress
	}
	u, err := url.Parse(s)
	if err != nil {
		return Address{}, fmt.Errorf("page: parse address %q: %w", s, err)
	}
	if u.Path == "" {
		return Address{}, fmt.Errorf("page: parse address %q: %w", s, ErrEmptyAddress)
	}
	return Address{Page: u.Path, Query: u.Query()}, nil
}

// MustParseAddress is ParseAddress for literals.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	if len(a.Query) == 0 {
		return a.Page
	}
	return a.Page + "?" + a.Query.Encode()
}

// Flag reports whether the query parameter is "true" or "1".
func (a Address) Flag(name string) bool {
	switch strings.ToLower(a.Query.Get(name)) {
	case "true", "1":
		return true
	}
	return false
}

// With returns a copy with key set to value.
func (a Address) With(key, value string) Address {
	out := a.clone()
	out.Query.Set(key, value)
	return out
}

// Without returns a copy with key removed.
func (a Address) Without(key string) Address {
	out := a.clone()
	out.Query.Del(key)
	return out
}

func (a Address) clone() Address {
	q := make(url.Values, len(a.Query))
	for k, v := range a.Query {
		q[k] = append([]string(nil), v...)
	}
	return Address{Page: a.Page, Query: q}
}
