package page

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	appName := fmt.Sprintf("lidscene_test_%s_%d", t.Name(), time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("cannot open gdata manager: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return NewStore(m)
}

func TestParseAddress(t *testing.T) {
	cases := []struct {
		in       string
		wantPage string
		wantExit bool
		wantStr  string
	}{
		{"landing", Landing, false, "landing"},
		{"landing?exit=true", Landing, true, "landing?exit=true"},
		{"/landing?exit=1", Landing, true, "landing?exit=1"},
		{"landing?exit=false", Landing, false, "landing?exit=false"},
		{"interactive", Interactive, false, "interactive"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			a, err := ParseAddress(c.in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if a.Page != c.wantPage || a.Flag(ExitParam) != c.wantExit || a.String() != c.wantStr {
				t.Fatalf("got %+v (%s)", a, a)
			}
		})
	}
}

func TestParseAddressEmpty(t *testing.T) {
	for _, in := range []string{"", "  ", "/", "?exit=true"} {
		if _, err := ParseAddress(in); !errors.Is(err, ErrEmptyAddress) {
			t.Fatalf("ParseAddress(%q) err = %v, want ErrEmptyAddress", in, err)
		}
	}
}

func TestAddressWithWithout(t *testing.T) {
	a := MustParseAddress("landing")
	b := a.With(ExitParam, "true")
	if a.Flag(ExitParam) {
		t.Fatalf("With must not mutate the receiver")
	}
	if b.String() != "landing?exit=true" {
		t.Fatalf("With = %s", b)
	}
	if c := b.Without(ExitParam); c.String() != "landing" || !b.Flag(ExitParam) {
		t.Fatalf("Without = %s, original %s", c, b)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(MustParseAddress("landing"), nil)
	_ = h.Push(MustParseAddress("interactive"))
	if h.Current().Page != Interactive || h.Len() != 2 {
		t.Fatalf("push failed: %s", h.Current())
	}
	_ = h.Replace(MustParseAddress("landing?exit=true"))
	if h.Current().String() != "landing?exit=true" || h.Len() != 2 {
		t.Fatalf("replace failed: %s", h.Current())
	}
	if !h.Back() || h.Current().Page != Landing {
		t.Fatalf("back failed: %s", h.Current())
	}
	if h.Back() {
		t.Fatalf("back past the first entry should fail")
	}
}

func TestEntryFlagClearsExit(t *testing.T) {
	h := NewHistory(MustParseAddress("landing?exit=true&ref=nav"), nil)
	f := NewEntryFlag(h)
	if !f.ExitRequested() {
		t.Fatalf("exit should be requested")
	}
	if err := f.ClearExit(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if f.ExitRequested() || h.Current().String() != "landing?ref=nav" || h.Len() != 1 {
		t.Fatalf("exit not cleared in place: %s len=%d", h.Current(), h.Len())
	}
	// second clear is a no-op
	if err := f.ClearExit(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestEntryFlagSampledOnce(t *testing.T) {
	h := NewHistory(MustParseAddress("landing"), nil)
	f := NewEntryFlag(h)
	_ = h.Replace(MustParseAddress("landing?exit=true"))
	if f.ExitRequested() {
		t.Fatalf("flag must only be read at creation")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewStore(nil)
	if s.Persistent() {
		t.Fatalf("nil manager store should not be persistent")
	}
	if err := s.SaveAddress(MustParseAddress("landing")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, err := s.LoadAddress(); ok || err != nil {
		t.Fatalf("load = %v, %v", ok, err)
	}
}

func TestStoreRoundTripAndExitClear(t *testing.T) {
	s := testStore(t)
	if _, ok, _ := s.LoadAddress(); ok {
		t.Fatalf("fresh store should be empty")
	}

	h := NewHistory(MustParseAddress("landing?exit=true"), s)
	a, ok, err := s.LoadAddress()
	if err != nil || !ok || !a.Flag(ExitParam) {
		t.Fatalf("saved address = %s, %v, %v", a, ok, err)
	}

	if err := NewEntryFlag(h).ClearExit(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	a, ok, err = s.LoadAddress()
	if err != nil || !ok || a.String() != "landing" {
		t.Fatalf("after clear = %s, %v, %v", a, ok, err)
	}
}
