package page

import "log"

// EntryFlag exposes the exit query parameter of the current address. The
// flag is sampled once, when the flag is created.
type EntryFlag struct {
	history   *History
	requested bool
}

func NewEntryFlag(h *History) *EntryFlag {
	f := &EntryFlag{history: h, requested: h.Current().Flag(ExitParam)}
	if f.requested {
		log.Printf("page: %s requests exit sequence", h.Current())
	}
	return f
}

func (f *EntryFlag) ExitRequested() bool {
	return f != nil && f.requested
}

// ClearExit removes the parameter from the current address without
// navigating.
func (f *EntryFlag) ClearExit() error {
	if f == nil {
		return nil
	}
	f.requested = false
	cur := f.history.Current()
	if cur.Query.Get(ExitParam) == "" {
		return nil
	}
	return f.history.Replace(cur.Without(ExitParam))
}
