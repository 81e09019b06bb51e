package glw

// Deleter is anything that owns a native handle.
type Deleter interface {
	Delete()
}

// DeleterFunc adapts a function to Deleter.
type DeleterFunc func()

func (f DeleterFunc) Delete() { f() }

// Scope releases the objects added to it in reverse order, once. It is the
// scoped-ownership counterpart of a constructor: add each object right after
// creating it and a failure halfway through still releases what exists.
type Scope struct {
	items []Deleter
}

// Add registers d. A nil interface is skipped.
func (s *Scope) Add(d Deleter) {
	if d == nil {
		return
	}
	s.items = append(s.items, d)
}

func (s *Scope) Len() int {
	return len(s.items)
}

// Delete releases everything last-in first-out and empties the scope.
func (s *Scope) Delete() {
	for i := len(s.items) - 1; i >= 0; i-- {
		s.items[i].Delete()
		s.items[i] = nil
	}
	s.items = s.items[:0]
}
