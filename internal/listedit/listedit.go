// Package listedit provides a modal editor for ordered, selectable lists of
// editable items. The list mechanics (moving the selection, cut and paste
// through a one-slot register, entering and leaving insert mode) are written
// once against the List contract, so they do not depend on what an item is.
package listedit

import "slices"

// Mode is the editor state.
type Mode int

const (
	// Normal mode: keys move the selection and manipulate whole items.
	Normal Mode = iota
	// Insert mode: keys edit the text of the selected item.
	Insert
)

func (m Mode) String() string {
	if m == Insert {
		return "INSERT"
	}
	return "NORMAL"
}

// List is what a concrete list type supplies to be editable.
type List[T any] interface {
	// Selection points at the index of the selected item.
	Selection() *int
	// Items points at the ordered items.
	Items() *[]T
	// Register is the one-slot holding area for cut items.
	Register() *Register[T]

	// OnCommit is called when insert mode ends for the selected item.
	OnCommit()
	// AppendChar and Backspace edit the selected item in insert mode.
	AppendChar(r rune)
	Backspace()
}

// Toggler is implemented by lists that react to the toggle action.
// Lists that don't implement it treat toggle as a no-op.
type Toggler interface {
	OnToggle()
}

// Register holds at most one item. A new Put overwrites the previous one.
type Register[T any] struct {
	item T
	full bool
}

// Put stores v, replacing any pending item.
func (r *Register[T]) Put(v T) {
	r.item = v
	r.full = true
}

// Take empties the register and returns what it held.
func (r *Register[T]) Take() (T, bool) {
	v, ok := r.item, r.full
	r.Clear()
	return v, ok
}

// Peek returns the held item without removing it.
func (r *Register[T]) Peek() (T, bool) {
	return r.item, r.full
}

// Full reports whether an item is waiting to be pasted.
func (r *Register[T]) Full() bool {
	return r.full
}

// Clear empties the register.
func (r *Register[T]) Clear() {
	var zero T
	r.item = zero
	r.full = false
}

// Editor drives a List through normal and insert mode.
type Editor[T any] struct {
	list List[T]
	mode Mode
}

// New returns an editor in normal mode.
func New[T any](list List[T]) *Editor[T] {
	return &Editor[T]{list: list}
}

// Mode returns the current mode.
func (e *Editor[T]) Mode() Mode {
	return e.mode
}

// Editing reports whether the editor is in insert mode.
func (e *Editor[T]) Editing() bool {
	return e.mode == Insert
}

func (e *Editor[T]) clamp() {
	sel := e.list.Selection()
	n := len(*e.list.Items())
	*sel = max(0, min(*sel, n-1))
}

// MoveUp selects the previous item, stopping at the first.
func (e *Editor[T]) MoveUp() {
	*e.list.Selection()--
	e.clamp()
}

// MoveDown selects the next item, stopping at the last.
func (e *Editor[T]) MoveDown() {
	*e.list.Selection()++
	e.clamp()
}

// Top selects the first item.
func (e *Editor[T]) Top() {
	*e.list.Selection() = 0
}

// Bottom selects the last item.
func (e *Editor[T]) Bottom() {
	*e.list.Selection() = len(*e.list.Items()) - 1
	e.clamp()
}

// Cut moves the selected item into the register, overwriting whatever it
// held. The last remaining item cannot be cut. Reports whether an item was
// removed.
func (e *Editor[T]) Cut() bool {
	if e.mode == Insert {
		return false
	}
	items, sel := e.list.Items(), e.list.Selection()
	if len(*items) <= 1 {
		return false
	}
	e.list.Register().Put((*items)[*sel])
	*items = slices.Delete(*items, *sel, *sel+1)
	*sel = max(0, *sel-1)
	e.clamp()
	return true
}

// Paste inserts the register's item after the selection, selects it and
// commits it. The register is emptied. Reports whether anything was pasted.
func (e *Editor[T]) Paste() bool {
	if e.mode == Insert {
		return false
	}
	item, ok := e.list.Register().Take()
	if !ok {
		return false
	}
	e.place(item)
	e.list.OnCommit()
	return true
}

// Insert places item after the selection, selects it and enters insert
// mode so the user can type its text.
func (e *Editor[T]) Insert(item T) {
	if e.mode == Insert {
		return
	}
	e.place(item)
	e.mode = Insert
}

func (e *Editor[T]) place(item T) {
	items, sel := e.list.Items(), e.list.Selection()
	at := 0
	if len(*items) > 0 {
		at = *sel + 1
	}
	*items = slices.Insert(*items, at, item)
	*sel = at
}

// EnterInsert starts editing the selected item.
func (e *Editor[T]) EnterInsert() {
	e.mode = Insert
}

// ExitInsert leaves insert mode and commits the edited item.
func (e *Editor[T]) ExitInsert() {
	if e.mode != Insert {
		return
	}
	e.mode = Normal
	e.list.OnCommit()
	e.clamp()
}

// Type appends r to the selected item. Ignored outside insert mode.
func (e *Editor[T]) Type(r rune) {
	if e.mode == Insert {
		e.list.AppendChar(r)
	}
}

// Erase removes the last character of the selected item. Ignored outside
// insert mode.
func (e *Editor[T]) Erase() {
	if e.mode == Insert {
		e.list.Backspace()
	}
}

// Toggle forwards to the list's OnToggle when it has one.
func (e *Editor[T]) Toggle() {
	if t, ok := e.list.(Toggler); ok {
		t.OnToggle()
	}
}
