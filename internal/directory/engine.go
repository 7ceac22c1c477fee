package directory

import (
	"golang.org/x/text/collate"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

// State is the load state of the collection behind an Engine.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Engine holds the full collection and the view derived from it. Every input
// recomputes the view synchronously. An Engine is driven by a single caller
// and is not safe for concurrent use.
type Engine struct {
	state      State
	err        error
	collection []advocate.Advocate

	query    string
	filtered []advocate.Advocate
	field    Field
	dir      Direction
	view     []advocate.Advocate

	collator *collate.Collator
}

// NewEngine returns an engine waiting for its collection, sorted by first
// name ascending.
func NewEngine() *Engine {
	return &Engine{
		state:    StateLoading,
		field:    FirstName,
		dir:      Ascending,
		filtered: []advocate.Advocate{},
		view:     []advocate.Advocate{},
		collator: NewCollator(),
	}
}

// Loaded installs the collection. A nil collection is treated as empty. The
// current query and sort are applied immediately.
func (e *Engine) Loaded(collection []advocate.Advocate) {
	if collection == nil {
		collection = []advocate.Advocate{}
	}
	e.collection = collection
	e.state = StateReady
	e.err = nil
	e.refilter()
}

// LoadFailed records that the collection could not be fetched. The view
// stays empty.
func (e *Engine) LoadFailed(err error) {
	e.state = StateFailed
	e.err = err
	e.collection = nil
	e.refilter()
}

// OnQueryChange filters the full collection by text.
func (e *Engine) OnQueryChange(text string) {
	e.query = text
	e.refilter()
}

// OnSortHeaderClick applies the toggle rule: the active field flips
// direction, another sortable field becomes active ascending, and
// non-sortable fields are ignored.
func (e *Engine) OnSortHeaderClick(field Field) {
	if !field.Sortable() {
		return
	}
	if field == e.field {
		e.dir = e.dir.Flip()
	} else {
		e.field = field
		e.dir = Ascending
	}
	e.resort()
}

// OnResetClick restores the full collection and clears the query text. The
// sort field and direction are kept.
func (e *Engine) OnResetClick() {
	e.query = ""
	e.filtered = Filter(e.collection, "")
	e.resort()
}

func (e *Engine) refilter() {
	e.filtered = Filter(e.collection, e.query)
	e.resort()
}

func (e *Engine) resort() {
	e.view = Sort(e.filtered, e.field, e.dir, e.collator)
}

// View returns the rendered sequence. Callers must not modify it.
func (e *Engine) View() []advocate.Advocate { return e.view }

func (e *Engine) Query() string { return e.query }

func (e *Engine) SortField() Field { return e.field }

func (e *Engine) SortDirection() Direction { return e.dir }

func (e *Engine) State() State { return e.state }

// Err returns the load error when State is StateFailed.
func (e *Engine) Err() error { return e.err }

// Total returns the size of the full collection.
func (e *Engine) Total() int { return len(e.collection) }
