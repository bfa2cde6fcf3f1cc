package core

// Task describes a unit of work handed to an agent: a free-form description
// plus an optional mapping of named context values supplied by the caller.
// Tasks are immutable once constructed; NewTask copies the provided values and
// accessors return copies so callers can never observe mutation.
type Task struct {
	description string
	values      map[string]any
}

// NewTask constructs a Task from a description and optional context values.
// The values map is copied defensively.
func NewTask(description string, values map[string]any) Task {
	t := Task{description: description}
	if len(values) > 0 {
		t.values = make(map[string]any, len(values))
		for k, v := range values {
			t.values[k] = v
		}
	}
	return t
}

// Description returns the free-form text describing the work.
func (t Task) Description() string { return t.description }

// Values returns a copy of the caller-supplied context values. Returns nil
// when no values were provided.
func (t Task) Values() map[string]any {
	if t.values == nil {
		return nil
	}
	out := make(map[string]any, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Value returns a single named context value and an existence flag.
func (t Task) Value(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}
