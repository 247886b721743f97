package task

import "fmt"

// Store is the ordered list of tasks. Position n (1-based) is Tasks[n-1].
type Store struct {
	Tasks []Task
}

// Entry pairs a task with its 1-based position.
type Entry struct {
	Position int
	Task     Task
}

// NewStore returns a store holding tasks in order.
func NewStore(tasks ...Task) *Store {
	return &Store{Tasks: tasks}
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.Tasks)
}

// Add appends t and returns its position.
func (s *Store) Add(t Task) int {
	s.Tasks = append(s.Tasks, t)
	return len(s.Tasks)
}

// At returns the task at position.
func (s *Store) At(position int) (Task, error) {
	if position < 1 || position > len(s.Tasks) {
		return nil, &IndexError{Min: 1, Max: len(s.Tasks)}
	}
	return s.Tasks[position-1], nil
}

// Toggle flips the task at position. Simple and scheduled tasks flip their
// done flag; daily tasks are marked done today, or un-marked if they were
// already done today. The store is unchanged when an error is returned.
func (s *Store) Toggle(position int, today Date) error {
	t, err := s.At(position)
	if err != nil {
		return err
	}

	switch t := t.(type) {
	case *Simple:
		t.Done = !t.Done
	case *Scheduled:
		t.Done = !t.Done
	case *Recurring:
		t.toggle(today)
	default:
		panic(fmt.Sprintf("task: unknown kind %T", t))
	}
	return nil
}

// All returns every task with its position.
func (s *Store) All() []Entry {
	entries := make([]Entry, 0, len(s.Tasks))
	for i, t := range s.Tasks {
		entries = append(entries, Entry{Position: i + 1, Task: t})
	}
	return entries
}

// Pending returns the tasks that still need doing as of today, keeping their
// store positions.
func (s *Store) Pending(today Date) []Entry {
	var entries []Entry
	for i, t := range s.Tasks {
		if IsPending(t, today) {
			entries = append(entries, Entry{Position: i + 1, Task: t})
		}
	}
	return entries
}

// Advance runs the maintenance pass for today: daily tasks whose last
// completion is more than a day old lose their streak, and completion dates
// in the future are pulled back to today. Other kinds are untouched.
//
// Running it twice for the same day changes nothing the second time.
// It returns the number of tasks that changed.
func Advance(s *Store, today Date) int {
	changed := 0
	for _, t := range s.Tasks {
		switch t := t.(type) {
		case *Simple, *Scheduled:
		case *Recurring:
			if t.advance(today) {
				changed++
			}
		default:
			panic(fmt.Sprintf("task: unknown kind %T", t))
		}
	}
	return changed
}
