package service

import (
	"errors"
	"fmt"

	"rem/internal/task"
)

// Document is the persisted shape of the store: {"todos": [...]}.
type Document struct {
	Todos []Record `json:"todos" yaml:"todos"`
}

// Record is one persisted task. Exactly one field is set; the field name is
// the kind tag ({"Regular": {...}}, {"Daily": {...}} or {"Scheduled": {...}}).
type Record struct {
	Regular   *RegularRecord   `json:"Regular,omitempty" yaml:"Regular,omitempty"`
	Daily     *DailyRecord     `json:"Daily,omitempty" yaml:"Daily,omitempty"`
	Scheduled *ScheduledRecord `json:"Scheduled,omitempty" yaml:"Scheduled,omitempty"`
}

// RegularRecord stores a task.Simple.
type RegularRecord struct {
	Content string `json:"content" yaml:"content"`
	Done    bool   `json:"done" yaml:"done"`
}

// ScheduledRecord stores a task.Scheduled.
type ScheduledRecord struct {
	Content string `json:"content" yaml:"content"`
	Due     string `json:"due" yaml:"due"`
	Done    bool   `json:"done" yaml:"done"`
}

// DailyRecord stores a task.Recurring. A missing longest_streak decodes as 0.
type DailyRecord struct {
	Content        string     `json:"content" yaml:"content"`
	Streak         int        `json:"streak" yaml:"streak"`
	LastMarkedDone *task.Date `json:"last_marked_done" yaml:"last_marked_done"`
	Backup         *task.Date `json:"last_marked_done_backup" yaml:"last_marked_done_backup"`
	LongestStreak  int        `json:"longest_streak" yaml:"longest_streak"`
}

// ErrBadRecord is returned when a persisted task cannot be decoded.
var ErrBadRecord = errors.New("bad task record")

// FromStore converts s to its persisted shape.
func FromStore(s *task.Store) Document {
	doc := Document{Todos: make([]Record, 0, s.Len())}
	for _, t := range s.Tasks {
		doc.Todos = append(doc.Todos, recordOf(t))
	}
	return doc
}

func recordOf(t task.Task) Record {
	switch t := t.(type) {
	case *task.Simple:
		return Record{Regular: &RegularRecord{Content: t.Content, Done: t.Done}}
	case *task.Scheduled:
		return Record{Scheduled: &ScheduledRecord{Content: t.Content, Due: t.Due, Done: t.Done}}
	case *task.Recurring:
		return Record{Daily: &DailyRecord{
			Content:        t.Content,
			Streak:         t.Streak,
			LastMarkedDone: t.LastMarkedDone,
			Backup:         t.UndoBackup,
			LongestStreak:  t.LongestStreak,
		}}
	default:
		panic(fmt.Sprintf("service: unknown task kind %T", t))
	}
}

// Store converts the document back into a task store.
func (d Document) Store() (*task.Store, error) {
	s := task.NewStore()
	for i, rec := range d.Todos {
		t, err := rec.task()
		if err != nil {
			return nil, fmt.Errorf("todo %d: %w", i+1, err)
		}
		s.Add(t)
	}
	return s, nil
}

func (r Record) task() (task.Task, error) {
	set := 0
	for _, present := range []bool{r.Regular != nil, r.Daily != nil, r.Scheduled != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: want exactly one kind, got %d", ErrBadRecord, set)
	}

	switch {
	case r.Regular != nil:
		return &task.Simple{Content: r.Regular.Content, Done: r.Regular.Done}, nil
	case r.Scheduled != nil:
		return &task.Scheduled{Content: r.Scheduled.Content, Due: r.Scheduled.Due, Done: r.Scheduled.Done}, nil
	default:
		d := r.Daily
		if d.Streak < 0 || d.LongestStreak < 0 {
			return nil, fmt.Errorf("%w: negative streak", ErrBadRecord)
		}
		return &task.Recurring{
			Content:        d.Content,
			Streak:         d.Streak,
			LongestStreak:  d.LongestStreak,
			LastMarkedDone: d.LastMarkedDone,
			UndoBackup:     d.Backup,
		}, nil
	}
}
