// Package task implements the task state model: the three task kinds, the
// ordered store, toggling, and the daily maintenance pass.
//
// Nothing in this package reads the clock, the environment, or the
// filesystem. The current calendar date is always passed in.
package task

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Task is one of *Simple, *Scheduled or *Recurring.
type Task interface {
	isTask()
}

// Simple is a task that is either done or not.
type Simple struct {
	Content string
	Done    bool
}

// Scheduled is a task with a fixed due date. Due is validated when the task
// is created and never changes afterwards.
type Scheduled struct {
	Content string
	Due     string
	Done    bool
}

// Recurring is a daily habit tracked by a consecutive-day streak.
type Recurring struct {
	Content       string
	Streak        int
	LongestStreak int

	// LastMarkedDone is nil until the task is first completed.
	LastMarkedDone *Date

	// UndoBackup holds the previous LastMarkedDone so a same-day toggle
	// can be reversed. One level only.
	UndoBackup *Date
}

func (*Simple) isTask()    {}
func (*Scheduled) isTask() {}
func (*Recurring) isTask() {}

// New builds a task. recurring takes precedence over due; a non-nil due must
// be a valid YYYY-MM-DD date or ErrInvalidDate is returned.
func New(content string, due *string, recurring bool) (Task, error) {
	content = norm.NFC.String(content)

	switch {
	case recurring:
		return &Recurring{Content: content}, nil
	case due != nil:
		if _, err := ParseDate(*due); err != nil {
			return nil, err
		}
		return &Scheduled{Content: content, Due: *due}, nil
	default:
		return &Simple{Content: content}, nil
	}
}

// Content returns the user-supplied text of t.
func Content(t Task) string {
	switch t := t.(type) {
	case *Simple:
		return t.Content
	case *Scheduled:
		return t.Content
	case *Recurring:
		return t.Content
	default:
		panic(fmt.Sprintf("task: unknown kind %T", t))
	}
}

// IsPending reports whether t still needs doing as of today. A daily task is
// pending unless it was completed today.
func IsPending(t Task, today Date) bool {
	switch t := t.(type) {
	case *Simple:
		return !t.Done
	case *Scheduled:
		return !t.Done
	case *Recurring:
		return !t.CompletedOn(today)
	default:
		panic(fmt.Sprintf("task: unknown kind %T", t))
	}
}

// DueDate parses the due date.
func (s *Scheduled) DueDate() (Date, error) {
	return ParseDate(s.Due)
}

// Overdue reports whether the due date has passed and the task is not done.
func (s *Scheduled) Overdue(today Date) (bool, error) {
	due, err := s.DueDate()
	if err != nil {
		return false, err
	}
	return !s.Done && due.Before(today), nil
}

// CompletedOn reports whether the task was marked done on day.
func (r *Recurring) CompletedOn(day Date) bool {
	return r.LastMarkedDone != nil && *r.LastMarkedDone == day
}

// toggle marks the task done today, or undoes today's completion if it was
// already marked today.
func (r *Recurring) toggle(today Date) {
	switch {
	case r.LastMarkedDone == nil:
		r.UndoBackup = nil
		r.Streak++
		r.LastMarkedDone = datePtr(today)

	case r.LastMarkedDone.After(today):
		// Only reachable if the data file was edited or the clock moved back.
		r.Streak = 1
		r.LastMarkedDone = datePtr(today)

	case *r.LastMarkedDone == today:
		// Same-day undo. The longest streak only drops when the undone
		// completion could have raised it, and never below the streak.
		prev := r.Streak
		r.Streak = max(r.Streak-1, 0)
		if r.LongestStreak <= prev+1 {
			r.LongestStreak = max(r.LongestStreak-1, r.Streak)
		}
		r.LastMarkedDone = r.UndoBackup

	default:
		if today.DaysSince(*r.LastMarkedDone) == 1 {
			r.Streak++
		} else {
			r.Streak = 1
		}
		r.UndoBackup = r.LastMarkedDone
		r.LastMarkedDone = datePtr(today)
	}

	r.LongestStreak = max(r.LongestStreak, r.Streak)
}

// advance decays the streak when more than a day has passed since the last
// completion. It reports whether anything changed.
func (r *Recurring) advance(today Date) bool {
	if r.LastMarkedDone == nil {
		return false
	}
	last := *r.LastMarkedDone

	switch gap := today.DaysSince(last); {
	case gap > 1:
		changed := r.Streak != 0 || r.UndoBackup == nil || *r.UndoBackup != last
		r.LongestStreak = max(r.LongestStreak, r.Streak)
		r.Streak = 0
		r.UndoBackup = datePtr(last)
		return changed
	case gap < 0:
		r.Streak = 1
		r.LastMarkedDone = datePtr(today)
		r.LongestStreak = max(r.LongestStreak, r.Streak)
		return true
	default:
		return false
	}
}

func datePtr(d Date) *Date {
	return &d
}
