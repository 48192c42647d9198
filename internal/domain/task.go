// Package domain holds the pure types of the EarthWise engine.
// No infrastructure imports — the engine, stores, and API all speak
// these types.
package domain

// Category identifies one of the two task sections.
type Category string

const (
	CategoryHealth Category = "health"
	CategoryEco    Category = "eco"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryHealth || c == CategoryEco
}

// TaskDetails is the descriptive text attached to a catalog task.
type TaskDetails struct {
	About       string   `json:"about"`
	Health      string   `json:"health"`
	Environment string   `json:"environment"`
	Tips        []string `json:"tips,omitempty"`
}

// Task is an immutable catalog entry. Defined at build time, never
// mutated at runtime.
type Task struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Points   int          `json:"points"`
	Category Category     `json:"category"`
	Details  *TaskDetails `json:"details,omitempty"`
}

// TaskInstance is today's mutable completion state for a catalog task.
// One instance per selected task per category per day; reset at rollover.
type TaskInstance struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Points    int    `json:"points"`
	Completed bool   `json:"completed"`
}

// Instance creates a fresh uncompleted instance of a catalog task.
func (t Task) Instance() TaskInstance {
	return TaskInstance{ID: t.ID, Label: t.Label, Points: t.Points}
}

// CompletedCount counts completed instances in a list.
func CompletedCount(tasks []TaskInstance) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// ViewMode is a per-category presentation flag carried for UI consumers.
type ViewMode string

const (
	ModeBrowse ViewMode = "browse"
	ModeFocus  ViewMode = "focus"
)
