// Package catalog defines the immutable task library: ten health and
// ten eco tasks with point values, descriptive detail text, and the
// interest maps used for first-run personalization.
package catalog

import "github.com/abayate/earthwise/internal/domain"

// healthTasks is the full default health section, in display order.
var healthTasks = []domain.Task{
	{ID: "yoga-20", Label: "20-minute yoga", Points: 20, Category: domain.CategoryHealth},
	{ID: "strength-15", Label: "15-minute strength training", Points: 25, Category: domain.CategoryHealth},
	{ID: "intervals-10", Label: "10-minute intervals", Points: 20, Category: domain.CategoryHealth},
	{ID: "healthy-breakfast", Label: "Healthy breakfast (protein + fruit)", Points: 15, Category: domain.CategoryHealth},
	{ID: "steps-8000", Label: "8,000 steps", Points: 25, Category: domain.CategoryHealth},
	{ID: "sleep-8h", Label: "Sleep 8 hours", Points: 30, Category: domain.CategoryHealth},
	{ID: "screen-breaks", Label: "Screen breaks every hour", Points: 10, Category: domain.CategoryHealth},
	{ID: "journaling-5", Label: "5-minute journaling", Points: 10, Category: domain.CategoryHealth},
	{ID: "breathing-3", Label: "3-minute breathing exercise", Points: 10, Category: domain.CategoryHealth},
	{ID: "posture-x3", Label: "Posture check ×3", Points: 5, Category: domain.CategoryHealth},
}

// ecoTasks is the full default eco section, in display order.
var ecoTasks = []domain.Task{
	{ID: "meatless-meal", Label: "Meatless meal", Points: 25, Category: domain.CategoryEco},
	{ID: "cold-wash-laundry", Label: "Cold-wash laundry", Points: 15, Category: domain.CategoryEco},
	{ID: "short-shower-5", Label: "5-minute shower", Points: 15, Category: domain.CategoryEco},
	{ID: "unplug-standby", Label: "Unplug idle devices", Points: 10, Category: domain.CategoryEco},
	{ID: "thermostat-1deg", Label: "Thermostat ±1°F adjustment", Points: 15, Category: domain.CategoryEco},
	{ID: "reusable-mug-bottle", Label: "Bring a reusable mug/bottle", Points: 10, Category: domain.CategoryEco},
	{ID: "recycle-sort", Label: "Sort & recycle properly", Points: 10, Category: domain.CategoryEco},
	{ID: "compost-scraps", Label: "Collect food scraps for composting", Points: 20, Category: domain.CategoryEco},
	{ID: "public-transit-carpool", Label: "Use public transit or carpool", Points: 30, Category: domain.CategoryEco},
	{ID: "no-single-use-plastic", Label: "No single-use plastic today", Points: 25, Category: domain.CategoryEco},
}

// interestMapHealth maps a declared interest tag to the health task
// ids it should pull forward during seeding.
var interestMapHealth = map[string][]string{
	"fitness":     {"yoga-20", "strength-15", "intervals-10", "steps-8000"},
	"sleep":       {"sleep-8h"},
	"nutrition":   {"healthy-breakfast"},
	"mindfulness": {"journaling-5", "breathing-3"},
	"transport":   {"steps-8000"},
}

var interestMapEco = map[string][]string{
	"recycling": {"recycle-sort"},
	"water":     {"short-shower-5"},
	"energy":    {"unplug-standby", "thermostat-1deg"},
	"transport": {"public-transit-carpool"},
	"plastic":   {"no-single-use-plastic", "reusable-mug-bottle"},
}

// Default returns a copy of the full catalog for a category, with
// detail text attached. Callers own the returned slice.
func Default(cat domain.Category) []domain.Task {
	var src []domain.Task
	switch cat {
	case domain.CategoryHealth:
		src = healthTasks
	case domain.CategoryEco:
		src = ecoTasks
	default:
		return nil
	}
	out := make([]domain.Task, len(src))
	copy(out, src)
	attachDetails(out)
	return out
}

// Lookup finds a catalog task by category and id.
func Lookup(cat domain.Category, id string) (domain.Task, bool) {
	for _, t := range Default(cat) {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Instances converts catalog tasks to fresh uncompleted daily instances.
func Instances(tasks []domain.Task) []domain.TaskInstance {
	out := make([]domain.TaskInstance, len(tasks))
	for i, t := range tasks {
		out[i] = t.Instance()
	}
	return out
}

func attachDetails(tasks []domain.Task) {
	for i := range tasks {
		if d, ok := details[tasks[i].ID]; ok {
			dd := d
			tasks[i].Details = &dd
		}
	}
}
