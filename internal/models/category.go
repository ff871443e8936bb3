package models

import "strings"

// Category is the push/pull/legs bucket a muscle group is counted in for
// split analytics.
type Category string

const (
	CategoryPush  Category = "Push"
	CategoryPull  Category = "Pull"
	CategoryLegs  Category = "Legs"
	CategoryOther Category = "Other"
)

// categoryMap maps lowercased muscle group names to their category.
// Anything not listed here is CategoryOther.
var categoryMap = map[string]Category{
	// Push
	"push":      CategoryPush,
	"chest":     CategoryPush,
	"shoulders": CategoryPush,
	"triceps":   CategoryPush,

	// Pull
	"pull":       CategoryPull,
	"back":       CategoryPull,
	"upper back": CategoryPull,
	"lats":       CategoryPull,
	"biceps":     CategoryPull,
	"traps":      CategoryPull,
	"rear delts": CategoryPull,
	"forearms":   CategoryPull,

	// Legs
	"legs":       CategoryLegs,
	"quads":      CategoryLegs,
	"hamstrings": CategoryLegs,
	"glutes":     CategoryLegs,
	"calves":     CategoryLegs,
	"adductors":  CategoryLegs,
}

// ClassifyMuscleGroup maps a free-text muscle group to its category.
// Matching is exact after trimming and lowercasing. Returns the category and
// true if recognized, or CategoryOther and false if unknown.
func ClassifyMuscleGroup(raw string) (Category, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := categoryMap[lower]; ok {
		return c, true
	}
	return CategoryOther, false
}
