package model

// Categories is the closed set of task categories, in display order.
var Categories = []string{"Home", "Work", "Personal", "Health/Fitness", "Education"}

// MaxCategories caps how many categories a task may carry; extra selections
// are dropped silently.
const MaxCategories = 3

// ValidCategory reports whether name belongs to the fixed category set.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ClampCategories keeps at most MaxCategories entries, preserving order.
func ClampCategories(selected []string) []string {
	if len(selected) > MaxCategories {
		selected = selected[:MaxCategories]
	}
	return append([]string(nil), selected...)
}
