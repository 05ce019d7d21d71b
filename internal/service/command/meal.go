package command

import "strings"

// localizeMealType maps the classifier's English meal tags to their
// display labels. Unrecognized tags pass through unchanged.
func localizeMealType(mealType string) string {
	switch strings.ToLower(mealType) {
	case "breakfast":
		return "朝食"
	case "lunch":
		return "昼食"
	case "dinner":
		return "夕食"
	case "snack":
		return "間食"
	default:
		return mealType
	}
}
