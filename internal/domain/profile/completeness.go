package profile

import (
	"strings"

	"talent-hub/internal/domain/matching"
)

// completenessFields is the fixed, ordered checklist behind the progress
// indicator. Changing it changes every stored expectation of the percentage.
var completenessFields = []func(Profile) bool{
	func(p Profile) bool { return filled(p.FullName) },
	func(p Profile) bool { return filled(p.Phone) },
	func(p Profile) bool { return filled(p.Location) },
	func(p Profile) bool { return filled(p.Bio) },
	func(p Profile) bool { return filled(p.CurrentJobTitle) },
	func(p Profile) bool { return filled(p.CurrentCompany) },
	func(p Profile) bool { return filled(p.School) },
	func(p Profile) bool { return filled(p.Degree) },
	func(p Profile) bool { return filled(p.ResumeURL) },
	func(p Profile) bool { return len(p.Skills) > 0 },
}

// Completeness returns the share of tracked fields that are filled in, as a
// whole percent.
func Completeness(p Profile) int {
	n := 0
	for _, f := range completenessFields {
		if f(p) {
			n++
		}
	}
	return matching.Percent(n, len(completenessFields))
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
