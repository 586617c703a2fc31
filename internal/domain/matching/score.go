package matching

import "strings"

// Result is the derived compatibility between a job and a candidate.
type Result struct {
	Score   int
	Matched []string
	Missing []string
}

// Score compares a job's required skills with a candidate's skills.
//
// Skills are trimmed and lower-cased before comparison and blanks are
// dropped. Matched and Missing keep the job's order and the job's own
// spelling. A job without skills always scores 0.
func Score(jobSkills, candidateSkills []string) Result {
	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		have[n] = struct{}{}
	}

	res := Result{Matched: []string{}, Missing: []string{}}
	total := 0
	for _, s := range jobSkills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		total++
		if _, ok := have[n]; ok {
			res.Matched = append(res.Matched, strings.TrimSpace(s))
		} else {
			res.Missing = append(res.Missing, strings.TrimSpace(s))
		}
	}

	res.Score = Percent(len(res.Matched), total)
	return res
}

func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Percent returns 100*part/total rounded half up, or 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
