package domain

import "strings"

// JobFilter is the browse/search predicate over jobs. All set predicates are
// ANDed; zero values disable their predicate.
type JobFilter struct {
	Search     string
	Categories []Category
	MinBudget  *float64
	MaxBudget  *float64
}

// Matches reports whether j satisfies every predicate of f.
func (f JobFilter) Matches(j Job) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(j.Title), term) &&
			!strings.Contains(strings.ToLower(j.Description), term) {
			return false
		}
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, j.Category) {
		return false
	}
	if f.MinBudget != nil && j.Budget < *f.MinBudget {
		return false
	}
	if f.MaxBudget != nil && j.Budget > *f.MaxBudget {
		return false
	}
	return true
}

// FilterJobs returns the jobs matching f, keeping their order.
func FilterJobs(jobs []Job, f JobFilter) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Matches(j) {
			out = append(out, j)
		}
	}
	return out
}

func containsCategory(set []Category, c Category) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

// StatusTally counts applications per status.
type StatusTally struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// Total is the number of applications counted.
func (t StatusTally) Total() int {
	return t.Pending + t.Accepted + t.Rejected
}

// TallyStatuses counts apps by status.
func TallyStatuses(apps []Application) StatusTally {
	var t StatusTally
	for _, a := range apps {
		switch a.Status {
		case StatusPending:
			t.Pending++
		case StatusAccepted:
			t.Accepted++
		case StatusRejected:
			t.Rejected++
		}
	}
	return t
}
