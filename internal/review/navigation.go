package review

import "resume-review/internal/domain/profile"

// Category is a status-based view filter over one job's profiles.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryPending     Category = "pending"
	CategoryShortlisted Category = "shortlisted"
	CategoryRejected    Category = "rejected"
)

func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case CategoryAll, CategoryPending, CategoryShortlisted, CategoryRejected:
		return Category(raw), true
	case "new": // older clients sent "new" for the pending view
		return CategoryPending, true
	}
	return "", false
}

// CategoryForStatus maps a status to the category that lists it.
func CategoryForStatus(st profile.Status) Category {
	switch st {
	case profile.StatusShortlisted:
		return CategoryShortlisted
	case profile.StatusRejected:
		return CategoryRejected
	}
	return CategoryPending
}

func (c Category) Matches(st profile.Status) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryPending:
		return st == profile.StatusNew
	case CategoryShortlisted:
		return st == profile.StatusShortlisted
	case CategoryRejected:
		return st == profile.StatusRejected
	}
	return false
}

// Filter keeps fetch order.
func Filter(profiles []profile.Profile, c Category) []profile.Profile {
	out := make([]profile.Profile, 0, len(profiles))
	for _, p := range profiles {
		if c.Matches(p.Status) {
			out = append(out, p)
		}
	}
	return out
}

// LandingIndex picks the profile to open right after a job fetch: the first
// New profile, or the first profile overall when none are New.
func LandingIndex(profiles []profile.Profile) int {
	for i, p := range profiles {
		if p.Status == profile.StatusNew {
			return i
		}
	}
	return 0
}

// NextTarget is where the reviewer lands after deciding on a profile.
type NextTarget struct {
	Profile  *profile.Profile
	Category Category
	// Exhausted means no category has anything left to show; the client
	// should return to the landing page.
	Exhausted bool
}

var fallbackOrder = []Category{CategoryPending, CategoryShortlisted, CategoryRejected}

// NextAfterDecision picks the next profile once one has been decided: the
// first remaining profile in the same category, excluding the decided one
// since its status change may not have moved it out of the filter yet; then
// the first profile of the next category that has any members; otherwise
// exhausted.
func NextAfterDecision(profiles []profile.Profile, c Category, decidedID string) NextTarget {
	for i := range profiles {
		if profiles[i].ID == decidedID {
			continue
		}
		if c.Matches(profiles[i].Status) {
			p := profiles[i]
			return NextTarget{Profile: &p, Category: c}
		}
	}

	for _, fc := range fallbackOrder {
		if fc == c {
			continue
		}
		for i := range profiles {
			if profiles[i].ID == decidedID {
				continue
			}
			if fc.Matches(profiles[i].Status) {
				p := profiles[i]
				return NextTarget{Profile: &p, Category: fc}
			}
		}
	}

	return NextTarget{Exhausted: true}
}

// PageItem is one entry of the pager: a page number or an ellipsis.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Active   bool `json:"active,omitempty"`
}

// PageItems computes 1-based pager entries: all pages when total is at most
// five, otherwise the first page, a window around the current page, the last
// page, and ellipses where the window does not touch an edge.
func PageItems(total, current int) []PageItem {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	page := func(n int) PageItem {
		return PageItem{Page: n, Active: n == current}
	}

	items := make([]PageItem, 0, 7)
	if total <= 5 {
		for i := 1; i <= total; i++ {
			items = append(items, page(i))
		}
		return items
	}

	items = append(items, page(1))
	if current > 3 {
		items = append(items, PageItem{Ellipsis: true})
	}

	start := current - 1
	if start < 2 {
		start = 2
	}
	end := current + 1
	if end > total-1 {
		end = total - 1
	}
	for i := start; i <= end; i++ {
		items = append(items, page(i))
	}

	if current < total-2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	items = append(items, page(total))

	return items
}
