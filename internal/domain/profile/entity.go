package profile

import "time"

type Status string

const (
	StatusNew         Status = "New"
	StatusShortlisted Status = "Shortlisted"
	StatusRejected    Status = "Rejected"
)

// ParseStatus normalizes a wire value; anything unrecognized (including the
// empty string) counts as New.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusShortlisted:
		return StatusShortlisted
	case StatusRejected:
		return StatusRejected
	default:
		return StatusNew
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}

// Profile is one resume submission tied to a job. The ID is server-assigned
// for hosted-table rows and generated locally for spreadsheet rows; both are
// stable for the lifetime of the record.
type Profile struct {
	ID        string
	JobID     string
	Name      string
	Email     string
	Status    Status
	PDFURL    string
	UpdatedAt time.Time
}

// Stats counts profiles per status across one job's live list.
type Stats struct {
	All         int `json:"all"`
	New         int `json:"new"`
	Shortlisted int `json:"shortlisted"`
	Rejected    int `json:"rejected"`
}

func CountStats(profiles []Profile) Stats {
	st := Stats{All: len(profiles)}
	for _, p := range profiles {
		switch p.Status {
		case StatusShortlisted:
			st.Shortlisted++
		case StatusRejected:
			st.Rejected++
		default:
			st.New++
		}
	}
	return st
}
