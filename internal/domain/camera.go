package domain

import "time"

type Camera struct {
	ID            string
	Name          string
	Description   string
	Contamination float64 // latest contamination score, 0..1
	Date          time.Time
	URL           string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
