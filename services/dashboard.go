package services

import (
	"time"

	"github.com/bluestock/ipo-platform/models"
)

// DashboardBuckets groups IPOs by where the reference instant falls relative
// to their open and close dates.
type DashboardBuckets struct {
	Active   []models.DashboardIPO `json:"activeIPOs"`
	Upcoming []models.DashboardIPO `json:"upcomingIPOs"`
	Past     []models.DashboardIPO `json:"pastIPOs"`
}

// CategorizeIPOs places every row into exactly one bucket. An IPO open at the
// reference instant (inclusive on both boundaries) is active, one that has
// not yet opened is upcoming, everything else is past. The status label is
// rewritten to match the bucket.
func CategorizeIPOs(rows []models.DashboardIPO, now time.Time) DashboardBuckets {
	buckets := DashboardBuckets{
		Active:   make([]models.DashboardIPO, 0),
		Upcoming: make([]models.DashboardIPO, 0),
		Past:     make([]models.DashboardIPO, 0),
	}

	for _, ipo := range rows {
		switch {
		case !now.Before(ipo.OpeningDate) && !now.After(ipo.ClosingDate):
			ipo.Status = "Active"
			buckets.Active = append(buckets.Active, ipo)
		case now.Before(ipo.OpeningDate):
			ipo.Status = "Upcoming"
			buckets.Upcoming = append(buckets.Upcoming, ipo)
		default:
			ipo.Status = "PastIPO"
			buckets.Past = append(buckets.Past, ipo)
		}
	}
	return buckets
}
