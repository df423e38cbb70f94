package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Activity is an event a user plans or has recorded: a hike, a run, a
// weekly training session. Continuous activities have no time range;
// duration activities must carry an ordered start and end.
type Activity struct {
	ID          uint64     `json:"id" gorm:"primaryKey"`
	CreatorID   uint64     `json:"creator_id" gorm:"index"`
	Name        string     `json:"name" gorm:"type:varchar(255)"`
	Description string     `json:"description"`
	Location    string     `json:"location" gorm:"type:varchar(255)"`
	Continuous  bool       `json:"continuous"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	gorm.Model  `json:"-"`
}

// Validate enforces the name and time-range rules.
func (a *Activity) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("activity name is required")
	}
	if a.Continuous {
		return nil
	}
	if a.StartTime == nil || a.EndTime == nil {
		return fmt.Errorf("duration activities require a start and end time")
	}
	if !a.EndTime.After(*a.StartTime) {
		return fmt.Errorf("activity end time must be after its start time")
	}
	return nil
}
