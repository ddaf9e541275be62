package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday labels accepted for timeslots, Monday through Friday.
const (
	DayMon = "Mon"
	DayTue = "Tue"
	DayWed = "Wed"
	DayThu = "Thu"
	DayFri = "Fri"
)

// WeekdayOrder fixes the iteration order of teaching days.
var WeekdayOrder = []string{DayMon, DayTue, DayWed, DayThu, DayFri}

var weekdayRank = map[string]int{
	DayMon: 1,
	DayTue: 2,
	DayWed: 3,
	DayThu: 4,
	DayFri: 5,
}

// WeekdayRank returns the 1-based position of a day within the teaching
// week, or 0 when the label is unknown.
func WeekdayRank(day string) int {
	return weekdayRank[day]
}

// Timeslot is one teachable period in the weekly grid. Identity is
// (day, period), unique.
type Timeslot struct {
	ID        string    `db:"id" json:"id"`
	Day       string    `db:"day" json:"day"`
	Period    string    `db:"period" json:"period"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Label returns the lowercased "<day>-<period>" form used by constraint
// payloads to reference a slot without knowing its id.
func (t Timeslot) Label() string {
	return strings.ToLower(fmt.Sprintf("%s-%s", t.Day, t.Period))
}
