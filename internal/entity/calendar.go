package entity

import "time"

type CalendarEvent struct {
	ID       int       `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Time     string    `json:"time" db:"event_time"`
	Date     string    `json:"date" db:"event_date"`
	Created  time.Time `json:"created" db:"created_at"`
	Verified bool      `json:"verified" db:"verified"`
}

type Calendar struct {
	Events []CalendarEvent `json:"events"`
}

func (c *Calendar) NextID() int {
	next := 1
	for _, e := range c.Events {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next
}
