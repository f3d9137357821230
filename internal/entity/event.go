package entity

import (
	"time"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

type EventCategory string

const (
	EventCategoryConference EventCategory = "conference"
	EventCategoryWorkshop   EventCategory = "workshop"
	EventCategorySocial     EventCategory = "social"
	EventCategorySports     EventCategory = "sports"
	EventCategoryOther      EventCategory = "other"
)

type Event struct {
	ID                  int64         `json:"id" db:"id"`
	Title               string        `json:"title" db:"title"`
	Description         string        `json:"description" db:"description"`
	Category            EventCategory `json:"category" db:"category"`
	Location            string        `json:"location" db:"location"`
	Date                time.Time     `json:"date" db:"date"`
	EndDate             time.Time     `json:"end_date" db:"end_date"`
	MaxParticipants     int           `json:"max_participants" db:"max_participants"`
	CurrentParticipants int           `json:"current_participants" db:"current_participants"`
	Price               float64       `json:"price" db:"price"`
	OrganizerID         int64         `json:"organizer_id" db:"organizer_id"`
	IsOutside           bool          `json:"is_outside" db:"is_outside"`
	Status              EventStatus   `json:"status" db:"status"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}

// EventDetails is the event detail payload. The forecast is attached only
// for outdoor events and only when the weather gateway could produce one.
type EventDetails struct {
	Event
	WeatherForecast *Forecast `json:"weather_forecast,omitempty"`
}
