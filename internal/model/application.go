package model

import "time"

// DefaultStatus is applied when a new application arrives without a status.
// The column is free-form text, not an enum: trackers grow statuses like
// "Phone Screen" or "Ghosted" without schema changes.
const DefaultStatus = "Applied"

// Application represents one tracked job application.
//
// There is intentionally no user_id column: records form a single shared pool
// visible to every authenticated user.
type Application struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CompanyName     string    `json:"company_name" gorm:"size:255;not null"`
	JobTitle        string    `json:"job_title" gorm:"size:255;not null"`
	Status          string    `json:"status" gorm:"size:50;not null;default:'Applied'"`
	ApplicationDate time.Time `json:"application_date" gorm:"type:date"`
	JobDescription  string    `json:"job_description" gorm:"type:text"`
	Notes           string    `json:"notes" gorm:"type:text"`
	URL             string    `json:"url" gorm:"size:2048"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
