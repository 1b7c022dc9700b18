// Package models defines domain models for the meeting pulse system.
package models

import (
	"time"
)

// User represents an application user.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:255" json:"username"`
	Email     string    `gorm:"size:255" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model.
func (User) TableName() string {
	return "users"
}

// UserSettings holds per-user credentials for the external data sources.
type UserSettings struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User              User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GoogleAccessToken string     `gorm:"type:text" json:"-"`
	GoogleTokenExpiry *time.Time `json:"google_token_expiry"`
	JiraHost          string     `gorm:"size:255" json:"jira_host"`
	JiraEmail         string     `gorm:"size:255" json:"jira_email"`
	JiraAPIToken      string     `gorm:"type:text" json:"-"`
	JiraJQLQuery      string     `gorm:"type:text" json:"jira_jql_query"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName specifies the table name for UserSettings model.
func (UserSettings) TableName() string {
	return "user_settings"
}
