package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID           string       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string       `gorm:"column:name;type:text" json:"name"`
	Email        string       `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string       `gorm:"column:password_hash;type:text" json:"-"`
	Role         UserRole     `gorm:"column:role;type:text;default:user" json:"role"`
	Provider     AuthProvider `gorm:"column:provider;type:text;default:local" json:"provider"`

	// back-references into the resumes collection; maintained separately
	// from the resume documents themselves
	ResumeIDs pq.StringArray `gorm:"column:resume_ids;type:text[]" json:"resumeIds"`

	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
