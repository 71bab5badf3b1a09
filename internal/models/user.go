package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleProfessor UserRole = "professor"
)

// MaxExperienceTags is the hard cap on tags a profile may carry.
const MaxExperienceTags = 15

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index"`

	// Profile info
	Headline   *string `json:"headline" gorm:"size:200"`
	Pronouns   *string `json:"pronouns" gorm:"size:50"`
	About      *string `json:"about" gorm:"type:text"`
	Department *string `json:"department" gorm:"size:100;index"` // professors
	Major      *string `json:"major" gorm:"size:100;index"`      // students
	Year       *string `json:"year" gorm:"size:20;index"`        // students

	// Tag list, stored as a JSON array of strings.
	ExperienceTags datatypes.JSON `json:"experience_tags" gorm:"type:jsonb"`

	// File links (blob store URLs)
	ResumeLink *string `json:"resume_link" gorm:"size:500"`
	PhotoLink  *string `json:"photo_link" gorm:"size:500"`
	CoverLink  *string `json:"cover_link" gorm:"size:500"`

	// Status
	EmailVerified bool `json:"email_verified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// Tags decodes the stored tag list. A nil or invalid column yields an
// empty slice.
func (u *User) Tags() []string {
	if len(u.ExperienceTags) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(u.ExperienceTags, &tags); err != nil {
		return []string{}
	}
	return tags
}

// SetTags encodes the tag list back into the JSON column.
func (u *User) SetTags(tags []string) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	u.ExperienceTags = data
	return nil
}

// HasTag reports whether the profile already carries the tag,
// case-insensitively.
func (u *User) HasTag(tag string) bool {
	for _, t := range u.Tags() {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
