package domain

import "time"

// User is created on first authentication and upserted on every later one.
// ID is the identity provider's opaque subject.
type User struct {
	ID              string    `gorm:"column:id;type:varchar(255);primaryKey" json:"id"`
	Email           *string   `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email,omitempty"`
	FirstName       *string   `gorm:"column:first_name;type:varchar(255)" json:"first_name,omitempty"`
	LastName        *string   `gorm:"column:last_name;type:varchar(255)" json:"last_name,omitempty"`
	ProfileImageURL *string   `gorm:"column:profile_image_url;type:varchar(1024)" json:"profile_image_url,omitempty"`
	IsAdmin         bool      `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserUpsert carries the identity claims merged into the users row.
type UserUpsert struct {
	ID              string  `json:"id" validate:"required,max=255"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,max=255"`
	LastName        *string `json:"last_name,omitempty" validate:"omitempty,max=255"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" validate:"omitempty,max=1024"`
	IsAdmin         *bool   `json:"is_admin,omitempty"`
}

// Record converts the upsert payload into a row; a nil IsAdmin inserts as non-admin.
func (u UserUpsert) Record() *User {
	row := &User{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}
	if u.IsAdmin != nil {
		row.IsAdmin = *u.IsAdmin
	}
	return row
}

// MergeColumns lists the columns an upsert overwrites on conflict.
// Absent optional claims leave the stored value alone.
func (u UserUpsert) MergeColumns() []string {
	cols := []string{}
	if u.Email != nil {
		cols = append(cols, "email")
	}
	if u.FirstName != nil {
		cols = append(cols, "first_name")
	}
	if u.LastName != nil {
		cols = append(cols, "last_name")
	}
	if u.ProfileImageURL != nil {
		cols = append(cols, "profile_image_url")
	}
	if u.IsAdmin != nil {
		cols = append(cols, "is_admin")
	}
	return append(cols, "updated_at")
}
