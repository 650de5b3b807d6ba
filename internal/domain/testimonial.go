package domain

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is always inserted unapproved; moderation flips IsApproved.
type Testimonial struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Role           string    `gorm:"column:role;type:varchar(255);not null" json:"role"`
	Content        string    `gorm:"column:content;type:text;not null" json:"content"`
	Rating         int       `gorm:"column:rating;not null" json:"rating"`
	ImageURL       *string   `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	CourseCategory *string   `gorm:"column:course_category;type:varchar(100)" json:"course_category,omitempty"`
	IsApproved     bool      `gorm:"column:is_approved;not null;default:false;index" json:"is_approved"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;autoCreateTime;index" json:"created_at"`
}

func (Testimonial) TableName() string { return "testimonials" }

type TestimonialInput struct {
	Name           string  `json:"name" validate:"required,max=255"`
	Role           string  `json:"role" validate:"required,max=255"`
	Content        string  `json:"content" validate:"required"`
	Rating         int     `json:"rating" validate:"gte=1,lte=5"`
	ImageURL       *string `json:"image_url,omitempty" validate:"omitempty,url"`
	CourseCategory *string `json:"course_category,omitempty" validate:"omitempty,max=100"`
}

func (in TestimonialInput) Record() *Testimonial {
	return &Testimonial{
		Name:           in.Name,
		Role:           in.Role,
		Content:        in.Content,
		Rating:         in.Rating,
		ImageURL:       in.ImageURL,
		CourseCategory: in.CourseCategory,
		IsApproved:     false,
	}
}
