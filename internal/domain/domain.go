// Package domain holds the persisted records of the course platform and the payload
// shapes used to create and patch them.
package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Models lists every persisted record in migration order (parents before children).
func Models() []any {
	return []any{
		&User{},
		&Course{},
		&Enrollment{},
		&Testimonial{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (c *Course) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (e *Enrollment) BeforeCreate(_ *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

func (t *Testimonial) BeforeCreate(_ *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
