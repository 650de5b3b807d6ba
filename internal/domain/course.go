package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Course struct {
	ID            uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title         string                      `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description   string                      `gorm:"column:description;type:text;not null" json:"description"`
	Category      string                      `gorm:"column:category;type:varchar(100);not null;index" json:"category"`
	Thumbnail     string                      `gorm:"column:thumbnail;type:text;not null" json:"thumbnail"`
	Price         float64                     `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	OriginalPrice *float64                    `gorm:"column:original_price;type:decimal(10,2)" json:"original_price,omitempty"`
	Discount      int                         `gorm:"column:discount;not null;default:0" json:"discount"`
	Rating        float64                     `gorm:"column:rating;type:decimal(3,2);not null;default:0" json:"rating"`
	ReviewCount   int                         `gorm:"column:review_count;not null;default:0" json:"review_count"`
	IsBestseller  bool                        `gorm:"column:is_bestseller;not null;default:false" json:"is_bestseller"`
	IsNewBatch    bool                        `gorm:"column:is_new_batch;not null;default:false" json:"is_new_batch"`
	EnrolledCount int                         `gorm:"column:enrolled_count;not null;default:0;index" json:"enrolled_count"`
	Features      datatypes.JSONSlice[string] `gorm:"column:features" json:"features"`
	CreatedAt     time.Time                   `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (Course) TableName() string { return "courses" }

// CourseInput is the create payload. The counters start at zero and are not settable here.
type CourseInput struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Description   string   `json:"description" validate:"required"`
	Category      string   `json:"category" validate:"required,max=100"`
	Thumbnail     string   `json:"thumbnail" validate:"required"`
	Price         float64  `json:"price" validate:"gte=0,lt=100000000"`
	OriginalPrice *float64 `json:"original_price,omitempty" validate:"omitempty,gte=0,lt=100000000"`
	Discount      int      `json:"discount" validate:"gte=0,lte=100"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	IsBestseller  bool     `json:"is_bestseller"`
	IsNewBatch    bool     `json:"is_new_batch"`
	Features      []string `json:"features,omitempty" validate:"omitempty,dive,required"`
}

func (in CourseInput) Record() *Course {
	features := in.Features
	if features == nil {
		features = []string{}
	}
	return &Course{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Thumbnail:     in.Thumbnail,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Discount:      in.Discount,
		Rating:        in.Rating,
		IsBestseller:  in.IsBestseller,
		IsNewBatch:    in.IsNewBatch,
		Features:      datatypes.NewJSONSlice(features),
	}
}

// CoursePatch is a partial update: nil fields are left untouched.
// enrolled_count is owned by the enrollment aggregate and has no field here.
type CoursePatch struct {
	Title         *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	Category      *string   `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Thumbnail     *string   `json:"thumbnail,omitempty" validate:"omitempty,min=1"`
	Price         *float64  `json:"price,omitempty" validate:"omitempty,gte=0,lt=100000000"`
	OriginalPrice *float64  `json:"original_price,omitempty" validate:"omitempty,gte=0,lt=100000000"`
	Discount      *int      `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Rating        *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ReviewCount   *int      `json:"review_count,omitempty" validate:"omitempty,gte=0"`
	IsBestseller  *bool     `json:"is_bestseller,omitempty"`
	IsNewBatch    *bool     `json:"is_new_batch,omitempty"`
	Features      *[]string `json:"features,omitempty" validate:"omitempty,dive,required"`
}

// Columns returns the column updates for the provided fields only.
func (p CoursePatch) Columns() map[string]any {
	out := map[string]any{}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.Category != nil {
		out["category"] = *p.Category
	}
	if p.Thumbnail != nil {
		out["thumbnail"] = *p.Thumbnail
	}
	if p.Price != nil {
		out["price"] = *p.Price
	}
	if p.OriginalPrice != nil {
		out["original_price"] = *p.OriginalPrice
	}
	if p.Discount != nil {
		out["discount"] = *p.Discount
	}
	if p.Rating != nil {
		out["rating"] = *p.Rating
	}
	if p.ReviewCount != nil {
		out["review_count"] = *p.ReviewCount
	}
	if p.IsBestseller != nil {
		out["is_bestseller"] = *p.IsBestseller
	}
	if p.IsNewBatch != nil {
		out["is_new_batch"] = *p.IsNewBatch
	}
	if p.Features != nil {
		out["features"] = datatypes.NewJSONSlice(*p.Features)
	}
	return out
}
