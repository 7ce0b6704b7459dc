package models

import "time"

// Category is a taxonomy entry providers belong to.
type Category struct {
	ID          string    `bson:"id" json:"id,omitempty"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
