package models

import "time"

// Review is a user's rating of a provider. At most one review exists per
// (provider, user) pair, enforced by a unique compound index.
type Review struct {
	ID          string     `bson:"id" json:"id,omitempty"`
	Provider    string     `bson:"provider" json:"provider"`
	User        string     `bson:"user" json:"user"`
	Username    string     `bson:"username,omitempty" json:"username,omitempty"`
	UserAvatar  string     `bson:"userAvatar,omitempty" json:"userAvatar,omitempty"`
	Rating      int        `bson:"rating" json:"rating"`
	Comment     string     `bson:"comment" json:"comment"`
	Images      []string   `bson:"images,omitempty" json:"images,omitempty"`
	Likes       int        `bson:"likes" json:"likes"`
	Verified    bool       `bson:"verified" json:"verified"`
	ServiceDate *time.Time `bson:"serviceDate,omitempty" json:"serviceDate,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
