package models

import "time"

// Coordinates holds a plain lat/lng pair as entered on the listing form.
type Coordinates struct {
	Lat float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// Location is the postal address block of a listing.
type Location struct {
	Address     string      `bson:"address" json:"address"`
	City        string      `bson:"city" json:"city"`
	State       string      `bson:"state" json:"state"`
	ZipCode     string      `bson:"zipCode" json:"zipCode"`
	Coordinates Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// DayHours is an open/close pair for a single weekday, "HH:MM" strings.
type DayHours struct {
	Open  string `bson:"open,omitempty" json:"open,omitempty"`
	Close string `bson:"close,omitempty" json:"close,omitempty"`
}

// BusinessHours maps weekdays (monday..sunday) to opening hours.
type BusinessHours map[string]DayHours

// Service is a single offering on a provider's listing.
type Service struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Price       string `bson:"price,omitempty" json:"price,omitempty"`
}

// Provider is a business listing in the directory.
//
// AverageRating and ReviewCount are derived from the reviews collection and are
// never accepted from clients; the review service recomputes them on every
// review mutation.
type Provider struct {
	ID            string        `bson:"id" json:"id,omitempty"`
	Name          string        `bson:"name" json:"name"`
	Category      string        `bson:"category" json:"category"`
	CategoryName  string        `bson:"categoryName,omitempty" json:"categoryName,omitempty"`
	Description   string        `bson:"description" json:"description"`
	Contact       string        `bson:"contact" json:"contact"`
	Phone         string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string        `bson:"email,omitempty" json:"email,omitempty"`
	Website       string        `bson:"website,omitempty" json:"website,omitempty"`
	Location      Location      `bson:"location" json:"location"`
	Images        []string      `bson:"images,omitempty" json:"images,omitempty"`
	AverageRating float64       `bson:"averageRating" json:"averageRating"`
	ReviewCount   int           `bson:"reviewCount" json:"reviewCount"`
	Featured      bool          `bson:"featured" json:"featured"`
	Verified      bool          `bson:"verified" json:"verified"`
	BusinessHours BusinessHours `bson:"businessHours,omitempty" json:"businessHours,omitempty"`
	Services      []Service     `bson:"services,omitempty" json:"services,omitempty"`
	Owner         string        `bson:"owner,omitempty" json:"owner,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ProviderSummary is the shape embedded in favorites listings.
type ProviderSummary struct {
	ID            string   `bson:"id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Description   string   `bson:"description" json:"description"`
	Category      string   `bson:"category" json:"category"`
	Location      Location `bson:"location" json:"location"`
	AverageRating float64  `bson:"averageRating" json:"averageRating"`
}
