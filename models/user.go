package models

import "time"

// Account roles, lowest to highest privilege.
const (
	RoleUser     = "user"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User is a platform account. Two account kinds exist: password accounts
// (PasswordHash set, GoogleID empty) and Google accounts (GoogleID set,
// PasswordHash empty). Kind() tells them apart; the hash is never serialized.
type User struct {
	ID           string    `bson:"id" json:"id,omitempty"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	GoogleID     string    `bson:"googleId,omitempty" json:"-"`
	Avatar       string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Favorites    []string  `bson:"favorites,omitempty" json:"favorites,omitempty"`
	Role         string    `bson:"role" json:"role"`
	Owner        string    `bson:"owner,omitempty" json:"owner,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AccountKind discriminates how an account authenticates.
type AccountKind string

const (
	AccountPassword AccountKind = "password"
	AccountGoogle   AccountKind = "google"
)

// Kind reports the account's authentication kind.
func (u *User) Kind() AccountKind {
	if u.GoogleID != "" && u.PasswordHash == "" {
		return AccountGoogle
	}
	return AccountPassword
}

// Profile is the self-service view of an account: password excluded,
// favorites resolved to provider summaries.
type Profile struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Avatar    string            `json:"avatar,omitempty"`
	Role      string            `json:"role"`
	Favorites []ProviderSummary `json:"favorites"`
	CreatedAt time.Time         `json:"createdAt"`
}
