package model

import "time"

// Login holds the argon2id hash of an emailed access token. Expiration is a
// unix timestamp in seconds; nil never expires.
type Login struct {
	Email      string `gorm:"column:email;primaryKey;size:255" json:"email"`
	Hash       string `gorm:"column:hash;size:255;not null" json:"-"`
	Expiration *int64 `gorm:"column:expiration" json:"expiration,omitempty"`
}

func (Login) TableName() string { return "login" }

func (l *Login) Expired(now time.Time) bool {
	return l.Expiration != nil && now.Unix() > *l.Expiration
}

type Admin struct {
	Email string `gorm:"column:email;primaryKey;size:255" json:"email"`
}

func (Admin) TableName() string { return "admin" }
