package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a login account only. There is deliberately no foreign key to an
// employee row; accounts and employee records live independent lifecycles.
type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email               string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password            string    `gorm:"type:varchar(255);not null"`
	ResetToken          *string   `gorm:"type:varchar(64);index"`
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (User) TableName() string { return "users" }
