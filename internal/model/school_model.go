package model

import (
	"time"

	"github.com/google/uuid"
)

type School struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	AdminID   uuid.UUID `gorm:"type:uuid;not null" json:"admin"`
	Admin     *User     `gorm:"foreignKey:AdminID" json:"adminInfo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *School) TableName() string {
	return "schools"
}
