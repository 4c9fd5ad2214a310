package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bySchool filters rows to one tenant. A nil school means the schoolless
// bucket, so it must render as IS NULL rather than an always-false "= NULL"
// comparison.
func bySchool(schoolID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if schoolID == nil {
			return db.Where("school_id IS NULL")
		}
		return db.Where("school_id = ?", schoolID)
	}
}

// schoolOrGlobal is the standard tenant read filter: the school's own rows
// plus the schoolless global ones.
func schoolOrGlobal(schoolID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if schoolID == nil {
			return db.Where("school_id IS NULL")
		}
		return db.Where("school_id = ? OR school_id IS NULL", schoolID)
	}
}
