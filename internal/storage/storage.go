// Package storage is the data access layer for the console: typed CRUD for
// users, hotels and subcros, the two joined views, and the raw query
// gateway. Every method is a single parameterized statement (or a short
// sequence of them); there are no transactions spanning statements.
package storage

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup or mutation matched no row.
var ErrNotFound = errors.New("record not found")

type Storage struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}
