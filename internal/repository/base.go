// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// translateError maps storage errors onto AppErrors so callers never see
// driver-specific failures for missing rows or constraint hits.
func translateError(err error, resource string, id interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, id)
	case database.IsUniqueViolation(err):
		return models.NewConflictError(resource+" already exists", err)
	default:
		return err
	}
}

// requireAffected turns a zero-row write into NotFound.
func requireAffected(tx *gorm.DB, resource string, id interface{}) error {
	if tx.Error != nil {
		return translateError(tx.Error, resource, id)
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lowercase LIKE pattern matching s anywhere, with
// wildcards in s taken literally. Pair it with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// authorColumns limits preloaded authors to their public columns.
func authorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "is_admin", "created_at", "updated_at")
}
