// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// AuditInfo holds the audit timestamps shared by every persisted entity.
// Soft deletion is a predicate over DeletedAt, not a separate flag.
type AuditInfo struct {
	CreatedAt  time.Time
	ModifiedAt time.Time
	DeletedAt  *time.Time
}

// NewAuditInfo creates audit info stamped with the current UTC time.
func NewAuditInfo() AuditInfo {
	now := time.Now().UTC()
	return AuditInfo{
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// IsDeleted reports whether the entity has been soft-deleted.
func (a *AuditInfo) IsDeleted() bool {
	return a.DeletedAt != nil
}

// SoftDelete marks the entity as deleted without removing the record.
func (a *AuditInfo) SoftDelete() {
	now := time.Now().UTC()
	a.DeletedAt = &now
	a.ModifiedAt = now
}

// Restore clears the soft-delete marker.
func (a *AuditInfo) Restore() {
	a.DeletedAt = nil
	a.ModifiedAt = time.Now().UTC()
}

// Touch updates the modification timestamp.
func (a *AuditInfo) Touch() {
	a.ModifiedAt = time.Now().UTC()
}
