package shared

import "time"

// BaseEntity provides common fields for all persisted entities.
// IDs are database-generated auto-increment integers; the client application
// round-trips them as plain numbers.
type BaseEntity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uint {
	return e.ID
}

// Versioned is embedded by entities that participate in optimistic concurrency
// control. Updates compare-and-swap on the version column so that two
// overlapping full syncs cannot silently overwrite each other's rows.
type Versioned struct {
	Version int `gorm:"not null;default:1" json:"-"`
}

// GetVersion returns the current version for optimistic locking
func (v *Versioned) GetVersion() int {
	return v.Version
}

// IncrementVersion increments the version number
func (v *Versioned) IncrementVersion() {
	v.Version++
}
