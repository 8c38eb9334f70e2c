package syncdata

import "time"

// DataTypeFullSync tags snapshots produced by the full-sync endpoint.
const DataTypeFullSync = "full_sync"

// Snapshot is an append-only audit record of a raw sync payload. It is
// write-only: no code path reads snapshots back, they exist for operator
// recovery and audit.
type Snapshot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DataType    string    `gorm:"not null" json:"data_type"`
	DataContent string    `gorm:"type:text" json:"data_content"`
	SyncedAt    time.Time `gorm:"autoCreateTime" json:"synced_at"`
}

// TableName returns the table name for GORM
func (Snapshot) TableName() string {
	return "sync_data"
}

// NewSnapshot creates a snapshot for the given payload.
func NewSnapshot(dataType, content string) *Snapshot {
	return &Snapshot{
		DataType:    dataType,
		DataContent: content,
	}
}
