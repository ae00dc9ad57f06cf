package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseDocument records uploaded file metadata for a case. Rows exist only
// while the parent case is mutable (draft) at insert/delete time; the bytes
// themselves live in blob storage at StoragePath.
type CaseDocument struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	UserID string `gorm:"type:uuid;not null" json:"user_id"`

	FileName    string `gorm:"not null" json:"file_name"`
	FileType    string `gorm:"type:varchar(100)" json:"file_type"`
	FileSize    int64  `gorm:"not null" json:"file_size"`
	StoragePath string `gorm:"not null" json:"-"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (d *CaseDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
