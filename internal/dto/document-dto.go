package dto

import "time"

// DocumentUpload is one file out of a multipart batch, already read into
// memory by the handler (uploads are capped well below any sane memory
// limit).
type DocumentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

type DocumentResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
}
