package domain

import (
	"time"
)

// TranscriptExport stores metadata about an exported conversation.
// The transcript itself resides in S3.
type TranscriptExport struct {
	UserID      string    `json:"userId"`
	S3ObjectKey string    `json:"objectKey"`   // The unique key (path/filename) in the S3 bucket
	DownloadURL string    `json:"downloadUrl"` // Presigned, expires
	TurnCount   int       `json:"turnCount"`
	Size        int64     `json:"size"` // Bytes uploaded
	ExportedAt  time.Time `json:"exportedAt"`
}
