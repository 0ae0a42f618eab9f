package model

// ContentItem is an uploaded teaching resource (document, image or video).
// URL points at the configured storage backend; Duration is only set for
// videos that could be probed at upload time.
// swagger:model ContentItem
type ContentItem struct {
	UUIDBase
	SchoolID    string  `gorm:"size:64;index;not null" json:"school_id"`
	UploadedBy  string  `gorm:"size:36;index" json:"uploaded_by"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Subject     string  `gorm:"size:100;index" json:"subject"`
	Class       string  `gorm:"size:50" json:"class"`
	FileName    string  `gorm:"size:255" json:"file_name"`
	FileSize    int64   `json:"file_size"`
	ContentType string  `gorm:"size:100" json:"content_type"`
	URL         string  `gorm:"size:512" json:"url"`
	Likes       int     `gorm:"default:0" json:"likes"`
	Duration    float64 `json:"duration,omitempty"` // seconds, videos only
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
}

func (ContentItem) TableName() string {
	return "content_items"
}
