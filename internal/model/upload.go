package model

// ImageUploadResponse describes a file stored on local disk.
type ImageUploadResponse struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int    `json:"size"`
	ContentType string `json:"content_type"`
}

type S3UploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Key     string `json:"key,omitempty"`
	Message string `json:"message,omitempty"`
}

type S3MultiUploadResponse struct {
	Success bool     `json:"success"`
	URLs    []string `json:"urls"`
	Keys    []string `json:"keys"`
	Failed  []string `json:"failed"`
}

// PresignedUploadResponse carries a presigned PUT for direct browser upload.
type PresignedUploadResponse struct {
	Success   bool              `json:"success"`
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	FinalURL  string            `json:"final_url"`
	Key       string            `json:"key"`
}

type UploadConfig struct {
	S3Configured      bool     `json:"s3_configured"`
	BaseURL           string   `json:"base_url,omitempty"`
	MaxFileSizeMB     int      `json:"max_file_size_mb"`
	AllowedExtensions []string `json:"allowed_extensions"`
}

type CloudinarySignature struct {
	Signature    string `json:"signature"`
	Timestamp    int64  `json:"timestamp"`
	CloudName    string `json:"cloud_name"`
	APIKey       string `json:"api_key"`
	Folder       string `json:"folder"`
	ResourceType string `json:"resource_type"`
}

type CloudinaryConfig struct {
	Configured bool   `json:"configured"`
	CloudName  string `json:"cloud_name,omitempty"`
}
