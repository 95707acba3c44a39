package models

// UploadResponse is returned by POST /api/upload
type UploadResponse struct {
	URL string `json:"url"`
}

// FileIssue describes one file that was rejected or failed to upload
type FileIssue struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// ProductImagesResponse is returned after an image-set edit is committed
type ProductImagesResponse struct {
	Product  *Product    `json:"product"`
	Primary  *string     `json:"primary"`
	Rejected []FileIssue `json:"rejected"`
	Failed   []FileIssue `json:"failed"`
}
