package dto

// CreateDocumentRequest registers document file metadata for the caller's school
type CreateDocumentRequest struct {
	Title    string `json:"title" binding:"required" example:"Term 1 fee structure"`
	Category string `json:"category" example:"FINANCE"`
	FilePath string `json:"filePath" binding:"required" example:"documents/fee_structure_t1.pdf"`
	FileSize int64  `json:"fileSize" binding:"gte=0" example:"48213"`
}
