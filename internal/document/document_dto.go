package document

type UploaderInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type DocumentResponse struct {
	ID         string        `json:"id"`
	FileURL    string        `json:"fileUrl"`
	FileType   string        `json:"fileType"`
	FileName   string        `json:"fileName"`
	UploadedAt string        `json:"uploadedAt"`
	UploadedBy *UploaderInfo `json:"uploadedBy,omitempty"`
}

type UploadResult struct {
	Message  string            `json:"message"`
	Document *DocumentResponse `json:"document"`
	FileURL  string            `json:"fileUrl"`
}
