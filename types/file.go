package types

// File describes a stored file. During a chunked upload ChunksUploaded trails ChunksTotal until the last chunk
// has been accepted.
type File struct {
	ID             string    `json:"$id"`
	BucketID       string    `json:"bucketId"`
	Name           string    `json:"name"`
	MimeType       string    `json:"mimeType"`
	Signature      string    `json:"signature,omitempty"`
	SizeOriginal   int64     `json:"sizeOriginal"`
	ChunksTotal    int       `json:"chunksTotal"`
	ChunksUploaded int       `json:"chunksUploaded"`
	CreatedAt      Timestamp `json:"$createdAt"`
	UpdatedAt      Timestamp `json:"$updatedAt"`
}

// Complete reports whether every chunk of the file has been received.
func (f *File) Complete() bool {
	return f.ChunksUploaded >= f.ChunksTotal
}

// FileList is one page of files.
type FileList struct {
	Total int    `json:"total"`
	Files []File `json:"files"`
}

// UploadProgress is reported after each chunk of an upload.
type UploadProgress struct {
	FileID         string
	UploadID       string
	BytesUploaded  int64
	BytesTotal     int64
	ChunksUploaded int
	ChunksTotal    int
	Percent        float64
}
