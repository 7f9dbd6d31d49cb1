package apimodels

import "io"

// FileData is an uploaded file passed from a controller to a handler.
type FileData struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}
