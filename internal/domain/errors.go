package domain

import "errors"

var (
	ErrJobNotFound         = errors.New("parse job not found")
	ErrDocumentNotFound    = errors.New("parsed document not found")
	ErrEmptyFileContent    = errors.New("file content is empty")
	ErrMissingDriveFileID  = errors.New("missing drive file id")
	ErrUnknownModel        = errors.New("unknown model id")
	ErrTextExtractionEmpty = errors.New("no text could be extracted from document")
)
