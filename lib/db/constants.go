package db

import "errors"

const DocumentDoesNotExistError = "document not found"

var ErrDocumentNotFound = errors.New(DocumentDoesNotExistError)
