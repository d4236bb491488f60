package editor

import (
	"errors"

	"github.com/ether/etherpad-todolist/lib/db"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrIndexOutOfRange  = errors.New("block index out of range")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrDocumentNotFound = db.ErrDocumentNotFound
)
