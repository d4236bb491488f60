package ws

import (
	"encoding/json"

	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/observer"
)

// Message types exchanged with the editing surface.
const (
	TypeCheckboxChange = "checkboxChange"
	TypeExecute        = "execute"
	TypeSelection      = "selection"
	TypeView           = "view"
	TypeCheckboxResult = "checkboxResult"
	TypeExecuteResult  = "executeResult"
	TypeError          = "error"
)

type IncomingMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type ExecuteRequest struct {
	Command    string `json:"command"`
	ItemID     string `json:"itemId,omitempty"`
	ForceValue *bool  `json:"forceValue,omitempty"`
}

type SelectionRequest struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type ViewData struct {
	View      string           `json:"view"`
	Selection editor.Selection `json:"selection"`
}

type ExecuteResult struct {
	Command string `json:"command"`
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

type ErrorData struct {
	Message string `json:"message"`
}

type OutgoingMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func encode(messageType string, data any) []byte {
	payload, err := json.Marshal(OutgoingMessage{Type: messageType, Data: data})
	if err != nil {
		payload, _ = json.Marshal(OutgoingMessage{Type: TypeError, Data: ErrorData{Message: err.Error()}})
	}
	return payload
}

func viewMessage(view string, sel editor.Selection) []byte {
	return encode(TypeView, ViewData{View: view, Selection: sel})
}

func checkboxResultMessage(result observer.Result) []byte {
	return encode(TypeCheckboxResult, result)
}

func errorMessage(message string) []byte {
	return encode(TypeError, ErrorData{Message: message})
}
