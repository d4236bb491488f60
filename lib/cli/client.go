// Package cli is a websocket client for a todolist document. It backs the
// "cli" and "loadtest" commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/ether/etherpad-todolist/lib/observer"
	"github.com/ether/etherpad-todolist/lib/ws"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Document is one websocket session on a document.
type Document struct {
	docID     string
	conn      *websocket.Conn
	connWrite sync.Mutex
	eventLock sync.RWMutex
	events    map[string][]func(json.RawMessage)
	closeChan chan struct{}
	closeOnce sync.Once
	logger    *zap.SugaredLogger
}

// DocumentURL turns an http(s) server address into the websocket URL of docID.
func DocumentURL(host, docID string) (string, error) {
	u, err := url.Parse(host)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	base := strings.TrimSuffix(u.EscapedPath(), "/")
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/documents/" + docID
	u.RawPath = base + "/ws/documents/" + url.PathEscape(docID)
	return u.String(), nil
}

// Connect dials the document websocket and starts reading messages.
func Connect(ctx context.Context, host, docID string, logger *zap.SugaredLogger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	wsURL, err := DocumentURL(host, docID)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	d := &Document{
		docID:     docID,
		conn:      conn,
		events:    make(map[string][]func(json.RawMessage)),
		closeChan: make(chan struct{}),
		logger:    logger,
	}
	return d, nil
}

// Listen reads messages until the connection closes. Handlers must be
// registered before Listen is started.
func (d *Document) Listen() error {
	defer d.Close()
	for {
		_, message, err := d.conn.ReadMessage()
		if err != nil {
			select {
			case <-d.closeChan:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		var incoming ws.IncomingMessage
		if err := json.Unmarshal(message, &incoming); err != nil {
			d.logger.Warnw("could not decode server message", "error", err)
			continue
		}
		d.emit(incoming.Type, incoming.Data)
	}
}

func (d *Document) On(messageType string, handler func(json.RawMessage)) {
	d.eventLock.Lock()
	defer d.eventLock.Unlock()
	d.events[messageType] = append(d.events[messageType], handler)
}

func (d *Document) emit(messageType string, data json.RawMessage) {
	d.eventLock.RLock()
	handlers := d.events[messageType]
	d.eventLock.RUnlock()
	for _, handler := range handlers {
		handler(data)
	}
}

func (d *Document) OnView(callback func(view ws.ViewData)) {
	d.On(ws.TypeView, func(data json.RawMessage) {
		var view ws.ViewData
		if err := json.Unmarshal(data, &view); err == nil {
			callback(view)
		}
	})
}

func (d *Document) OnCheckboxResult(callback func(result observer.Result)) {
	d.On(ws.TypeCheckboxResult, func(data json.RawMessage) {
		var result observer.Result
		if err := json.Unmarshal(data, &result); err == nil {
			callback(result)
		}
	})
}

func (d *Document) OnExecuteResult(callback func(result ws.ExecuteResult)) {
	d.On(ws.TypeExecuteResult, func(data json.RawMessage) {
		var result ws.ExecuteResult
		if err := json.Unmarshal(data, &result); err == nil {
			callback(result)
		}
	})
}

func (d *Document) OnError(callback func(message string)) {
	d.On(ws.TypeError, func(data json.RawMessage) {
		var errData ws.ErrorData
		if err := json.Unmarshal(data, &errData); err == nil {
			callback(errData.Message)
		}
	})
}

func (d *Document) send(messageType string, data any) error {
	payload, err := json.Marshal(ws.OutgoingMessage{Type: messageType, Data: data})
	if err != nil {
		return err
	}
	d.connWrite.Lock()
	defer d.connWrite.Unlock()
	return d.conn.WriteMessage(websocket.TextMessage, payload)
}

// Toggle reports a click on the checkbox of itemID.
func (d *Document) Toggle(itemID string, checked bool) error {
	return d.send(ws.TypeCheckboxChange, observer.CheckboxChange{
		Tag: "input",
		Attributes: map[string]string{
			"type":                   "checkbox",
			observer.ItemIDAttribute: itemID,
		},
		Checked: checked,
	})
}

func (d *Document) Execute(command, itemID string) error {
	return d.send(ws.TypeExecute, ws.ExecuteRequest{Command: command, ItemID: itemID})
}

func (d *Document) Select(start, end int) error {
	return d.send(ws.TypeSelection, ws.SelectionRequest{Start: start, End: end})
}

func (d *Document) Close() {
	d.closeOnce.Do(func() {
		close(d.closeChan)
		d.connWrite.Lock()
		_ = d.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		d.connWrite.Unlock()
		_ = d.conn.Close()
	})
}

type runArgs struct {
	host    string
	docID   string
	command string
	itemID  string
}

func parseCLIArgs(args []string) (runArgs, error) {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	host := fs.String("host", "http://127.0.0.1:9001", "The server to connect to")
	docID := fs.String("doc", "", "The document to open")
	command := fs.String("command", "", "Command to execute after connecting")
	itemID := fs.String("item", "", "List item id passed to the command")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		*host = args[0]
		args = args[1:]
	}

	if err := fs.Parse(args); err != nil {
		return runArgs{}, err
	}
	if *docID == "" {
		return runArgs{}, errors.New("-doc is required")
	}
	return runArgs{host: *host, docID: *docID, command: *command, itemID: *itemID}, nil
}

// RunFromCLI opens a document, prints its editing view and optionally runs a
// command, printing every view update until the command has been answered.
func RunFromCLI(ctx context.Context, logger *zap.SugaredLogger, args []string, out io.Writer) error {
	parsed, err := parseCLIArgs(args)
	if err != nil {
		return err
	}

	doc, err := Connect(ctx, parsed.host, parsed.docID, logger)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	var once sync.Once
	finish := func() { once.Do(func() { close(done) }) }

	first := true
	doc.OnView(func(view ws.ViewData) {
		fmt.Fprintln(out, view.View)
		if first && parsed.command == "" {
			finish()
		}
		first = false
	})
	doc.OnExecuteResult(func(result ws.ExecuteResult) {
		fmt.Fprintf(out, "%s applied=%t %s\n", result.Command, result.Applied, result.Error)
		finish()
	})
	doc.OnError(func(message string) {
		fmt.Fprintln(out, "error: "+message)
		finish()
	})

	listenErr := make(chan error, 1)
	go func() { listenErr <- doc.Listen() }()

	if parsed.command != "" {
		if err := doc.Execute(parsed.command, parsed.itemID); err != nil {
			doc.Close()
			return err
		}
	}

	select {
	case <-done:
		doc.Close()
		return nil
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		doc.Close()
		return ctx.Err()
	}
}
