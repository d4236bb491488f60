// Package loadtest drives a document with concurrent checkbox togglers and
// read-only lurkers over the websocket.
package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ether/etherpad-todolist/lib/cli"
	"github.com/ether/etherpad-todolist/lib/observer"
	"github.com/ether/etherpad-todolist/lib/ws"
	"go.uber.org/zap"
)

type Config struct {
	Host     string
	DocID    string
	Items    int
	Togglers int
	Lurkers  int
	Duration time.Duration
	Interval time.Duration
}

type Metrics struct {
	ClientsConnected int64
	TogglesSent      int64
	TogglesApplied   int64
	TogglesRejected  int64
	ErrorCount       int64
	ViewsFromServer  int64
	StartTime        time.Time
	Elapsed          time.Duration
}

func parseRunArgs(args []string) (Config, error) {
	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	host := fs.String("host", "http://127.0.0.1:9001", "The host to test")
	docID := fs.String("doc", "", "Document to load, a random one when empty")
	items := fs.Int("items", 20, "Number of todo items in the document")
	togglers := fs.Int("togglers", 1, "Number of clients toggling checkboxes")
	lurkers := fs.Int("lurkers", 3, "Number of clients only receiving views")
	duration := fs.Duration("duration", 10*time.Second, "Duration of the test")
	interval := fs.Duration("interval", 400*time.Millisecond, "Delay between toggles of one client")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		*host = args[0]
		args = args[1:]
	}

	err := fs.Parse(args)
	return Config{
		Host:     *host,
		DocID:    *docID,
		Items:    *items,
		Togglers: *togglers,
		Lurkers:  *lurkers,
		Duration: *duration,
		Interval: *interval,
	}, err
}

// RunFromCLI parses args, runs the test and prints the final metrics.
func RunFromCLI(ctx context.Context, logger *zap.SugaredLogger, args []string, out io.Writer) error {
	cfg, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	metrics, err := Run(ctx, cfg, logger)
	if err != nil {
		return err
	}
	printMetrics(out, cfg, metrics)
	if metrics.ErrorCount > 0 {
		return fmt.Errorf("load test finished with %d errors", metrics.ErrorCount)
	}
	return nil
}

func printMetrics(out io.Writer, cfg Config, m Metrics) {
	fmt.Fprintf(out, "Load Test Metrics -- Target Document %s\n\n", cfg.DocID)
	fmt.Fprintf(out, "Clients Connected: %d\n", m.ClientsConnected)
	fmt.Fprintf(out, "Toggles sent: %d\n", m.TogglesSent)
	fmt.Fprintf(out, "Toggles applied: %d\n", m.TogglesApplied)
	fmt.Fprintf(out, "Toggles rejected: %d\n", m.TogglesRejected)
	fmt.Fprintf(out, "Views sent from server: %d\n", m.ViewsFromServer)
	fmt.Fprintf(out, "Errors: %d\n", m.ErrorCount)
	if secs := m.Elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(out, "Views per second: %.0f\n", float64(m.ViewsFromServer)/secs)
	}
}

// seedDocument replaces the document with a todo list of n items.
func seedDocument(ctx context.Context, host, docID string, n int) error {
	var md strings.Builder
	for i := 0; i < n; i++ {
		md.WriteString("- [ ] call " + gofakeit.Name() + "\n")
	}
	body, err := json.Marshal(map[string]string{"content": md.String(), "format": "markdown"})
	if err != nil {
		return err
	}

	target := strings.TrimSuffix(host, "/") + "/api/documents/" + docID
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("seeding %s failed with status %d", docID, resp.StatusCode)
	}
	return nil
}

// itemIDs extracts the checkbox ids from an editing view.
func itemIDs(view string) []string {
	var ids []string
	marker := observer.ItemIDAttribute + `="`
	for {
		i := strings.Index(view, marker)
		if i < 0 {
			return ids
		}
		view = view[i+len(marker):]
		end := strings.IndexByte(view, '"')
		if end < 0 {
			return ids
		}
		ids = append(ids, view[:end])
		view = view[end:]
	}
}

// Run seeds the document, connects the clients and toggles until the
// duration has passed or ctx is cancelled.
func Run(ctx context.Context, cfg Config, logger *zap.SugaredLogger) (Metrics, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.DocID == "" {
		cfg.DocID = strings.ToLower(gofakeit.LetterN(10))
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 400 * time.Millisecond
	}

	var stats Metrics
	stats.StartTime = time.Now()

	if err := seedDocument(ctx, cfg.Host, cfg.DocID, cfg.Items); err != nil {
		return stats, err
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	var wg sync.WaitGroup
	start := func(toggler bool, seed int64) error {
		doc, err := cli.Connect(runCtx, cfg.Host, cfg.DocID, logger)
		if err != nil {
			return err
		}
		atomic.AddInt64(&stats.ClientsConnected, 1)

		var idsMu sync.Mutex
		var ids []string
		doc.OnView(func(view ws.ViewData) {
			atomic.AddInt64(&stats.ViewsFromServer, 1)
			idsMu.Lock()
			ids = itemIDs(view.View)
			idsMu.Unlock()
		})
		doc.OnCheckboxResult(func(result observer.Result) {
			if result.Applied {
				atomic.AddInt64(&stats.TogglesApplied, 1)
			} else {
				atomic.AddInt64(&stats.TogglesRejected, 1)
			}
		})
		doc.OnError(func(message string) {
			logger.Warnw("server reported an error", "docId", cfg.DocID, "message", message)
			atomic.AddInt64(&stats.ErrorCount, 1)
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := doc.Listen(); err != nil && runCtx.Err() == nil {
				logger.Warnw("connection lost", "error", err)
				atomic.AddInt64(&stats.ErrorCount, 1)
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer doc.Close()
			if !toggler {
				<-runCtx.Done()
				return
			}

			rnd := rand.New(rand.NewSource(seed))
			ticker := time.NewTicker(cfg.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-runCtx.Done():
					return
				case <-ticker.C:
					idsMu.Lock()
					current := ids
					idsMu.Unlock()
					if len(current) == 0 {
						continue
					}
					if err := doc.Toggle(current[rnd.Intn(len(current))], rnd.Intn(2) == 0); err != nil {
						atomic.AddInt64(&stats.ErrorCount, 1)
						continue
					}
					atomic.AddInt64(&stats.TogglesSent, 1)
				}
			}
		}()
		return nil
	}

	for i := 0; i < cfg.Lurkers+cfg.Togglers; i++ {
		if err := start(i >= cfg.Lurkers, int64(i)+1); err != nil {
			cancel()
			wg.Wait()
			return stats, err
		}
	}

	<-runCtx.Done()
	wg.Wait()
	stats.Elapsed = time.Since(stats.StartTime)
	return snapshot(&stats), nil
}

func snapshot(m *Metrics) Metrics {
	return Metrics{
		ClientsConnected: atomic.LoadInt64(&m.ClientsConnected),
		TogglesSent:      atomic.LoadInt64(&m.TogglesSent),
		TogglesApplied:   atomic.LoadInt64(&m.TogglesApplied),
		TogglesRejected:  atomic.LoadInt64(&m.TogglesRejected),
		ErrorCount:       atomic.LoadInt64(&m.ErrorCount),
		ViewsFromServer:  atomic.LoadInt64(&m.ViewsFromServer),
		StartTime:        m.StartTime,
		Elapsed:          m.Elapsed,
	}
}
