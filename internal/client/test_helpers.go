package client

import (
	"sync"

	internalhttp "github.com/fivetwenty-io/tagwalk-client/internal/http"
	"github.com/fivetwenty-io/tagwalk-client/internal/normalizer"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
)

// logEntry is one call recorded by recordingLogger.
type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// recordingLogger keeps every log call for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.record("debug", msg, fields)
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.record("info", msg, fields)
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.record("warn", msg, fields)
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.record("error", msg, fields)
}

// errors returns the error-level entries.
func (l *recordingLogger) errors() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []logEntry

	for _, entry := range l.entries {
		if entry.level == "error" {
			out = append(out, entry)
		}
	}

	return out
}

// NewTestClient creates a client for baseURL with an in-memory cache and no
// authentication.
func NewTestClient(baseURL string, logger tagwalk.Logger) *Client {
	if logger == nil {
		logger = tagwalk.NoopLogger{}
	}

	httpClient := internalhttp.NewClient(baseURL, nil)
	queryCache := tagwalk.NewQueryCache(tagwalk.NewMemoryCache(0), nil, nil, logger)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		cache:      queryCache.Cache(),
		queryCache: queryCache,
		normalizer: normalizer.New(),
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client
}
