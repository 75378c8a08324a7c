package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

// defaultJob labels pushed streams for the log lines emitted before
// config has loaded APP_NAME.
const defaultJob = "polluxkart-admin"

// sendLog ships one entry to the collector in the background. A
// failed push is reported on stderr and dropped.
func sendLog(level, message string, attrs []slog.Attr) {
	uri := os.Getenv("REMOTE_LOG_HTTP_URI")
	if uri == "" {
		return
	}
	go pushRemote(uri, level, message, attrs)
}

func pushRemote(uri, level, message string, attrs []slog.Attr) {
	job := os.Getenv("APP_NAME")
	if job == "" {
		job = defaultJob
	}

	payload, err := json.Marshal(buildLogEntry(job, level, message, attrs))
	if err != nil {
		fmt.Fprintf(os.Stderr, "remote log: marshal failed: %v\n", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, uri, bytes.NewReader(payload))
	if err != nil {
		fmt.Fprintf(os.Stderr, "remote log: bad request: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "remote log: push failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		fmt.Fprintf(os.Stderr, "remote log: collector returned %d\n", resp.StatusCode)
	}
}
