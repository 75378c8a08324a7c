package logger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"polluxkart-admin/internal/utils"
)

// buildLogEntry shapes one push payload the way Alloy/Loki ingest it:
// a single stream labelled with job, level and host, carrying one
// timestamped line.
func buildLogEntry(job, level, message string, attrs []slog.Attr) map[string]interface{} {
	return map[string]interface{}{
		"streams": []map[string]interface{}{
			{
				"stream": map[string]string{
					"job":   job,
					"level": level,
					"host":  utils.GetHost(),
				},
				"values": [][]string{
					{
						fmt.Sprintf("%d", time.Now().UnixNano()),
						buildLogLine(level, message, attrs),
					},
				},
			},
		},
	}
}

// buildLogLine creates the actual log line with all attributes
func buildLogLine(level, message string, attrs []slog.Attr) string {
	logData := map[string]interface{}{
		"level":   level,
		"message": message,
		"time":    time.Now().Format(time.RFC3339),
	}

	for _, attr := range attrs {
		logData[attr.Key] = attr.Value.Any()
	}

	jsonBytes, _ := json.Marshal(logData)
	return string(jsonBytes)
}
