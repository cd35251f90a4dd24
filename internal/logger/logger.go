// Package logger emits one JSON object per line to stdout.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Logger struct {
	service   string
	requestID string
}

func New(service string) *Logger { return &Logger{service: service} }

// WithRequestID returns a copy that stamps every entry with the id.
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{service: l.service, requestID: id}
}

func (l *Logger) log(level, action string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		"level":      level,
		"service":    l.service,
		"action":     action,
		"hostname":   hostname(),
		"request_id": l.requestID,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = map[string]any{"msg": err.Error(), "kind": fmt.Sprintf("%T", err)}
	}
	_ = json.NewEncoder(os.Stdout).Encode(entry)
}

func (l *Logger) Info(action string, fields map[string]any)  { l.log("INFO", action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any) { l.log("DEBUG", action, fields, nil) }
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log("ERROR", action, fields, err)
}

func hostname() string { h, _ := os.Hostname(); return h }
