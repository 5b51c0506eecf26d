package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "saber-drill.log"
	maxLogSize  = 10 * 1024 * 1024 // 10 MiB
)

// Setup configures the standard logger
// debug=false discards all output and returns nil
// debug=true appends to logs/saber-drill.log, rotating it once past maxLogSize
// Caller closes the returned file
func Setup(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := open(logDir)
	if err != nil {
		// Terminal UI may own stdout; fall back to discarding
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("=== saber-drill log opened %s ===", time.Now().Format(time.RFC3339))
	return f
}

func open(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(path, rotatedName(path, time.Now())); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

// rotatedName keeps the .log extension: saber-drill.20060102-150405.log
func rotatedName(path string, now time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s.%s%s", base, now.Format("20060102-150405"), ext)
}
