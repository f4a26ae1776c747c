package specialist

import (
	"bytes"
	"log/slog"
)

// sidecarLogWriter forwards the classifier's output to the server logger, one entry per line.
type sidecarLogWriter struct {
	logger  *slog.Logger
	id      string
	isError bool
}

func (w *sidecarLogWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\r\n"), []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if w.isError {
			w.logger.Warn(string(line), "sidecar", w.id)
		} else {
			w.logger.Info(string(line), "sidecar", w.id)
		}
	}
	return len(p), nil
}
