package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile exports everything gathered by g to path in the text exposition format,
// for pickup by the node_exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
