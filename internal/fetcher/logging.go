package fetcher

import (
	"io"

	"github.com/eraptis/eustat-cli/internal/logging"
	"github.com/eraptis/eustat-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Fetcher:", PrefixColor: ui.FgMagenta}

// SetLogger sets an optional destination for fetcher output/logs.
// When set to nil, fetcher output/logs are disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(datasetCode string, format string, args ...any) {
	logger.Logf(datasetCode, format, args...)
}
