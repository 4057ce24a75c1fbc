package cache

import (
	"io"

	"github.com/eraptis/eustat-cli/internal/logging"
	"github.com/eraptis/eustat-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Cache:", PrefixColor: ui.FgYellow, OmitDataset: true}

// SetLogger sets an optional destination for cache logs.
// When set to nil, cache logging is disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
