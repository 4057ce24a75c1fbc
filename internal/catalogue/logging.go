package catalogue

import (
	"io"

	"github.com/eraptis/eustat-cli/internal/logging"
	"github.com/eraptis/eustat-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Catalogue:", PrefixColor: ui.FgCyan, OmitDataset: true}

// SetLogger sets an optional destination for catalogue logs.
// When set to nil, catalogue logging is disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
