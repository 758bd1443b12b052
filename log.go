package ttlmemo

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger resolves the logger a memoizer writes its decisions to. An empty
// level with no logger keeps the memoizer silent.
func newLogger(opts Options) (*log.Logger, error) {
	if opts.Logger != nil {
		return opts.Logger, nil
	}
	if opts.LogLevel == "" {
		return log.New(io.Discard), nil
	}

	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.LogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "ttlmemo",
		Level:  level,
	}), nil
}
