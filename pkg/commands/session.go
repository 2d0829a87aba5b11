package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"tableflip.dev/thought/pkg/app"
	"tableflip.dev/thought/pkg/history"
	"tableflip.dev/thought/pkg/logging"
	"tableflip.dev/thought/pkg/store"
	"tableflip.dev/thought/pkg/timeutil"
)

// session is the resolved configuration of one command invocation.
type session struct {
	Options app.Options
	Config  *store.Config
	closer  io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// loadSession resolves config, the content source and the logger. When
// toFile is set the logger writes to the configured log file so the
// alternate screen stays clean.
func loadSession(cmd *cobra.Command, toFile bool) (*session, error) {
	cfg, err := store.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	loc, err := timeutil.LoadZone(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	src, err := store.Open(cfg.Source, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	var (
		logger *log.Logger
		closer io.Closer
	)
	if toFile {
		logger, closer, err = logging.File(cfg.LogFile, cfg.LogLevel)
	} else {
		logger, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	}
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.PreloadRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.PreloadRate), 1)
	}
	logger.Debug("config resolved", "source", src.String(), "timezone", loc.String(), "timeout", timeutil.FormatTimeout(cfg.Timeout))

	return &session{
		Options: app.Options{
			Source:   src,
			Location: loc,
			Limiter:  limiter,
			Logger:   logger,
		},
		Config: cfg,
		closer: closer,
	}, nil
}

// linkArg validates an optional day argument: a day number or a deep link.
func linkArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	if _, ok := history.Parse(args[0]); !ok {
		return "", fmt.Errorf("not a day number or link: %q", args[0])
	}
	return args[0], nil
}
