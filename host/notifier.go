package host

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"droppables/logging"
)

// ConsoleNotifier prints notifications to a terminal and mirrors them to the
// log.
type ConsoleNotifier struct {
	out    io.Writer
	logger *logging.Logger
	warn   *color.Color
	info   *color.Color
}

// NewConsoleNotifier writes to out. A nil logger discards the log copy.
func NewConsoleNotifier(out io.Writer, logger *logging.Logger) *ConsoleNotifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ConsoleNotifier{
		out:    out,
		logger: logger,
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
	}
}

func (n *ConsoleNotifier) Warn(message string) {
	n.logger.Warn(message)
	fmt.Fprintln(n.out, n.warn.Sprint("warning: ")+message)
}

func (n *ConsoleNotifier) Info(message string) {
	n.logger.Info(message)
	fmt.Fprintln(n.out, n.info.Sprint(message))
}
