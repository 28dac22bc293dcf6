package notifier

import (
	"fmt"

	"SignalSentry/internal/model"
)

// ConsoleNotifier prints signals and statistics to stdout.
type ConsoleNotifier struct {
	Decimals int
}

// NewConsoleNotifier creates a console notifier with the given price display
// precision.
func NewConsoleNotifier(decimals int) *ConsoleNotifier {
	return &ConsoleNotifier{Decimals: decimals}
}

func (c *ConsoleNotifier) SignalOpened(pos *model.Position) {
	fmt.Print(FormatSignal(pos, c.Decimals))
}

func (c *ConsoleNotifier) Summary(stats model.Stats) {
	fmt.Print(FormatStats(stats))
}
