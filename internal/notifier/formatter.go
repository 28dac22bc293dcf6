package notifier

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"SignalSentry/internal/model"
)

// FormatSignal renders a signal panel for the console.
func FormatSignal(pos *model.Position, decimals int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("=============== %s %s (MEXC Futures) ===============\n",
		pos.Symbol, pos.Direction))
	b.WriteString(fmt.Sprintf("Entry:       %.*f\n", decimals, pos.Entry))
	b.WriteString(fmt.Sprintf("Stop Loss:   %.*f\n", decimals, pos.StopLoss))
	b.WriteString(fmt.Sprintf("TP1:         %.*f\n", decimals, pos.TP1))
	b.WriteString(fmt.Sprintf("TP2:         %.*f\n", decimals, pos.TP2))
	b.WriteString(fmt.Sprintf("Risk/Reward: %.2f\n", pos.RiskReward))
	b.WriteString(fmt.Sprintf("Signal Time: %s\n", pos.SignalTime))
	return b.String()
}

// FormatStats renders the scan statistics table.
func FormatStats(stats model.Stats) string {
	var b strings.Builder
	b.WriteString("--- Scan statistics ---\n")
	b.WriteString(fmt.Sprintf("Cycles:        %s\n", humanize.Comma(int64(stats.Cycles))))
	b.WriteString(fmt.Sprintf("LONG signals:  %s\n", humanize.Comma(int64(stats.Longs))))
	b.WriteString(fmt.Sprintf("SHORT signals: %s\n", humanize.Comma(int64(stats.Shorts))))
	return b.String()
}

// FormatSignalHTML renders a signal for Telegram (HTML parse mode).
func FormatSignalHTML(pos *model.Position, decimals int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📣 <b>%s %s</b> (MEXC Futures)\n\n", pos.Symbol, pos.Direction))
	b.WriteString(fmt.Sprintf("Entry: %.*f\n", decimals, pos.Entry))
	b.WriteString(fmt.Sprintf("Stop Loss: %.*f\n", decimals, pos.StopLoss))
	b.WriteString(fmt.Sprintf("TP1: %.*f\n", decimals, pos.TP1))
	b.WriteString(fmt.Sprintf("TP2: %.*f\n", decimals, pos.TP2))
	b.WriteString(fmt.Sprintf("Risk/Reward: %.2f\n", pos.RiskReward))
	b.WriteString(fmt.Sprintf("Signal Time: %s\n", pos.SignalTime))
	return b.String()
}

// FormatStatsHTML renders the statistics summary for Telegram.
func FormatStatsHTML(stats model.Stats) string {
	var b strings.Builder
	b.WriteString("📊 <b>Scan statistics</b>\n\n")
	b.WriteString(fmt.Sprintf("Cycles: %s\n", humanize.Comma(int64(stats.Cycles))))
	b.WriteString(fmt.Sprintf("LONG signals: %s\n", humanize.Comma(int64(stats.Longs))))
	b.WriteString(fmt.Sprintf("SHORT signals: %s\n", humanize.Comma(int64(stats.Shorts))))
	return b.String()
}
