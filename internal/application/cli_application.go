package application

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dvdk01/kuma-heartbeat/internal/schema"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type cliApplication struct {
	statsChan chan *schema.PushStats
	monitors  map[string]*schema.PushStats
}

func NewCLIApplication(statsChan chan *schema.PushStats) *cliApplication {
	return &cliApplication{
		statsChan: statsChan,
		monitors:  make(map[string]*schema.PushStats),
	}
}

func (ca *cliApplication) clear() {
	fmt.Print("\033[H\033[2J")
}

func (ca *cliApplication) Render(stats map[string]*schema.PushStats) {
	ca.clear()
	dumpTable(stats)
}

func (ca *cliApplication) Start(ctx context.Context) error {

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case stats := <-ca.statsChan:
				ca.monitors[stats.URL] = stats
				ca.Render(ca.monitors)
			}
		}

	}()

	return nil
}

func colorizeStatus(successRate int, str string) string {
	switch {
	case successRate >= 90:
		return text.FgGreen.Sprint(str)
	case successRate >= 50:
		return text.FgYellow.Sprint(str)
	default:
		return text.FgRed.Sprint(str)
	}
}

func colorizeStatusCode(code int, txt string) string {
	switch {
	case code >= 200 && code < 300:
		return text.FgGreen.Sprint(txt)
	case code >= 300 && code < 400:
		return text.FgBlue.Sprint(txt)
	case code >= 400 && code < 500:
		return text.FgYellow.Sprint(txt)
	case code >= 500:
		return text.FgRed.Sprint(txt)
	default:
		return txt
	}
}

func formatPushTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("15:04:05")
}

func dumpTable(stats map[string]*schema.PushStats) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{
		"Monitor", "URL", "Pushes",
		"Min Duration", "Max Duration", "Avg Duration",
		"Last Push", "Next Push",
		"Status Codes",
	})

	// Sort monitors alphabetically by URL
	urls := make([]string, 0, len(stats))
	for url := range stats {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	for _, url := range urls {
		stat := stats[url]
		successRate := stat.SuccessPercentage()
		pushes := fmt.Sprintf("%d/%d %d%%", stat.SuccessCount, stat.TotalPushes, successRate)
		pushes = colorizeStatus(successRate, pushes)

		statusCodes := ""
		for code, count := range stat.StatusCodes {
			codeText := fmt.Sprintf("%d:%d", code, count)
			statusCodes += colorizeStatusCode(code, codeText) + " "
		}
		if statusCodes == "" {
			statusCodes = "NO STATUS CODE"
		}

		t.AppendRow(table.Row{
			stat.Name,
			url,
			pushes,
			stat.MinDuration.Round(time.Millisecond),
			stat.MaxDuration.Round(time.Millisecond),
			stat.AvgDuration().Round(time.Millisecond),
			formatPushTime(stat.LastPush),
			formatPushTime(stat.NextPush),
			statusCodes,
		})
	}

	t.Render()
}
