// Package tui renders CLI output for raidflow. Simple streaming text,
// no interactive widgets, styled with lipgloss.
package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/raidflow/raidflow/internal/model"
	"github.com/raidflow/raidflow/pkg/pipeline"
)

// Colors (Swiss minimal)
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// PrintHeader prints the banner with the build version.
func PrintHeader(version string) {
	fmt.Println()
	fmt.Println(titleStyle.Render("  RAIDFLOW") + mutedStyle.Render(" "+version))
	fmt.Println(mutedStyle.Render("  Combat log encounter analyzer"))
	fmt.Println()
}

// PrintRunSummary prints the outcome of one pipeline run.
func PrintRunSummary(res *pipeline.Result, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(successStyle.Render("  ✓ ANALYSIS COMPLETE"))
	fmt.Println()
	fmt.Printf("  %s %s %s\n",
		mutedStyle.Render("Lines:"),
		titleStyle.Render(formatNumber(res.Skips.Lines)),
		mutedStyle.Render(fmt.Sprintf("(%s decoded, %s skipped)",
			formatNumber(res.Skips.Decoded), formatNumber(res.Skips.Skipped()))))
	fmt.Printf("  %s %s\n",
		mutedStyle.Render("Encounters:"),
		titleStyle.Render(fmt.Sprintf("%d", len(res.Encounters))))
	fmt.Printf("  %s %s\n",
		mutedStyle.Render("Time:"),
		titleStyle.Render(formatDuration(elapsed)))
	fmt.Println()

	for _, enc := range res.Encounters {
		PrintEncounter(enc)
	}
}

// PrintEncounter prints one encounter line.
func PrintEncounter(enc *model.Encounter) {
	outcome := accentStyle.Render("wipe")
	if enc.Outcome == model.OutcomeKill {
		outcome = successStyle.Render("kill")
	}
	fmt.Printf("  %s %s %s %s\n",
		outcome,
		titleStyle.Render(enc.BossName),
		mutedStyle.Render(formatSeconds(enc.Duration())),
		mutedStyle.Render(fmt.Sprintf("%d participants", len(enc.Participants))))
}

// PrintActors prints the classified roster, pets indented under owners.
func PrintActors(actors model.ActorTable) {
	ids := make([]string, 0, len(actors))
	for id := range actors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Println(accentStyle.Render("  ▸ PARTICIPANTS"))
	for _, id := range ids {
		a := actors[id]
		if a.IsPet() {
			fmt.Printf("    %s %s\n",
				mutedStyle.Render("  └ "+a.ID),
				mutedStyle.Render("(pet of "+a.OwnerID+")"))
			continue
		}
		fmt.Printf("    %s %s\n", titleStyle.Render(a.ID), mutedStyle.Render(string(a.Class)))
	}
	fmt.Println()
}

// PrintCheckReport prints decoder coverage for the check command.
func PrintCheckReport(report *pipeline.CheckReport) {
	fmt.Println()
	fmt.Println(accentStyle.Render("  ▸ DECODER COVERAGE"))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Lines:"), titleStyle.Render(formatNumber(report.Skips.Lines)))
	fmt.Printf("  %s %s\n",
		mutedStyle.Render("Recognized:"),
		titleStyle.Render(fmt.Sprintf("%.1f%%", report.Skips.RecognizedRatio()*100)))
	fmt.Printf("  %s %s\n",
		mutedStyle.Render("Printable:"),
		titleStyle.Render(fmt.Sprintf("%.1f%%", report.PrintableRatio()*100)))
	if report.Skips.UnknownAction > 0 {
		fmt.Printf("  %s %s\n",
			mutedStyle.Render("Unknown actions:"),
			accentStyle.Render(formatNumber(report.Skips.UnknownAction)))
	}
	if report.Skips.Malformed > 0 {
		fmt.Printf("  %s %s\n",
			mutedStyle.Render("Malformed:"),
			accentStyle.Render(formatNumber(report.Skips.Malformed)))
	}
	fmt.Println()
}

// ShowProgress creates a progress bar for a scan with a known line count,
// or a spinner-style bar when total is unknown (-1).
func ShowProgress(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}

// formatSeconds renders a combat-time duration like "4m12s".
func formatSeconds(s float64) string {
	return formatDuration(time.Duration(s * float64(time.Second)))
}

func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}
