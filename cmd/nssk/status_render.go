package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"nssk/internal/premiere"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	return paint(base, statusKindColor(kind), colorize)
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiBlue
	}
}

func paint(line, color string, colorize bool) string {
	if !colorize || color == "" {
		return line
	}
	return color + line + ansiReset
}

func renderBanner(colorize bool) string {
	title := fmt.Sprintf(" NSSK %s ", version)
	pad := max((40-len(title))/2, 3)
	rule := strings.Repeat("*", 2*pad+len(title))
	middle := strings.Repeat("*", pad) + title + strings.Repeat("*", pad)
	return paint(rule+"\n"+middle+"\n"+rule, ansiBlue, colorize)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{paint(line, ansiBlue, colorize), paint(rule, ansiBlue, colorize)}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// sortShowsForDisplay orders shows by air date, then by title using locale
// collation so accented and differently-cased titles interleave naturally.
func sortShowsForDisplay(shows []premiere.Show) []premiere.Show {
	collator := collate.New(language.English, collate.Loose)
	sorted := slices.Clone(shows)
	slices.SortStableFunc(sorted, func(a, b premiere.Show) int {
		if c := a.AirDate.Compare(b.AirDate); c != 0 {
			return c
		}
		return collator.CompareString(a.Title, b.Title)
	})
	return sorted
}

func renderShowTable(shows []premiere.Show, colorize bool, headerColor text.Color) string {
	rows := make([][]string, 0, len(shows))
	for _, show := range sortShowsForDisplay(shows) {
		id := "none"
		if show.HasTVDBID() {
			id = strconv.FormatInt(show.TVDBID, 10)
		}
		rows = append(rows, []string{show.Title, strconv.Itoa(show.SeasonNumber), show.AirDateString(), id})
	}
	spec := tableSpec{
		headers: []string{"Title", "Season", "Air Date", "TVDB ID"},
		rows:    rows,
		aligns:  []columnAlignment{alignLeft, alignRight, alignLeft, alignRight},
		footer:  []string{fmt.Sprintf("%d show(s)", len(shows))},
	}
	if colorize {
		spec.color = text.Colors{headerColor, text.Bold}
	}
	return renderTable(spec)
}
