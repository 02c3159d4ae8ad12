package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"chartkit/internal/chart"
	"chartkit/internal/rules"
)

var titleCaser = cases.Title(language.English)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// displayTitle renders a descriptor for table output, title-casing the
// placeholder used for unnamed charts.
func displayTitle(d *chart.Descriptor) string {
	if title := d.DisplayTitle(); title != "" {
		return title
	}
	return titleCaser.String("untitled")
}

func parseChartID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid chart id %q", arg)
	}
	return id, nil
}

// resolveModifiers maps --mod flags onto the ruleset's installed modifiers.
func resolveModifiers(rs rules.Ruleset, names []string) ([]rules.Modifier, error) {
	mods := make([]rules.Modifier, 0, len(names))
	for _, name := range names {
		mod, ok := rs.ModifierByName(name)
		if !ok {
			return nil, fmt.Errorf("ruleset %s has no modifier %q", rs.ID, name)
		}
		mods = append(mods, mod)
	}
	return mods, nil
}
