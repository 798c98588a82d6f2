package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/shift/internal/app"
	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/ui/output"
	"go.trai.ch/shift/internal/ui/style"
)

// renderPlan prints a human-readable summary of plan to w.
func renderPlan(w io.Writer, plan *app.Plan) {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())

	heading := style.Heading.Renderer(r)
	muted := style.Muted.Renderer(r)
	added := style.Added.Renderer(r)

	var b strings.Builder

	title := fmt.Sprintf("%s@%s", plan.Request.TargetPackage, plan.Request.TargetVersion)
	if plan.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(&b, heading.Render("Migrating "+title))

	names := plan.Result.PackageNames()
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	fmt.Fprintf(&b, "\n%s\n", heading.Render(domain.PackageJSONFileName))
	for _, name := range names {
		pkg := plan.Result.PackageJSON[name]
		line := fmt.Sprintf("  %s %-*s %s", style.Check, width, name, pkg.Version)
		if pkg.AlwaysAddToPackageJSON {
			line += " " + added.Render("(added if missing)")
		}
		fmt.Fprintln(&b, line)
	}

	fmt.Fprintf(&b, "\n%s\n", heading.Render(domain.MigrationsFileName))
	if len(plan.Result.Migrations) == 0 {
		fmt.Fprintln(&b, muted.Render("  No migrations to run"))
	}
	for _, m := range plan.Result.Migrations {
		line := fmt.Sprintf("  %s %s@%s %s", style.Arrow, m.Package, m.Version, m.Name)
		if m.Description != "" {
			line += " " + muted.Render(m.Description)
		}
		fmt.Fprintln(&b, line)
	}

	if !plan.DryRun {
		fmt.Fprintf(&b, "\n%s\n", muted.Render(nextSteps(plan)))
	}

	_, _ = io.WriteString(w, b.String())
}

func nextSteps(plan *app.Plan) string {
	steps := fmt.Sprintf("Updated %s in %s. Review the changes and install dependencies.", domain.PackageJSONFileName, plan.Root)
	if len(plan.Result.Migrations) > 0 {
		steps += fmt.Sprintf("\nRun the migrations listed in %s.", domain.MigrationsFileName)
	}
	return steps
}
