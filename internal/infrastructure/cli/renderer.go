package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/passgen-go/internal/application/session"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
)

// RenderResult prints the password alone on out so it can be piped; warnings go to errOut.
func RenderResult(out, errOut io.Writer, result domain.GenerateResult) {
	fmt.Fprintln(out, result.Password)
	helpers.PrintWarnings(errOut, result.Warnings)
}

// RenderHistory lists entries numbered from 1, oldest first.
func RenderHistory(out io.Writer, list domain.HistoryList) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No passwords recorded yet.")
		return
	}
	width := len(fmt.Sprint(len(list)))
	for i, password := range list {
		fmt.Fprintf(out, "%*d  %s\n", width, i+1, password)
	}
}

// RenderStatus prints the session form: length, tier and current password.
func RenderStatus(out io.Writer, s *session.Session) {
	line := fmt.Sprintf("length %d | tier %d (%s) | %s", s.Length, s.Tier, DescribeTier(s.Tier), s.Password)
	if s.Copied() {
		line += " | copied"
	}
	fmt.Fprintln(out, line)
}

// DescribeTier names the character classes enabled at tier.
func DescribeTier(tier domain.Tier) string {
	classes := tier.Classes()
	if len(classes) == 0 {
		return "none"
	}
	names := make([]string, 0, len(classes))
	for _, class := range classes {
		names = append(names, class.Name)
	}
	return strings.Join(names, "+")
}
