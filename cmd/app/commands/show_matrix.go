package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/clinicapp/accessgate/internal/access/domain"
)

// RunShowMatrix prints the effective route matrix in evaluation order. The yaml output can be
// saved and used as ACCESS_MATRIX_FILE.
func RunShowMatrix(matrix *domain.RouteMatrix, writer io.Writer, format string) error {
	if err := validateFormat(format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		return domain.WriteRouteMatrix(writer, matrix)
	case FormatJSON:
		return writeJSON(writer, map[string]any{"routes": matrix.Rules()})
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tPREFIX\tROLES")
	for i, rule := range matrix.Rules() {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, rule.Prefix, strings.Join(domain.RoleStrings(rule.Roles), ", "))
	}
	return tw.Flush()
}
