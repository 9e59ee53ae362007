package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/clinicapp/accessgate/internal/access/http/dto"
	accessUseCase "github.com/clinicapp/accessgate/internal/access/usecase"
)

// RunSyncRoles runs one claims synchronization and prints the report. The JSON output
// matches the body of GET /api/admin/sync-roles.
func RunSyncRoles(
	ctx context.Context,
	syncUseCase accessUseCase.SyncUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format, FormatText, FormatJSON); err != nil {
		return err
	}

	logger.Info("synchronizing role claims")

	report, err := syncUseCase.Sync(ctx)
	if err != nil {
		return fmt.Errorf("failed to synchronize role claims: %w", err)
	}

	response := dto.MapSyncReportToResponse(report)
	if format == FormatJSON {
		return writeJSON(writer, response)
	}

	_, _ = fmt.Fprintln(writer, response.Message)
	_, _ = fmt.Fprintf(writer, "Valid roles: %s\n", strings.Join(response.ValidRoles, ", "))
	if len(response.Details) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "USER\tROLE")
	for _, detail := range response.Details {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", detail.User, detail.Role)
	}
	return tw.Flush()
}
