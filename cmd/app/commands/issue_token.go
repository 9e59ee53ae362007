package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	accessUseCase "github.com/clinicapp/accessgate/internal/access/usecase"
)

// RunIssueToken mints a development session token for subject carrying its stored role claim.
// The token verifies only when the server runs with AUTH_TOKEN_VERIFICATION=hmac and the same
// secret.
func RunIssueToken(
	ctx context.Context,
	tokenIssueUseCase accessUseCase.TokenIssueUseCase,
	logger *slog.Logger,
	writer io.Writer,
	subject string,
	format string,
) error {
	if err := validateFormat(format, FormatText, FormatJSON); err != nil {
		return err
	}

	issued, err := tokenIssueUseCase.Issue(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("session token issued",
		slog.String("subject", issued.Subject),
		slog.String("role", string(issued.Role)),
	)

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"token":      issued.Token,
			"subject":    issued.Subject,
			"role":       issued.Role,
			"expires_at": issued.ExpiresAt.Format(time.RFC3339),
		})
	}

	_, _ = fmt.Fprintf(writer, "Subject:    %s\n", issued.Subject)
	_, _ = fmt.Fprintf(writer, "Role:       %s\n", issued.Role)
	_, _ = fmt.Fprintf(writer, "Expires at: %s\n", issued.ExpiresAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(writer, "Token:      %s\n", issued.Token)
	return nil
}
