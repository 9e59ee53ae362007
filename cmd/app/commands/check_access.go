package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/clinicapp/accessgate/internal/access/domain"
	accessUseCase "github.com/clinicapp/accessgate/internal/access/usecase"
)

type checkAccessResult struct {
	Path       string `json:"path"`
	Outcome    string `json:"outcome"`
	Allowed    bool   `json:"allowed"`
	Subject    string `json:"subject,omitempty"`
	Role       string `json:"role,omitempty"`
	Rule       string `json:"rule,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// RunCheckAccess evaluates the gate for path with token, the same decision a page request
// carrying that session cookie would get.
func RunCheckAccess(
	ctx context.Context,
	gateUseCase accessUseCase.GateUseCase,
	logger *slog.Logger,
	writer io.Writer,
	path string,
	token string,
	format string,
) error {
	if err := validateFormat(format, FormatText, FormatJSON); err != nil {
		return err
	}
	if path == "" || path[0] != '/' {
		return fmt.Errorf("path must start with /, got: %q", path)
	}

	decision := gateUseCase.Evaluate(ctx, path, token)
	result := newCheckAccessResult(path, decision)

	logger.Debug("access checked",
		slog.String("path", path),
		slog.String("outcome", result.Outcome),
	)

	if format == FormatJSON {
		return writeJSON(writer, result)
	}

	_, _ = fmt.Fprintf(writer, "Path:     %s\n", result.Path)
	_, _ = fmt.Fprintf(writer, "Outcome:  %s\n", result.Outcome)
	if result.Subject != "" {
		_, _ = fmt.Fprintf(writer, "Subject:  %s\n", result.Subject)
	}
	if result.Role != "" {
		_, _ = fmt.Fprintf(writer, "Role:     %s\n", result.Role)
	}
	if result.Rule != "" {
		_, _ = fmt.Fprintf(writer, "Rule:     %s\n", result.Rule)
	}
	if result.RedirectTo != "" {
		_, _ = fmt.Fprintf(writer, "Redirect: %s\n", result.RedirectTo)
	}
	return nil
}

func newCheckAccessResult(path string, decision domain.Decision) checkAccessResult {
	result := checkAccessResult{
		Path:       path,
		Outcome:    string(decision.Outcome),
		Allowed:    decision.Allowed(),
		RedirectTo: decision.RedirectTo,
	}
	if decision.Claims != nil {
		result.Subject = decision.Claims.Subject
		result.Role = string(decision.Claims.Role)
	}
	if decision.Rule != nil {
		result.Rule = decision.Rule.Prefix
	}
	return result
}
