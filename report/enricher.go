package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kimaireport/kimai"
)

// Row is the denormalized, human-readable projection of a timesheet entry.
// The column order is the wire contract with the workbook writer.
type Row struct {
	Customer            string
	Project             string
	UserName            string
	UserLogin           string
	Activity            string
	ActivityDescription string
	Start               string
	DurationHours       string
	Description         string
}

func Headers() []string {
	return []string{
		"Customer",
		"Project",
		"User",
		"Login",
		"Activity",
		"Activity Description",
		"Start Time",
		"Duration (hours)",
		"Description",
	}
}

func (r Row) Values() []string {
	return []string{
		r.Customer,
		r.Project,
		r.UserName,
		r.UserLogin,
		r.Activity,
		r.ActivityDescription,
		r.Start,
		r.DurationHours,
		r.Description,
	}
}

// Enricher expands raw timesheet entries into report rows by resolving
// their foreign references.
type Enricher struct {
	resolver *Resolver
	log      *zap.Logger
}

func NewEnricher(resolver *Resolver, log *zap.Logger) *Enricher {
	return &Enricher{resolver: resolver, log: log}
}

// Rows enriches entries in input order. An empty input yields an empty
// output without touching the resolver; the diagnostic carries label so
// operators can tell which sheet came up empty.
func (e *Enricher) Rows(ctx context.Context, entries []kimai.Timesheet, label string) []Row {
	if len(entries) == 0 {
		e.log.Info("no timesheet entries to enrich", zap.String("sheet", label))
		return nil
	}

	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		user := e.resolver.User(ctx, entry.UserID)
		activity := e.resolver.Activity(ctx, entry.ActivityID)
		rows = append(rows, Row{
			Customer:            e.resolver.CustomerNameForProject(ctx, entry.ProjectID),
			Project:             e.resolver.ProjectName(ctx, entry.ProjectID),
			UserName:            user.DisplayName,
			UserLogin:           user.Login,
			Activity:            activity.Name,
			ActivityDescription: activity.Description,
			Start:               entry.Begin,
			DurationHours:       FormatDurationHours(entry.Duration),
			Description:         entry.Description,
		})
	}
	return rows
}

// FormatDurationHours renders a duration in seconds as hours with two
// decimals, or "N/A" when the entry is still running.
func FormatDurationHours(seconds *int64) string {
	if seconds == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", float64(*seconds)/3600.0)
}
