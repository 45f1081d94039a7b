package report

import (
	"context"

	"go.uber.org/zap"

	"kimaireport/kimai"
)

// FetchAllTimesheets retrieves every timesheet entry matching query,
// paging until a page shorter than the server page size signals
// exhaustion. A genuinely full final page costs one extra request that
// comes back empty; that is a normal zero-result page, not an error.
//
// Any page-level failure discards the partial accumulation and yields an
// empty sequence.
func FetchAllTimesheets(ctx context.Context, client kimai.Client, query kimai.TimesheetQuery, log *zap.Logger) []kimai.Timesheet {
	query.Size = kimai.PageSize

	var all []kimai.Timesheet
	for page := 1; ; page++ {
		query.Page = page
		entries, err := client.ListTimesheets(ctx, query)
		if err != nil {
			log.Warn("timesheet page fetch failed, discarding partial results",
				zap.String("kind", string(query.Kind)),
				zap.Int64("entity_id", query.EntityID),
				zap.Int("page", page),
				zap.Error(err),
			)
			return nil
		}
		all = append(all, entries...)
		if len(entries) < kimai.PageSize {
			return all
		}
	}
}
