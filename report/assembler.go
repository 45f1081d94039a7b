package report

import (
	"context"

	"go.uber.org/zap"

	"kimaireport/kimai"
	"kimaireport/output"
)

// Assembler drives the resolve, fetch, enrich, sheet-construction pipeline
// for one entity kind. Each assembler owns its resolver cache, so two
// assemblers can run concurrently without shared state.
type Assembler struct {
	client   kimai.Client
	resolver *Resolver
	enricher *Enricher
	log      *zap.Logger
}

func NewAssembler(client kimai.Client, log *zap.Logger) *Assembler {
	resolver := NewResolver(client, log)
	return &Assembler{
		client:   client,
		resolver: resolver,
		enricher: NewEnricher(resolver, log),
		log:      log,
	}
}

// Assemble produces one sheet per resolvable name in names, in order.
// Names missing from the remote collection are logged and skipped. A nil
// result means no sheet could be produced and no file should be written.
func (a *Assembler) Assemble(ctx context.Context, names []string, kind kimai.EntityKind, window Window) []output.Sheet {
	if len(names) == 0 {
		a.log.Info("no sheets produced", zap.String("kind", string(kind)))
		return nil
	}

	ids := a.nameIndex(ctx, kind)

	sheets := make([]output.Sheet, 0, len(names))
	for _, name := range names {
		id, ok := ids[name]
		if !ok {
			a.log.Warn("entity not found, skipping",
				zap.String("kind", string(kind)),
				zap.String("name", name),
			)
			continue
		}

		entries := FetchAllTimesheets(ctx, a.client, kimai.TimesheetQuery{
			Kind:     kind,
			EntityID: id,
			Begin:    window.Begin,
			End:      window.End,
		}, a.log)
		rows := a.enricher.Rows(ctx, entries, name)
		sheets = append(sheets, newSheet(name, rows))
	}

	if len(sheets) == 0 {
		a.log.Info("no sheets produced", zap.String("kind", string(kind)))
		return nil
	}
	return sheets
}

// AssembleByProject fetches every timesheet in the window regardless of
// entity and groups the enriched rows into one sheet per project, in first
// appearance order.
func (a *Assembler) AssembleByProject(ctx context.Context, window Window) []output.Sheet {
	entries := FetchAllTimesheets(ctx, a.client, kimai.TimesheetQuery{
		Begin: window.Begin,
		End:   window.End,
	}, a.log)
	rows := a.enricher.Rows(ctx, entries, "all projects")

	byProject := make(map[string][]Row)
	order := make([]string, 0, 8)
	for _, row := range rows {
		if _, exists := byProject[row.Project]; !exists {
			order = append(order, row.Project)
		}
		byProject[row.Project] = append(byProject[row.Project], row)
	}

	if len(order) == 0 {
		a.log.Info("no sheets produced", zap.String("kind", "project grouping"))
		return nil
	}

	sheets := make([]output.Sheet, 0, len(order))
	for _, project := range order {
		sheets = append(sheets, newSheet(project, byProject[project]))
	}
	return sheets
}

func (a *Assembler) nameIndex(ctx context.Context, kind kimai.EntityKind) map[string]int64 {
	var ids map[string]int64
	var err error
	switch kind {
	case kimai.KindCustomer:
		ids, err = a.resolver.AllCustomers(ctx)
	case kimai.KindProject:
		ids, err = a.resolver.AllProjects(ctx)
	}
	if err != nil {
		a.log.Warn("entity collection fetch failed",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
	return ids
}

func newSheet(name string, rows []Row) output.Sheet {
	values := make([][]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Values())
	}
	return output.Sheet{Name: name, Headers: Headers(), Rows: values}
}
