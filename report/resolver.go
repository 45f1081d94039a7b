package report

import (
	"context"

	"go.uber.org/zap"

	"kimaireport/kimai"
)

// Placeholder values used when a remote lookup fails or a record is
// missing. Enrichment is best-effort and never aborts a run.
const (
	UnknownCustomer = "Unknown Customer"
	UnknownProject  = "Unknown Project"
	UnknownActivity = "Unknown Activity"
	NotAvailable    = "N/A"
)

type UserDescriptor struct {
	DisplayName string
	Login       string
}

type ActivityDescriptor struct {
	Name        string
	Description string
}

// Resolver maps entity names to ids and ids back to display descriptors.
// Lookups are cached by id for the lifetime of the resolver, i.e. one
// report run. A resolver is owned by a single flow and is not safe for
// concurrent use.
type Resolver struct {
	client kimai.Client
	log    *zap.Logger

	projectNames     map[int64]string
	customerNames    map[int64]string
	projectCustomers map[int64]int64
	users            map[int64]UserDescriptor
	activities       map[int64]ActivityDescriptor
}

func NewResolver(client kimai.Client, log *zap.Logger) *Resolver {
	return &Resolver{
		client:           client,
		log:              log,
		projectNames:     make(map[int64]string),
		customerNames:    make(map[int64]string),
		projectCustomers: make(map[int64]int64),
		users:            make(map[int64]UserDescriptor),
		activities:       make(map[int64]ActivityDescriptor),
	}
}

// AllCustomers fetches the customer collection once and returns a
// name-keyed id lookup.
func (r *Resolver) AllCustomers(ctx context.Context) (map[string]int64, error) {
	customers, err := r.client.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(customers))
	for _, customer := range customers {
		out[customer.Name] = customer.ID
		r.customerNames[customer.ID] = customer.Name
	}
	return out, nil
}

// AllProjects fetches the project collection once and returns a name-keyed
// id lookup.
func (r *Resolver) AllProjects(ctx context.Context) (map[string]int64, error) {
	projects, err := r.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(projects))
	for _, project := range projects {
		out[project.Name] = project.ID
		r.projectNames[project.ID] = project.Name
		if project.CustomerID != 0 {
			r.projectCustomers[project.ID] = project.CustomerID
		}
	}
	return out, nil
}

// ProjectName resolves a project id to its display name.
func (r *Resolver) ProjectName(ctx context.Context, projectID int64) string {
	if name, ok := r.projectNames[projectID]; ok {
		return name
	}
	project, err := r.client.GetProject(ctx, projectID)
	if err != nil {
		r.log.Warn("project lookup failed", zap.Int64("project_id", projectID), zap.Error(err))
		return UnknownProject
	}
	r.projectNames[projectID] = project.Name
	if project.CustomerID != 0 {
		r.projectCustomers[projectID] = project.CustomerID
	}
	return project.Name
}

// CustomerNameForProject resolves the customer behind a project in two
// steps: project record for the customer id, then the customer record for
// its name. Both steps are cached so entries sharing a project cost one
// round trip.
func (r *Resolver) CustomerNameForProject(ctx context.Context, projectID int64) string {
	customerID, ok := r.projectCustomers[projectID]
	if !ok {
		project, err := r.client.GetProject(ctx, projectID)
		if err != nil {
			r.log.Warn("project lookup failed", zap.Int64("project_id", projectID), zap.Error(err))
			return UnknownCustomer
		}
		r.projectNames[projectID] = project.Name
		if project.CustomerID == 0 {
			return UnknownCustomer
		}
		customerID = project.CustomerID
		r.projectCustomers[projectID] = customerID
	}

	if name, ok := r.customerNames[customerID]; ok {
		return name
	}
	customer, err := r.client.GetCustomer(ctx, customerID)
	if err != nil {
		r.log.Warn("customer lookup failed", zap.Int64("customer_id", customerID), zap.Error(err))
		return UnknownCustomer
	}
	r.customerNames[customerID] = customer.Name
	return customer.Name
}

// User resolves a user id to its display descriptor.
func (r *Resolver) User(ctx context.Context, userID int64) UserDescriptor {
	if descriptor, ok := r.users[userID]; ok {
		return descriptor
	}
	user, err := r.client.GetUser(ctx, userID)
	if err != nil {
		r.log.Warn("user lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return UserDescriptor{DisplayName: NotAvailable, Login: NotAvailable}
	}
	descriptor := UserDescriptor{DisplayName: user.Alias, Login: user.Username}
	if descriptor.DisplayName == "" {
		descriptor.DisplayName = user.Username
	}
	r.users[userID] = descriptor
	return descriptor
}

// Activity resolves an activity id to its display descriptor.
func (r *Resolver) Activity(ctx context.Context, activityID int64) ActivityDescriptor {
	if descriptor, ok := r.activities[activityID]; ok {
		return descriptor
	}
	activity, err := r.client.GetActivity(ctx, activityID)
	if err != nil {
		r.log.Warn("activity lookup failed", zap.Int64("activity_id", activityID), zap.Error(err))
		return ActivityDescriptor{Name: UnknownActivity}
	}
	descriptor := ActivityDescriptor{Name: activity.Name, Description: activity.Comment}
	r.activities[activityID] = descriptor
	return descriptor
}
