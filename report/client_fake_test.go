package report

import (
	"context"
	"fmt"

	"kimaireport/kimai"
)

// fakeClient implements kimai.Client with per-operation hooks and call
// counters. An operation without a hook fails the call, which keeps tests
// honest about which lookups a code path is allowed to perform.
type fakeClient struct {
	calls map[string]int

	listProjectsFn   func() ([]kimai.Project, error)
	listCustomersFn  func() ([]kimai.Customer, error)
	getProjectFn     func(id int64) (kimai.Project, error)
	getCustomerFn    func(id int64) (kimai.Customer, error)
	getUserFn        func(id int64) (kimai.User, error)
	getActivityFn    func(id int64) (kimai.Activity, error)
	listTimesheetsFn func(query kimai.TimesheetQuery) ([]kimai.Timesheet, error)
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: make(map[string]int)}
}

func (f *fakeClient) ListProjects(ctx context.Context) ([]kimai.Project, error) {
	f.calls["ListProjects"]++
	if f.listProjectsFn == nil {
		return nil, fmt.Errorf("unexpected call: ListProjects")
	}
	return f.listProjectsFn()
}

func (f *fakeClient) ListCustomers(ctx context.Context) ([]kimai.Customer, error) {
	f.calls["ListCustomers"]++
	if f.listCustomersFn == nil {
		return nil, fmt.Errorf("unexpected call: ListCustomers")
	}
	return f.listCustomersFn()
}

func (f *fakeClient) GetProject(ctx context.Context, id int64) (kimai.Project, error) {
	f.calls["GetProject"]++
	if f.getProjectFn == nil {
		return kimai.Project{}, fmt.Errorf("unexpected call: GetProject(%d)", id)
	}
	return f.getProjectFn(id)
}

func (f *fakeClient) GetCustomer(ctx context.Context, id int64) (kimai.Customer, error) {
	f.calls["GetCustomer"]++
	if f.getCustomerFn == nil {
		return kimai.Customer{}, fmt.Errorf("unexpected call: GetCustomer(%d)", id)
	}
	return f.getCustomerFn(id)
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (kimai.User, error) {
	f.calls["GetUser"]++
	if f.getUserFn == nil {
		return kimai.User{}, fmt.Errorf("unexpected call: GetUser(%d)", id)
	}
	return f.getUserFn(id)
}

func (f *fakeClient) GetActivity(ctx context.Context, id int64) (kimai.Activity, error) {
	f.calls["GetActivity"]++
	if f.getActivityFn == nil {
		return kimai.Activity{}, fmt.Errorf("unexpected call: GetActivity(%d)", id)
	}
	return f.getActivityFn(id)
}

func (f *fakeClient) ListTimesheets(ctx context.Context, query kimai.TimesheetQuery) ([]kimai.Timesheet, error) {
	f.calls["ListTimesheets"]++
	if f.listTimesheetsFn == nil {
		return nil, fmt.Errorf("unexpected call: ListTimesheets")
	}
	return f.listTimesheetsFn(query)
}

// enrichmentHooks wires the descriptor lookups most pipeline tests need.
func (f *fakeClient) enrichmentHooks() {
	f.getProjectFn = func(id int64) (kimai.Project, error) {
		return kimai.Project{ID: id, Name: fmt.Sprintf("Project %d", id), CustomerID: id * 10}, nil
	}
	f.getCustomerFn = func(id int64) (kimai.Customer, error) {
		return kimai.Customer{ID: id, Name: fmt.Sprintf("Customer %d", id)}, nil
	}
	f.getUserFn = func(id int64) (kimai.User, error) {
		return kimai.User{ID: id, Username: fmt.Sprintf("user%d", id), Alias: fmt.Sprintf("User %d", id)}, nil
	}
	f.getActivityFn = func(id int64) (kimai.Activity, error) {
		return kimai.Activity{ID: id, Name: fmt.Sprintf("Activity %d", id), Comment: "notes"}, nil
	}
}

func makeTimesheets(count int, firstID int64) []kimai.Timesheet {
	out := make([]kimai.Timesheet, 0, count)
	for i := 0; i < count; i++ {
		duration := int64(3600)
		out = append(out, kimai.Timesheet{
			ID:         firstID + int64(i),
			ProjectID:  7,
			UserID:     12,
			ActivityID: 5,
			Begin:      "2025-02-03T09:00:00+0100",
			Duration:   &duration,
		})
	}
	return out
}
