package kimai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PageSize is the fixed page size the Kimai timesheet collection serves.
// A page shorter than this signals the end of the data.
const PageSize = 50

// EntityKind selects the filter dimension for timesheet queries.
type EntityKind string

const (
	KindCustomer EntityKind = "customer"
	KindProject  EntityKind = "project"
)

// Client defines the Kimai API operations used by the report pipeline.
type Client interface {
	ListProjects(ctx context.Context) ([]Project, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetActivity(ctx context.Context, id int64) (Activity, error)
	ListTimesheets(ctx context.Context, query TimesheetQuery) ([]Timesheet, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	APIToken   string
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	apiToken   string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	apiToken := strings.TrimSpace(cfg.APIToken)
	if apiToken == "" {
		return nil, errors.New("API token is required")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: doer,
	}, nil
}

type Project struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CustomerID int64  `json:"customer"`
}

type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Alias    string `json:"alias"`
}

type Activity struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// Timesheet is one raw timesheet record. Begin and End carry the server's
// timestamp strings unparsed; End is empty and Duration nil while the
// record is still running.
type Timesheet struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project"`
	UserID      int64  `json:"user"`
	ActivityID  int64  `json:"activity"`
	Begin       string `json:"begin"`
	End         string `json:"end"`
	Duration    *int64 `json:"duration"`
	Description string `json:"description"`
	Billable    bool   `json:"billable"`
}

// TimesheetQuery filters one page of the timesheet collection. Kind may be
// empty to request timesheets across all entities.
type TimesheetQuery struct {
	Kind     EntityKind
	EntityID int64
	Begin    string
	End      string
	Page     int
	Size     int
}

func (c *HTTPClient) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.getJSON(ctx, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	if err := c.getJSON(ctx, "/api/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetProject(ctx context.Context, id int64) (Project, error) {
	var out Project
	if err := c.getJSON(ctx, "/api/projects/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

func (c *HTTPClient) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	var out Customer
	if err := c.getJSON(ctx, "/api/customers/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return Customer{}, err
	}
	return out, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (User, error) {
	var out User
	if err := c.getJSON(ctx, "/api/users/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *HTTPClient) GetActivity(ctx context.Context, id int64) (Activity, error) {
	var out Activity
	if err := c.getJSON(ctx, "/api/activities/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return Activity{}, err
	}
	return out, nil
}

func (c *HTTPClient) ListTimesheets(ctx context.Context, query TimesheetQuery) ([]Timesheet, error) {
	params := url.Values{}
	if query.Kind != "" {
		params.Set(string(query.Kind), strconv.FormatInt(query.EntityID, 10))
	}
	params.Set("user", "all")
	if query.Begin != "" {
		params.Set("begin", query.Begin)
	}
	if query.End != "" {
		params.Set("end", query.End)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Size > 0 {
		params.Set("size", strconv.Itoa(query.Size))
	}

	var out []Timesheet
	if err := c.getJSON(ctx, "/api/timesheets", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
