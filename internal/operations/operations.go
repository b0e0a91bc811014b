package operations

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/deskboard/internal/money"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

const (
	ProjectsPath  = "projects"
	CampaignsPath = "campaigns"
)

const (
	ProjectPlanning  = "planning"
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"
)

const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

var (
	ProjectStatuses  = []string{resource.StatusAll, ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled}
	CampaignStatuses = []string{resource.StatusAll, CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted}
	Channels         = []string{"email", "social", "search", "display", "events"}
)

type Project struct {
	resource.Key
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	Manager     string        `json:"manager"`
	Budget      money.Amount  `json:"budget"`
	Progress    int           `json:"progress"`
	StartDate   resource.Date `json:"startDate"`
	EndDate     resource.Date `json:"endDate"`
}

func ProjectFields(p Project) []string {
	return []string{p.Name, p.Description, p.Status, p.Priority, p.Manager}
}

type Campaign struct {
	resource.Key
	Name      string        `json:"name"`
	Channel   string        `json:"channel"`
	Status    string        `json:"status"`
	Budget    money.Amount  `json:"budget"`
	Spent     money.Amount  `json:"spent"`
	StartDate resource.Date `json:"startDate"`
	EndDate   resource.Date `json:"endDate"`
}

func CampaignFields(c Campaign) []string {
	return []string{c.Name, c.Channel, c.Status, c.Budget.String()}
}

// NewProjects returns the server-paginated projects. The projects endpoint takes
// partial updates.
func NewProjects(api *resource.API, opts ...resource.Option) *resource.Collection[Project] {
	base := []resource.Option{
		resource.WithName(ProjectsPath),
		resource.WithStrategy(resource.ServerPaged),
		resource.WithRequired("name", "status"),
	}

	return resource.NewCollection[Project](
		resource.NewClient[Project](api, ProjectsPath, resource.WithUpdateMethod(http.MethodPatch)),
		ProjectFields,
		append(base, opts...)...,
	)
}

func NewCampaigns(api *resource.API, opts ...resource.Option) *resource.Collection[Campaign] {
	base := []resource.Option{
		resource.WithName(CampaignsPath),
		resource.WithStrategy(resource.FetchAll),
		resource.WithRequired("name", "channel", "budget"),
	}

	return resource.NewCollection[Campaign](
		resource.NewClient[Campaign](api, CampaignsPath),
		CampaignFields,
		append(base, opts...)...,
	)
}

type ProjectStats struct {
	ByStatus        map[string]int
	TotalBudget     money.Amount
	AverageProgress int
}

func SummarizeProjects(projects []Project) ProjectStats {
	s := ProjectStats{ByStatus: make(map[string]int)}
	if len(projects) == 0 {
		return s
	}

	progress := 0

	for _, p := range projects {
		s.ByStatus[p.Status]++
		s.TotalBudget = s.TotalBudget.Add(p.Budget)
		progress += min(max(p.Progress, 0), 100)
	}

	s.AverageProgress = progress / len(projects)

	return s
}

type CampaignTotals struct {
	Budget    money.Amount
	Spent     money.Amount
	Remaining money.Amount
	// Utilization is Spent/Budget as a percentage, zero without budget.
	Utilization decimal.Decimal
}

func SummarizeCampaigns(campaigns []Campaign) CampaignTotals {
	var t CampaignTotals

	for _, c := range campaigns {
		t.Budget = t.Budget.Add(c.Budget)
		t.Spent = t.Spent.Add(c.Spent)
	}

	t.Remaining = t.Budget.Sub(t.Spent)

	if !t.Budget.IsZero() {
		t.Utilization = t.Spent.Div(t.Budget.Decimal).Mul(decimal.NewFromInt(100)).Round(1)
	}

	return t
}
