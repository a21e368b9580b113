package views

import (
	"context"

	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
)

// DashboardState is what the user's application dashboard shows.
type DashboardState struct {
	Loading      bool
	Filter       string
	Applications []models.Application // after the filter
	Stats        []Stat
	Error        string
}

// UserDashboardView lists the signed-in user's applications.
type UserDashboardView struct {
	base
	apps    []models.Application
	filter  string
	loading bool
	err     string
}

func NewUserDashboard(d Deps) *UserDashboardView {
	return &UserDashboardView{base: newBase(d, nav.Dashboard), filter: FilterAll}
}

// Mount requires a session and loads the user's applications.
func (v *UserDashboardView) Mount(ctx context.Context) error {
	ctx, err := v.enter(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.loading, v.err = true, ""
	v.mu.Unlock()

	apps, err := v.API.MyApplications(ctx, v.token())
	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.err = apiclient.Message(err, "Failed to fetch applications")
		return err
	}
	v.apps = apps
	return nil
}

// SetFilter selects an application status, or FilterAll.
func (v *UserDashboardView) SetFilter(filter string) error {
	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll {
		if _, err := models.ParseApplicationStatus(filter); err != nil {
			return err
		}
	}
	v.mu.Lock()
	v.filter = filter
	v.mu.Unlock()
	return nil
}

func (v *UserDashboardView) State() DashboardState {
	v.mu.Lock()
	defer v.mu.Unlock()
	counts := models.CountByStatus(v.apps)
	return DashboardState{
		Loading:      v.loading,
		Filter:       v.filter,
		Applications: models.FilterByStatus(v.apps, v.filter),
		Stats: []Stat{
			{Label: "Total Apps", Value: len(v.apps)},
			{Label: "Selected", Value: counts[models.StatusSelected]},
			{Label: "Shortlisted", Value: counts[models.StatusShortlisted]},
			{Label: "Rejected", Value: counts[models.StatusRejected]},
		},
		Error: v.err,
	}
}
