package views

import (
	"context"
	"errors"
	"sync"

	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/VishalGhuge111/hirely/pkg/validate"
)

// fetchJobsAndApplications loads listings and every application side by side.
// Both results are returned with the joined error of whichever failed.
func fetchJobsAndApplications(ctx context.Context, api *apiclient.Client, token string, jobs func(context.Context) error) ([]models.Application, error) {
	var (
		wg      sync.WaitGroup
		apps    []models.Application
		jobsErr error
		appsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		jobsErr = jobs(ctx)
	}()
	go func() {
		defer wg.Done()
		apps, appsErr = api.AllApplications(ctx, token)
	}()
	wg.Wait()
	return apps, errors.Join(jobsErr, appsErr)
}

// JobSummary is a listing with the number of applications it received.
type JobSummary struct {
	Job          models.Job
	Applications int
}

// AdminDashboardState is what the admin console shows.
type AdminDashboardState struct {
	Loading      bool
	Jobs         []JobSummary
	Applications []models.Application
	Stats        []Stat
	Creating     bool
	Error        string
	CreateForm   models.JobInput
}

// AdminDashboardView is the admin console: every job, every application and
// the form for posting a job.
type AdminDashboardView struct {
	base
	jobs    []models.Job
	apps    []models.Application
	loading bool
	state   AdminDashboardState
}

func NewAdminDashboard(d Deps) *AdminDashboardView {
	return &AdminDashboardView{base: newBase(d, nav.AdminDashboard)}
}

// Mount requires an admin session and loads jobs and applications
// concurrently.
func (v *AdminDashboardView) Mount(ctx context.Context) error {
	ctx, err := v.enter(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.loading = true
	v.state = AdminDashboardState{CreateForm: emptyJobForm()}
	v.mu.Unlock()

	var jobs []models.Job
	apps, err := fetchJobsAndApplications(ctx, v.API, v.token(), func(ctx context.Context) error {
		var err error
		jobs, err = v.API.ListJobs(ctx)
		return err
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if jobs != nil {
		v.jobs = jobs
	}
	if apps != nil {
		v.apps = apps
	}
	if err != nil {
		v.state.Error = apiclient.Message(err, "Failed to load dashboard")
	}
	return err
}

func emptyJobForm() models.JobInput {
	return models.JobInput{Type: models.JobTypeFullTime}
}

func (v *AdminDashboardView) State() AdminDashboardState {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := v.state
	st.Loading = v.loading
	st.Applications = v.apps
	st.Jobs = make([]JobSummary, 0, len(v.jobs))
	for _, j := range v.jobs {
		n := 0
		for _, a := range v.apps {
			if a.ForJob(j.ID) {
				n++
			}
		}
		st.Jobs = append(st.Jobs, JobSummary{Job: j, Applications: n})
	}
	counts := models.CountByStatus(v.apps)
	st.Stats = []Stat{
		{Label: "Total Jobs", Value: len(v.jobs)},
		{Label: "Total Applications", Value: len(v.apps)},
		{Label: "Selected", Value: counts[models.StatusSelected]},
		{Label: "Rejected", Value: counts[models.StatusRejected]},
	}
	return st
}

// CreateJob posts a new listing and reloads the job list.
func (v *AdminDashboardView) CreateJob(in models.JobInput) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		v.setError(validationMessage(err))
		return err
	}

	v.mu.Lock()
	v.state.Creating = true
	v.state.Error = ""
	v.mu.Unlock()

	err = v.API.CreateJob(ctx, v.token(), in)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.setError(apiclient.Message(err, "Failed to create job"))
		return err
	}

	jobs, err := v.API.ListJobs(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Creating = false
	v.state.CreateForm = emptyJobForm()
	if err != nil {
		v.state.Error = apiclient.Message(err, "Failed to load jobs")
		return err
	}
	v.jobs = jobs
	return nil
}

// OpenJob moves to the management page of job id.
func (v *AdminDashboardView) OpenJob(id string) {
	v.Nav.Navigate(nav.AdminJobPath(id))
}

func (v *AdminDashboardView) setError(msg string) {
	v.mu.Lock()
	v.state.Creating = false
	v.state.Error = msg
	v.mu.Unlock()
}

// AdminJobState is what the job management page shows.
type AdminJobState struct {
	Loading      bool
	NotFound     bool
	Job          models.Job
	Applications []models.Application // only those for this job
	Saving       bool
	Message      string
}

// AdminJobDetailView manages one listing and its applications.
type AdminJobDetailView struct {
	base
	id    string
	state AdminJobState
}

func NewAdminJobDetail(d Deps, id string) *AdminJobDetailView {
	return &AdminJobDetailView{base: newBase(d, nav.AdminJobPath(id)), id: id}
}

// Mount requires an admin session and loads the job and its applications
// concurrently.
func (v *AdminJobDetailView) Mount(ctx context.Context) error {
	ctx, err := v.enter(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.state = AdminJobState{Loading: true}
	v.mu.Unlock()

	var job models.Job
	var jobErr error
	apps, err := fetchJobsAndApplications(ctx, v.API, v.token(), func(ctx context.Context) error {
		job, jobErr = v.API.GetJob(ctx, v.id)
		return jobErr
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Loading = false
	switch {
	case errors.Is(jobErr, apiclient.ErrNotFound):
		v.state.NotFound = true
	case jobErr == nil:
		v.state.Job = job
	}
	v.state.Applications = v.forThisJob(apps)
	if err != nil && !v.state.NotFound {
		v.state.Message = apiclient.Message(err, "Failed to load job")
	}
	return err
}

func (v *AdminJobDetailView) forThisJob(apps []models.Application) []models.Application {
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if a.ForJob(v.id) {
			out = append(out, a)
		}
	}
	return out
}

func (v *AdminJobDetailView) State() AdminJobState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *AdminJobDetailView) setMessage(msg string) {
	v.mu.Lock()
	v.state.Saving = false
	v.state.Message = msg
	v.mu.Unlock()
}

func (v *AdminJobDetailView) reloadJob(ctx context.Context) {
	job, err := v.API.GetJob(ctx, v.id)
	if err != nil || ctx.Err() != nil {
		return
	}
	v.mu.Lock()
	v.state.Job = job
	v.mu.Unlock()
}

func (v *AdminJobDetailView) reloadApplications(ctx context.Context) error {
	apps, err := v.API.AllApplications(ctx, v.token())
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.state.Applications = v.forThisJob(apps)
	v.mu.Unlock()
	return nil
}

// SetActive opens or closes the listing for applications.
func (v *AdminJobDetailView) SetActive(active bool) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	err = v.API.SetJobActive(ctx, v.token(), v.id, active)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.setMessage("Action failed")
		return err
	}
	if active {
		v.setMessage("Applications Reopened")
	} else {
		v.setMessage("Applications Closed")
	}
	v.reloadJob(ctx)
	return nil
}

// Save replaces the listing's editable fields.
func (v *AdminJobDetailView) Save(in models.JobInput) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		v.setMessage(validationMessage(err))
		return err
	}
	v.mu.Lock()
	v.state.Saving = true
	v.mu.Unlock()

	err = v.API.UpdateJob(ctx, v.token(), v.id, in)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.setMessage("Save failed")
		return err
	}
	v.setMessage("Update successful")
	v.reloadJob(ctx)
	return nil
}

// Delete removes the listing and returns to the admin console.
func (v *AdminJobDetailView) Delete() error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	err = v.API.DeleteJob(ctx, v.token(), v.id)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.setMessage("Delete failed")
		return err
	}
	v.Nav.Navigate(nav.AdminDashboard)
	return nil
}

// UpdateStatus moves one of this job's applications to status and reloads
// the list.
func (v *AdminJobDetailView) UpdateStatus(appID string, status models.ApplicationStatus) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	if !status.IsValid() {
		return models.NewFieldValidationError("status", "invalid application status")
	}
	err = v.API.UpdateApplicationStatus(ctx, v.token(), appID, status)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.setMessage(apiclient.Message(err, "Status update failed"))
		return err
	}
	return v.reloadApplications(ctx)
}
