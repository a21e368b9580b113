package views

import (
	"context"
	"errors"
	"strings"

	"github.com/VishalGhuge111/hirely/pkg/access"
	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/VishalGhuge111/hirely/pkg/validate"
)

// FilterAll selects every job type or application status.
const FilterAll = "all"

// homeLatest is how many recent listings the home screen features.
const homeLatest = 4

// HomeState is what the landing screen shows.
type HomeState struct {
	Loading   bool
	Latest    []models.Job
	Primary   access.MenuItem
	Secondary access.MenuItem
	Error     string
}

// HomeView is the landing screen.
type HomeView struct {
	base
	state HomeState
}

func NewHome(d Deps) *HomeView {
	return &HomeView{base: newBase(d, nav.Home)}
}

// Mount loads the latest listings.
func (v *HomeView) Mount(ctx context.Context) error {
	ctx, err := v.enter(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.state = HomeState{Loading: true}
	v.mu.Unlock()

	jobs, err := v.API.ListJobs(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Loading = false
	if err != nil {
		v.state.Error = apiclient.Message(err, "Failed to load jobs")
		return err
	}
	if len(jobs) > homeLatest {
		jobs = jobs[:homeLatest]
	}
	v.state.Latest = jobs
	return nil
}

// State returns the screen state. The calls to action follow the session
// as it is now.
func (v *HomeView) State() HomeState {
	v.mu.Lock()
	st := v.state
	v.mu.Unlock()
	st.Primary, st.Secondary = access.HomeCTAs(v.Session.User())
	return st
}

// JobsState is what the listing screen shows.
type JobsState struct {
	Loading bool
	Filter  string
	Jobs    []models.Job // after the filter
	Total   int          // before the filter
	Error   string
}

// JobsView lists every job with a type filter.
type JobsView struct {
	base
	jobs   []models.Job
	filter string
	state  JobsState
}

func NewJobs(d Deps) *JobsView {
	return &JobsView{base: newBase(d, nav.Jobs), filter: FilterAll}
}

func (v *JobsView) Mount(ctx context.Context) error {
	ctx, err := v.enter(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.state.Loading = true
	v.state.Error = ""
	v.mu.Unlock()

	jobs, err := v.API.ListJobs(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Loading = false
	if err != nil {
		v.state.Error = apiclient.Message(err, "Failed to load jobs")
		return err
	}
	v.jobs = jobs
	return nil
}

// SetFilter selects a job type, or FilterAll.
func (v *JobsView) SetFilter(filter string) error {
	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll {
		if _, err := models.ParseJobType(filter); err != nil {
			return err
		}
	}
	v.mu.Lock()
	v.filter = filter
	v.mu.Unlock()
	return nil
}

func (v *JobsView) State() JobsState {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.state
	st.Filter = v.filter
	st.Total = len(v.jobs)
	st.Jobs = filterJobs(v.jobs, v.filter)
	return st
}

func filterJobs(jobs []models.Job, filter string) []models.Job {
	if filter == FilterAll {
		return jobs
	}
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if string(j.Type) == filter {
			out = append(out, j)
		}
	}
	return out
}

// JobDetailState is what a job's page shows.
type JobDetailState struct {
	Loading     bool
	NotFound    bool
	Job         models.Job
	HasApplied  bool
	Application *models.Application
	Apply       access.ApplyState
	ShowForm    bool
	Submitting  bool
	Notice
}

// JobDetailView is one job's public page with the apply action.
type JobDetailView struct {
	base
	id    string
	state JobDetailState
}

func NewJobDetail(d Deps, id string) *JobDetailView {
	return &JobDetailView{base: newBase(d, nav.JobPath(id)), id: id}
}

// Mount loads the job and, for a signed-in visitor, whether they already
// applied. A failed lookup counts as not applied.
func (v *JobDetailView) Mount(ctx context.Context) error {
	ctx, err := v.enter(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.state = JobDetailState{Loading: true}
	v.mu.Unlock()

	job, err := v.API.GetJob(ctx, v.id)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.mu.Lock()
		v.state.Loading = false
		if errors.Is(err, apiclient.ErrNotFound) {
			v.state.NotFound = true
		} else {
			v.state.Error = "Failed to load job details"
		}
		v.mu.Unlock()
		return err
	}

	var app *models.Application
	if token := v.token(); token != "" && v.Session.User() != nil {
		app, err = v.API.ApplicationForJob(ctx, token, v.id)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			v.Log.Debug("prior application lookup failed, treating as not applied", "err", err)
			app = nil
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Loading = false
	v.state.Job = job
	v.state.Application = app
	v.state.HasApplied = app != nil
	return nil
}

func (v *JobDetailView) State() JobDetailState {
	user := v.Session.User()
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.state
	st.Apply = access.ApplyAction(st.Job, user, st.HasApplied)
	return st
}

// ClickApply opens the application form. Without a session the visitor is
// sent to login instead. It reports whether the form is open.
func (v *JobDetailView) ClickApply() bool {
	st := v.State()
	if st.Loading || st.NotFound {
		return false
	}
	if st.Apply.RequiresLogin {
		v.Nav.Navigate(nav.Login)
		return false
	}
	if !st.Apply.Enabled {
		return false
	}
	v.mu.Lock()
	v.state.ShowForm = true
	v.mu.Unlock()
	return true
}

// Submit sends the application. It is refused without a session, for a
// closed job and after a previous application.
func (v *JobDetailView) Submit(resumeLink string) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	st := v.State()
	if err := access.CanApply(st.Job, v.Session.User(), st.HasApplied); err != nil {
		if errors.Is(err, access.ErrLoginRequired) {
			v.Nav.Navigate(nav.Login)
		}
		v.setNotice(Notice{Error: err.Error()})
		return err
	}
	resumeLink = strings.TrimSpace(resumeLink)
	if err := validate.Var("resumeLink", resumeLink, "required,url"); err != nil {
		v.setNotice(Notice{Error: validationMessage(err)})
		return err
	}

	v.mu.Lock()
	v.state.Submitting = true
	v.state.Notice = Notice{}
	v.mu.Unlock()

	err = v.API.Apply(ctx, v.token(), v.id, resumeLink)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.setNotice(Notice{Error: apiclient.Message(err, "Something went wrong")})
		return err
	}

	v.mu.Lock()
	v.state.Submitting = false
	v.state.HasApplied = true
	v.state.ShowForm = false
	v.state.Notice = Notice{Success: "Application submitted successfully"}
	v.mu.Unlock()
	return nil
}

func (v *JobDetailView) setNotice(n Notice) {
	v.mu.Lock()
	v.state.Submitting = false
	v.state.Notice = n
	v.mu.Unlock()
}
