package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ApplicationStatus is the stage an application has reached.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusSelected    ApplicationStatus = "Selected"
	StatusRejected    ApplicationStatus = "Rejected"
)

// ApplicationStatuses lists every status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{StatusApplied, StatusShortlisted, StatusSelected, StatusRejected}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusSelected, StatusRejected:
		return true
	}
	return false
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// ParseApplicationStatus validates s as an ApplicationStatus.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	if !st.IsValid() {
		return "", NewValidationError(fmt.Sprintf("invalid application status %q", s))
	}
	return st, nil
}

// JobRef is the job an application points at. The API sends either the bare
// job id or the populated job document.
type JobRef struct {
	ID  string
	Job *Job // nil when only the id was sent
}

func (r *JobRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = JobRef{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = JobRef{ID: id}
		return nil
	}
	var j Job
	if err := json.Unmarshal(b, &j); err != nil {
		return fmt.Errorf("decode job reference: %w", err)
	}
	*r = JobRef{ID: j.ID, Job: &j}
	return nil
}

func (r JobRef) MarshalJSON() ([]byte, error) {
	if r.Job != nil {
		return json.Marshal(r.Job)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UserRef is the applicant an application belongs to, populated or not.
type UserRef struct {
	ID   string
	User *User
}

func (r *UserRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = UserRef{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = UserRef{ID: id}
		return nil
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return fmt.Errorf("decode user reference: %w", err)
	}
	*r = UserRef{ID: u.ID, User: &u}
	return nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// Application is one user's application to one job.
type Application struct {
	ID         string            `json:"id"`
	Job        JobRef            `json:"jobId"`
	User       UserRef           `json:"userId"`
	ResumeLink string            `json:"resumeLink"`
	Status     ApplicationStatus `json:"status"`
}

// UnmarshalJSON accepts both "id" and the API's "_id".
func (a *Application) UnmarshalJSON(b []byte) error {
	type alias Application
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = aux.MongoID
	}
	return nil
}

// JobID returns the id of the referenced job.
func (a Application) JobID() string {
	return a.Job.ID
}

// ForJob reports whether the application references the given job id.
func (a Application) ForJob(jobID string) bool {
	return jobID != "" && a.Job.ID == jobID
}

// CountByStatus tallies applications per status.
func CountByStatus(apps []Application) map[ApplicationStatus]int {
	counts := make(map[ApplicationStatus]int, len(ApplicationStatuses))
	for _, a := range apps {
		counts[a.Status]++
	}
	return counts
}

// FilterByStatus returns the applications in the given status; "all" or ""
// returns every application.
func FilterByStatus(apps []Application, status string) []Application {
	if status == "" || status == "all" {
		return apps
	}
	out := make([]Application, 0, len(apps))
	for _, a := range apps {
		if string(a.Status) == status {
			out = append(out, a)
		}
	}
	return out
}
