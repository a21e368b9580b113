package models

import (
	"encoding/json"
	"fmt"
)

// JobType is the employment type of a listing.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypeInternship JobType = "Internship"
)

// JobTypes lists the job types the API accepts, in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypeInternship}

func (t JobType) IsValid() bool {
	return t == JobTypeFullTime || t == JobTypeInternship
}

func (t JobType) String() string {
	return string(t)
}

// ParseJobType validates s as a JobType.
func ParseJobType(s string) (JobType, error) {
	t := JobType(s)
	if !t.IsValid() {
		return "", NewValidationError(fmt.Sprintf("invalid job type %q", s))
	}
	return t, nil
}

// Job is a listing owned by the API. Description and Requirements hold HTML.
type Job struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	Location     string  `json:"location"`
	Type         JobType `json:"type"`
	Description  string  `json:"description"`
	Requirements string  `json:"requirements"`
	IsActive     bool    `json:"isActive"`
}

// UnmarshalJSON accepts both "id" and the API's "_id".
func (j *Job) UnmarshalJSON(b []byte) error {
	type alias Job
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(j)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if j.ID == "" {
		j.ID = aux.MongoID
	}
	return nil
}

// JobInput is the body for creating or fully updating a job.
type JobInput struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Company      string  `json:"company" validate:"required,max=200"`
	Location     string  `json:"location" validate:"required,max=200"`
	Type         JobType `json:"type" validate:"required,oneof=Full-time Internship"`
	Description  string  `json:"description" validate:"richtext"`
	Requirements string  `json:"requirements" validate:"richtext"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// InputFrom returns the editable fields of j as a JobInput.
func InputFrom(j Job) JobInput {
	active := j.IsActive
	return JobInput{
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Type:         j.Type,
		Description:  j.Description,
		Requirements: j.Requirements,
		IsActive:     &active,
	}
}
