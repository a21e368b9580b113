package views

import (
	"context"

	"github.com/VishalGhuge111/hirely/pkg/access"
	"github.com/VishalGhuge111/hirely/pkg/nav"
)

// Principle is one titled paragraph on the about screen.
type Principle struct {
	Title       string
	Description string
}

// AboutState is the fixed copy of the about screen.
type AboutState struct {
	Title      string
	Summary    string
	Story      []string
	Principles []Principle
	Provides   []string
	CTA        access.MenuItem
}

var aboutCopy = AboutState{
	Title:   "Job & Internship Management System",
	Summary: "Hirely is a centralized platform designed to simplify job postings and track applications through a structured, transparent workflow.",
	Story: []string{
		"Hirely was built to solve a common challenge: the disorganized management of job and internship applications.",
		"Many small organizations and platforms struggle to track candidates and update statuses efficiently. Hirely provides a streamlined environment where admins post opportunities and users track progress.",
	},
	Principles: []Principle{
		{"Simplicity", "We focus on building intuitive, easy-to-use workflows that remove technical friction for users."},
		{"Reliability", "The system is engineered to be stable, providing a predictable experience for application handling."},
		{"Transparency", "A clear status tracking system ensures users are always aware of their current application stage."},
	},
	Provides: []string{
		"Centralized Job & Internship Posting",
		"End-to-end Application Lifecycle Tracking",
		"Role-Based Access Control (Admin & User)",
		"Structured Status Workflow (Applied → Selected)",
	},
	CTA: access.MenuItem{Label: "View Jobs", Path: nav.Jobs},
}

// AboutView is the public page describing the product. It fetches nothing.
type AboutView struct {
	base
}

func NewAbout(d Deps) *AboutView {
	return &AboutView{base: newBase(d, nav.About)}
}

func (v *AboutView) Mount(ctx context.Context) error {
	_, err := v.enter(ctx)
	return err
}

func (v *AboutView) State() AboutState {
	st := aboutCopy
	st.Story = append([]string(nil), aboutCopy.Story...)
	st.Principles = append([]Principle(nil), aboutCopy.Principles...)
	st.Provides = append([]string(nil), aboutCopy.Provides...)
	return st
}
