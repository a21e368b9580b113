package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/VishalGhuge111/hirely/pkg/access"
	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/richtext"
	"github.com/VishalGhuge111/hirely/pkg/views"
	"github.com/spf13/cobra"
)

func openLabel(active bool) string {
	if active {
		return "open"
	}
	return "closed"
}

func printJobs(w io.Writer, jobs []models.Job) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tTYPE\tSTATUS")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Company, j.Location, j.Type, openLabel(j.IsActive))
	}
	return tw.Flush()
}

func printApplications(w io.Writer, apps []models.Application) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tJOB\tAPPLICANT\tSTATUS\tRESUME")
	for _, a := range apps {
		job := a.JobID()
		if a.Job.Job != nil && a.Job.Job.Title != "" {
			job = a.Job.Job.Title
		}
		applicant := a.User.ID
		if a.User.User != nil && a.User.User.Name != "" {
			applicant = a.User.User.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, job, applicant, a.Status, a.ResumeLink)
	}
	return tw.Flush()
}

func printStats(w io.Writer, stats []views.Stat) {
	for _, s := range stats {
		fmt.Fprintf(w, "%s: %d  ", s.Label, s.Value)
	}
	fmt.Fprintln(w)
}

func printJob(w io.Writer, j models.Job) {
	fmt.Fprintf(w, "%s\n%s · %s · %s · %s\n", j.Title, j.Company, j.Location, j.Type, openLabel(j.IsActive))
	if d := richtext.ToText(j.Description); d != "" {
		fmt.Fprintf(w, "\nDescription\n%s\n", d)
	}
	if r := richtext.ToText(j.Requirements); r != "" {
		fmt.Fprintf(w, "\nRequirements\n%s\n", r)
	}
}

func (c *cli) jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse job listings",
	}

	var jobType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.Jobs()
			if err := v.SetFilter(jobType); err != nil {
				return err
			}
			if err := c.mount(cmd.Context(), v); err != nil {
				return failed(v.State().Error, err)
			}
			defer v.Unmount()
			st := v.State()
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d jobs\n", len(st.Jobs), st.Total)
			return printJobs(cmd.OutOrStdout(), st.Jobs)
		},
	}
	list.Flags().StringVar(&jobType, "type", views.FilterAll, "all, Full-time or Internship")

	show := &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := c.app.JobDetail(args[0])
			if err := c.mount(cmd.Context(), v); err != nil {
				st := v.State()
				if st.NotFound {
					return fmt.Errorf("job %s not found", args[0])
				}
				return failed(st.Error, err)
			}
			defer v.Unmount()
			st := v.State()
			out := cmd.OutOrStdout()
			printJob(out, st.Job)
			fmt.Fprintf(out, "\n[%s]\n", st.Apply.Label)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func (c *cli) applyCmd() *cobra.Command {
	var resume string
	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply to a job with a link to your resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := c.app.JobDetail(args[0])
			if err := c.mount(cmd.Context(), v); err != nil {
				return failed(v.State().Error, err)
			}
			defer v.Unmount()

			st := v.State()
			if st.Apply.RequiresLogin {
				return access.ErrLoginRequired
			}
			if !v.ClickApply() {
				return fmt.Errorf("cannot apply: %s", st.Apply.Label)
			}
			if err := v.Submit(resume); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.State().Success)
			return nil
		},
	}
	cmd.Flags().StringVar(&resume, "resume", "", "public URL of your resume")
	return cmd
}

func (c *cli) applicationsCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "List your applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.Dashboard()
			if err := v.SetFilter(status); err != nil {
				return err
			}
			if err := c.mount(cmd.Context(), v); err != nil {
				return failed(v.State().Error, err)
			}
			defer v.Unmount()
			st := v.State()
			printStats(cmd.OutOrStdout(), st.Stats)
			return printApplications(cmd.OutOrStdout(), st.Applications)
		},
	}
	cmd.Flags().StringVar(&status, "status", views.FilterAll, "all, Applied, Shortlisted, Selected or Rejected")
	return cmd
}

func (c *cli) contactCmd() *cobra.Command {
	var in apiclient.ContactMessage
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the hirely team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.Contact()
			if err := c.mount(cmd.Context(), v); err != nil {
				return err
			}
			defer v.Unmount()
			if err := v.Submit(in); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.State().Success)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "your name")
	cmd.Flags().StringVar(&in.Email, "email", "", "reply address")
	cmd.Flags().StringVar(&in.Subject, "subject", "", "subject")
	cmd.Flags().StringVar(&in.Message, "message", "", "message")
	return cmd
}
