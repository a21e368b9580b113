package main

import (
	"context"
	"fmt"

	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/views"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// jobFlags binds the editable job fields to a command's flags.
type jobFlags struct {
	title, company, location, jobType, description, requirements string
}

func (f *jobFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "job title")
	fs.StringVar(&f.company, "company", "", "company name")
	fs.StringVar(&f.location, "location", "", "location")
	fs.StringVar(&f.jobType, "type", string(models.JobTypeFullTime), "Full-time or Internship")
	fs.StringVar(&f.description, "description", "", "description (HTML allowed)")
	fs.StringVar(&f.requirements, "requirements", "", "requirements (HTML allowed)")
}

// apply overwrites the fields of in whose flags were set.
func (f *jobFlags) apply(fs *pflag.FlagSet, in models.JobInput) models.JobInput {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("title", &in.Title, f.title)
	set("company", &in.Company, f.company)
	set("location", &in.Location, f.location)
	set("description", &in.Description, f.description)
	set("requirements", &in.Requirements, f.requirements)
	if fs.Changed("type") || in.Type == "" {
		in.Type = models.JobType(f.jobType)
	}
	return in
}

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage listings and applications (admins only)",
	}
	cmd.AddCommand(
		c.adminDashboardCmd(),
		c.adminJobsCmd(),
		c.adminApplicationsCmd(),
		c.adminStatusCmd(),
	)
	return cmd
}

func (c *cli) adminDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals and every job with its application count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.AdminDashboard()
			if err := c.mount(cmd.Context(), v); err != nil {
				return failed(v.State().Error, err)
			}
			defer v.Unmount()
			st := v.State()
			out := cmd.OutOrStdout()
			printStats(out, st.Stats)
			for _, j := range st.Jobs {
				fmt.Fprintf(out, "%s  %s (%s) %d applications, %s\n",
					j.Job.ID, j.Job.Title, j.Job.Company, j.Applications, openLabel(j.Job.IsActive))
			}
			return nil
		},
	}
}

// withAdminJob mounts the management view for id and runs fn against it.
func (c *cli) withAdminJob(ctx context.Context, id string, fn func(v *views.AdminJobDetailView) error) error {
	v := c.app.AdminJobDetail(id)
	if err := c.mount(ctx, v); err != nil {
		st := v.State()
		if st.NotFound {
			return fmt.Errorf("job %s not found", id)
		}
		return failed(st.Message, err)
	}
	defer v.Unmount()
	if err := fn(v); err != nil {
		return failed(v.State().Message, err)
	}
	return nil
}

func (c *cli) adminJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Create, edit, close or delete listings",
	}

	var createFlags jobFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Post a new job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.AdminDashboard()
			if err := c.mount(cmd.Context(), v); err != nil {
				return failed(v.State().Error, err)
			}
			defer v.Unmount()
			in := createFlags.apply(cmd.Flags(), v.State().CreateForm)
			in.IsActive = nil
			if err := v.CreateJob(in); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job posted. %d listings.\n", len(v.State().Jobs))
			return nil
		},
	}
	createFlags.bind(create.Flags())

	var updateFlags jobFlags
	update := &cobra.Command{
		Use:   "update <job-id>",
		Short: "Edit a job; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAdminJob(cmd.Context(), args[0], func(v *views.AdminJobDetailView) error {
				in := updateFlags.apply(cmd.Flags(), models.InputFrom(v.State().Job))
				if err := v.Save(in); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.State().Message)
				return nil
			})
		},
	}
	updateFlags.bind(update.Flags())

	setActive := func(use, short string, active bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <job-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withAdminJob(cmd.Context(), args[0], func(v *views.AdminJobDetailView) error {
					if err := v.SetActive(active); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), v.State().Message)
					return nil
				})
			},
		}
	}

	del := &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAdminJob(cmd.Context(), args[0], func(v *views.AdminJobDetailView) error {
				if err := v.Delete(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Job %s deleted.\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(
		create,
		update,
		setActive("open", "Reopen a job for applications", true),
		setActive("close", "Stop accepting applications", false),
		del,
	)
	return cmd
}

func (c *cli) adminApplicationsCmd() *cobra.Command {
	var jobID string
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "List applications, optionally for one job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if jobID == "" {
				v := c.app.AdminDashboard()
				if err := c.mount(cmd.Context(), v); err != nil {
					return failed(v.State().Error, err)
				}
				defer v.Unmount()
				st := v.State()
				printStats(out, st.Stats)
				return printApplications(out, st.Applications)
			}
			return c.withAdminJob(cmd.Context(), jobID, func(v *views.AdminJobDetailView) error {
				st := v.State()
				fmt.Fprintf(out, "%s (%s)\n", st.Job.Title, openLabel(st.Job.IsActive))
				return printApplications(out, st.Applications)
			})
		},
	}
	cmd.Flags().StringVar(&jobID, "job", "", "only applications to this job")
	return cmd
}

func (c *cli) adminStatusCmd() *cobra.Command {
	var jobID string
	cmd := &cobra.Command{
		Use:   "status <application-id> <status>",
		Short: "Move an application to Applied, Shortlisted, Selected or Rejected",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := models.ParseApplicationStatus(args[1])
			if err != nil {
				return err
			}
			return c.withAdminJob(cmd.Context(), jobID, func(v *views.AdminJobDetailView) error {
				if err := v.UpdateStatus(args[0], status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Application %s is now %s.\n", args[0], status)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&jobID, "job", "", "job the application belongs to")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}
