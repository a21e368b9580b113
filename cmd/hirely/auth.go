package main

import (
	"fmt"
	"time"

	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var in apiclient.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			v := c.app.Login()
			if err := c.mount(ctx, v); err != nil {
				return err
			}
			defer v.Unmount()
			if err := v.Submit(in); err != nil {
				return failed(v.State().Error, err)
			}
			u := c.app.Session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s> (%s)\n", u.Name, u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var in apiclient.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			v := c.app.Register()
			if err := c.mount(ctx, v); err != nil {
				return err
			}
			defer v.Unmount()
			if err := v.Submit(in); err != nil {
				return failed(v.State().Error, err)
			}
			out := cmd.OutOrStdout()
			if c.app.Nav.Current().Path == nav.VerifyEmail {
				fmt.Fprintf(out, "A verification code was sent to %s.\n", in.Email)
				fmt.Fprintf(out, "Run: hirely verify --email %s --otp <code>\n", in.Email)
				return nil
			}
			fmt.Fprintf(out, "Account created. Signed in as %s.\n", in.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (at least 6 characters)")
	return cmd
}

func (c *cli) verifyCmd() *cobra.Command {
	var email, otp string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Confirm an email address with the emailed code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Nav.Navigate(nav.VerifyEmail, nav.WithState(nav.StateEmail, email))
			v := c.app.VerifyEmail()
			if err := c.mount(cmd.Context(), v); err != nil {
				return err
			}
			defer v.Unmount()
			if err := v.Submit(otp); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.State().Success, "You can now log in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "address the code was sent to")
	cmd.Flags().StringVar(&otp, "otp", "", "6 digit code")
	return cmd
}

func (c *cli) resendOTPCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resend-otp",
		Short: "Send a new verification code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Nav.Navigate(nav.VerifyEmail, nav.WithState(nav.StateEmail, email))
			v := c.app.VerifyEmail()
			if err := c.mount(cmd.Context(), v); err != nil {
				return err
			}
			defer v.Unmount()
			if err := v.Resend(); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.State().Success)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "address to send the code to")
	return cmd
}

func (c *cli) forgotPasswordCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Email a password reset code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.ForgotPassword()
			if err := c.mount(cmd.Context(), v); err != nil {
				return err
			}
			defer v.Unmount()
			if err := v.Submit(email); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset code sent. Run: hirely reset-password --email %s --otp <code> --password <new>\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func (c *cli) resetPasswordCmd() *cobra.Command {
	var email, otp, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with the emailed code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Nav.Navigate(nav.ResetPassword, nav.WithState(nav.StateEmail, email))
			v := c.app.ResetPassword()
			if err := c.mount(cmd.Context(), v); err != nil {
				return err
			}
			defer v.Unmount()
			if err := v.Submit(otp, password); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.State().Success)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&otp, "otp", "", "6 digit code")
	cmd.Flags().StringVar(&password, "password", "", "new password (at least 6 characters)")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Navbar().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			bar := c.app.Navbar().State()
			u := c.app.Session.User()
			if u == nil {
				fmt.Fprintln(out, "Not signed in.")
			} else {
				fmt.Fprintf(out, "%s <%s>\nrole: %s\n", u.Name, u.Email, u.Role)
				if claims, ok := c.app.Session.TokenClaims(); ok {
					if owner := claims.Owner(); owner != "" {
						fmt.Fprintf(out, "token issued to: %s\n", owner)
					}
					if exp, ok := claims.Expiry(); ok {
						fmt.Fprintf(out, "session expires: %s\n", exp.Local().Format(time.RFC1123))
					}
				}
			}
			for _, item := range bar.Account {
				if item.Path != "" {
					fmt.Fprintf(out, "  %-14s %s\n", item.Label, item.Path)
				}
			}
			return nil
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Edit or delete your account",
	}

	var name, mobile, linkedin string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change name, mobile or LinkedIn URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.Profile()
			if err := c.mount(cmd.Context(), v); err != nil {
				return err
			}
			defer v.Unmount()

			in := v.State().Form
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("mobile") {
				in.Mobile = mobile
			}
			if cmd.Flags().Changed("linkedin") {
				in.LinkedIn = linkedin
			}
			if err := v.Save(in); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.State().Success)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "full name")
	update.Flags().StringVar(&mobile, "mobile", "", "mobile number")
	update.Flags().StringVar(&linkedin, "linkedin", "", "LinkedIn profile URL")

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete the account without --yes")
			}
			v := c.app.Profile()
			if err := c.mount(cmd.Context(), v); err != nil {
				return err
			}
			defer v.Unmount()
			if err := v.DeleteAccount(); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted.")
			return nil
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	cmd.AddCommand(update, del)
	return cmd
}
