package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/auth"
	"github.com/hms/hms/internal/domain/bloodbank"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/apiclient"
)

var errInvalidDonor = errors.New("donor record is invalid")

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe collapses a backend or validation error into the message a user
// would see in the UI.
func describe(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(apiclient.Describe(err))
}

// withApp builds the app for a single command run. One-shot commands do not
// expose metrics, so collectors stay unregistered.
func withApp(fn func(a *app) error) error {
	a, err := newApp(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func loginCmd() *cobra.Command {
	var req auth.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Long: "Sign in and store the session token. With TOKEN_STORE=memory the token\n" +
			"is dropped when the command exits; use TOKEN_STORE=redis to share it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				u, err := a.authService().Login(cmd.Context(), req)
				if err != nil {
					return describe(err)
				}
				u.Token = ""
				return printJSON(cmd.OutOrStdout(), u)
			})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", os.Getenv("HMS_PASSWORD"), "account password (default $HMS_PASSWORD)")
	return cmd
}

func signupCmd() *cobra.Command {
	var req auth.SignupRequest
	var role string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = auth.Role(role)
			return withApp(func(a *app) error {
				u, err := a.authService().Signup(cmd.Context(), req)
				if err != nil {
					return describe(err)
				}
				u.Token = ""
				return printJSON(cmd.OutOrStdout(), u)
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Password, "password", os.Getenv("HMS_PASSWORD"), "account password (default $HMS_PASSWORD)")
	cmd.Flags().StringVar(&role, "role", "", "patient or admin (default patient)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				return a.authService().Logout(cmd.Context())
			})
		},
	}
}

func chatsCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List the patient's chats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				id, err := userID(user, a.cfg.UserID, "user")
				if err != nil {
					return err
				}
				chats, err := a.patientService().ListChats(cmd.Context(), id)
				if err != nil {
					return describe(err)
				}
				return printJSON(cmd.OutOrStdout(), chats)
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "patient user id (default $USER_ID)")
	return cmd
}

func appointmentsCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Book and list appointments",
	}
	cmd.PersistentFlags().StringVar(&user, "user", "", "patient user id (default $USER_ID)")

	var req patient.AppointmentRequest
	book := &cobra.Command{
		Use:   "book",
		Short: "Request an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				id, err := userID(user, a.cfg.UserID, "user")
				if err != nil {
					return err
				}
				appt, err := a.patientService().CreateAppointment(cmd.Context(), id, req)
				if err != nil {
					return describe(err)
				}
				return printJSON(cmd.OutOrStdout(), appt)
			})
		},
	}
	book.Flags().StringVar(&req.Type, "type", "", "appointment type, e.g. consultation")
	book.Flags().StringVar(&req.Doctor, "doctor", "", "doctor name or id")
	book.Flags().StringVar(&req.Date, "date", "", "date as YYYY-MM-DD")
	book.Flags().StringVar(&req.Time, "time", "", "time as HH:MM")
	book.Flags().StringVar(&req.ReasonForVisit, "reason", "", "reason for the visit")

	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "Show the next pending or scheduled appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				id, err := userID(user, a.cfg.UserID, "user")
				if err != nil {
					return err
				}
				appts, err := a.patientService().ListAppointments(cmd.Context(), id)
				if err != nil {
					return describe(err)
				}
				return printJSON(cmd.OutOrStdout(), patient.UpcomingAppointments(appts, time.Now()))
			})
		},
	}

	cmd.AddCommand(book, upcoming)
	return cmd
}

func bloodBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bloodbank",
		Aliases: []string{"blood-bank"},
		Short:   "Blood bank inventory and donor tools",
	}

	stockLevel := &cobra.Command{
		Use:   "stock-level <units>",
		Short: "Classify a unit count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("units must be an integer: %q", args[0])
			}
			return printJSON(cmd.OutOrStdout(), bloodbank.StockLevelFor(units))
		},
	}

	var file string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check a donor record without sending it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var d bloodbank.DonorData
			if err := json.NewDecoder(in).Decode(&d); err != nil {
				return fmt.Errorf("decode donor record: %w", err)
			}
			_, problems := bloodbank.CheckDonor(d, time.Now())
			if problems == nil {
				problems = []string{}
			}
			if err := printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"valid":    len(problems) == 0,
				"problems": problems,
			}); err != nil {
				return err
			}
			if len(problems) > 0 {
				return errInvalidDonor
			}
			return nil
		},
	}
	validate.Flags().StringVarP(&file, "file", "f", "-", "donor record JSON file, - for stdin")

	inventory := &cobra.Command{
		Use:   "inventory",
		Short: "Show current stock per blood type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				rows, err := a.bloodBankService().Inventory(cmd.Context())
				if err != nil {
					return describe(err)
				}
				return printJSON(cmd.OutOrStdout(), rows)
			})
		},
	}

	cmd.AddCommand(stockLevel, validate, inventory)
	return cmd
}
