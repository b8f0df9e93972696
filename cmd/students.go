package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/learnapi"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your learner profile from the platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			api, err := d.api()
			if err != nil {
				return err
			}
			p, err := api.Profile(ctx)
			if err != nil {
				return apiError(err)
			}
			printStudent(p)
			return nil
		})
	},
}

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage student records (teachers)",
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students, including platform users without a profile",
	RunE: teacherRun(func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error {
		roster, err := api.Roster(ctx)
		if err != nil {
			return apiError(err)
		}
		if len(roster) == 0 {
			fmt.Println("No students found.")
			return nil
		}
		fmt.Printf("%-20s  %-24s  %6s  %7s  %s\n", "Username", "Name", "CGPA", "Arrears", "Class")
		fmt.Println(strings.Repeat("─", 80))
		for _, s := range roster {
			fmt.Printf("%-20s  %-24s  %6.2f  %7d  %s\n",
				truncate(s.Username, 20), truncate(s.Name(), 24), s.CGPA, s.NumArrears, s.PresentClass)
		}
		fmt.Printf("\n%d students\n", len(roster))
		return nil
	}),
}

var studentsAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List platform users that can be added as students",
	RunE: teacherRun(func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error {
		users, err := api.AvailableStudents(ctx)
		if err != nil {
			return apiError(err)
		}
		for _, u := range users {
			fmt.Printf("%-20s  %s %s  %s\n", u.Username, u.FirstName, u.LastName, u.Email)
		}
		return nil
	}),
}

var studentsShowCmd = &cobra.Command{
	Use:   "show <username>",
	Short: "Show one student",
	Args:  cobra.ExactArgs(1),
	RunE: teacherRun(func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error {
		s, err := api.LookupStudent(ctx, args[0])
		if err != nil {
			return apiError(err)
		}
		printStudent(s)
		return nil
	}),
}

var studentsAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a student profile",
	Args:  cobra.ExactArgs(1),
	RunE: teacherRun(func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error {
		in, err := studentInput(cmd, args[0])
		if err != nil {
			return err
		}
		if err := api.CreateStudent(ctx, in); err != nil {
			return apiError(err)
		}
		fmt.Printf("Created %s.\n", in.Username)
		return nil
	}),
}

var studentsUpdateCmd = &cobra.Command{
	Use:   "update <username>",
	Short: "Update a student profile",
	Args:  cobra.ExactArgs(1),
	RunE: teacherRun(func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error {
		in, err := studentInput(cmd, args[0])
		if err != nil {
			return err
		}
		if err := api.UpdateStudent(ctx, args[0], in); err != nil {
			return apiError(err)
		}
		fmt.Printf("Updated %s.\n", args[0])
		return nil
	}),
}

var studentsDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a student profile",
	Args:  cobra.ExactArgs(1),
	RunE: teacherRun(func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error {
		if err := api.DeleteStudent(ctx, args[0]); err != nil {
			return apiError(err)
		}
		fmt.Printf("Deleted %s.\n", args[0])
		return nil
	}),
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Browse course subjects",
}

var subjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			api, err := d.api()
			if err != nil {
				return err
			}
			subjects, err := api.ListSubjects(ctx)
			if err != nil {
				return apiError(err)
			}
			for _, s := range subjects {
				fmt.Printf("%-12s  %-28s  %s\n", truncate(s.ID, 12), truncate(s.Name, 28), s.Description)
			}
			return nil
		})
	},
}

var subjectsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default subjects (teachers)",
	RunE: teacherRun(func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error {
		if err := api.SeedSubjects(ctx); err != nil {
			return apiError(err)
		}
		fmt.Println("Subjects seeded.")
		return nil
	}),
}

var metricsCmd = &cobra.Command{
	Use:   "metrics <username>",
	Short: "Record a student's CGPA and arrears (teachers)",
	Args:  cobra.ExactArgs(1),
	RunE: teacherRun(func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error {
		cgpa, _ := cmd.Flags().GetFloat64("cgpa")
		arrears, _ := cmd.Flags().GetInt("arrears")
		if cgpa < 0 || cgpa > 10 {
			return fmt.Errorf("cgpa %.2f out of range 0-10", cgpa)
		}
		if arrears < 0 {
			return fmt.Errorf("arrears must not be negative")
		}
		if err := api.RecordMetrics(ctx, args[0], cgpa, arrears); err != nil {
			return apiError(err)
		}
		fmt.Printf("Recorded metrics for %s.\n", args[0])
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{studentsAddCmd, studentsUpdateCmd} {
		c.Flags().Float64("cgpa", -1, "CGPA (0-10); omitted when not set")
		c.Flags().Int("arrears", 0, "Number of arrears")
		c.Flags().String("class", "", "Present class")
		c.Flags().String("department", "", "Department")
		c.Flags().Int("semester", 0, "Semester; omitted when 0")
		c.Flags().String("email", "", "Contact email")
		c.Flags().String("notes", "", "Notes")
	}
	metricsCmd.Flags().Float64("cgpa", 0, "CGPA (0-10)")
	metricsCmd.Flags().Int("arrears", 0, "Number of arrears")
	_ = metricsCmd.MarkFlagRequired("cgpa")

	studentsCmd.AddCommand(studentsListCmd, studentsAvailableCmd, studentsShowCmd,
		studentsAddCmd, studentsUpdateCmd, studentsDeleteCmd)
	subjectsCmd.AddCommand(subjectsListCmd, subjectsSeedCmd)
}

// teacherRun wraps fn with deps, a teacher-role check and an API client.
func teacherRun(fn func(ctx context.Context, cmd *cobra.Command, args []string, api *learnapi.Client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			if err := requireTeacher(ctx, d); err != nil {
				return err
			}
			api, err := d.api()
			if err != nil {
				return err
			}
			return fn(ctx, cmd, args, api)
		})
	}
}

func studentInput(cmd *cobra.Command, username string) (learnapi.StudentInput, error) {
	in := learnapi.StudentInput{Username: username}
	if cgpa, _ := cmd.Flags().GetFloat64("cgpa"); cgpa >= 0 {
		if cgpa > 10 {
			return in, fmt.Errorf("cgpa %.2f out of range 0-10", cgpa)
		}
		in.CGPA = &cgpa
	}
	in.NumArrears, _ = cmd.Flags().GetInt("arrears")
	in.PresentClass, _ = cmd.Flags().GetString("class")
	in.Department, _ = cmd.Flags().GetString("department")
	if sem, _ := cmd.Flags().GetInt("semester"); sem > 0 {
		in.Semester = &sem
	}
	in.ContactEmail, _ = cmd.Flags().GetString("email")
	in.Notes, _ = cmd.Flags().GetString("notes")
	return in, nil
}

func apiError(err error) error {
	if errors.Is(err, learnapi.ErrUnauthorized) {
		return fmt.Errorf("%w: log in again with adaptly login", err)
	}
	return err
}

func printStudent(s learnapi.Student) {
	fmt.Printf("Username:   %s\n", s.Username)
	fmt.Printf("Name:       %s\n", s.Name())
	fmt.Printf("CGPA:       %.2f\n", s.CGPA)
	fmt.Printf("Arrears:    %d\n", s.NumArrears)
	if s.PresentClass != "" {
		fmt.Printf("Class:      %s\n", s.PresentClass)
	}
	if s.Department != "" {
		fmt.Printf("Department: %s\n", s.Department)
	}
	if s.Semester != nil {
		fmt.Printf("Semester:   %d\n", *s.Semester)
	}
	if s.ContactEmail != "" {
		fmt.Printf("Email:      %s\n", s.ContactEmail)
	}
	if len(s.InterestedSubjectIDs) > 0 {
		fmt.Printf("Subjects:   %s\n", strings.Join(s.InterestedSubjectIDs, ", "))
	}
	if s.Notes != "" {
		fmt.Printf("Notes:      %s\n", s.Notes)
	}
}
