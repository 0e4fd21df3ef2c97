package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newProblemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problems",
		Short: "Manage questions (supervisor)",
	}

	cmd.AddCommand(
		newProblemsListCmd(),
		newProblemsShowCmd(),
		newProblemsCreateCmd(),
		newProblemsSetCmd(),
		newProblemsDeleteCmd(),
	)
	return cmd
}

func newProblemsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List question numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := client.ProblemNums(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch problems: %w", err)
			}

			if len(nums) == 0 {
				fmt.Println("No questions defined.")
				return nil
			}
			for _, n := range nums {
				fmt.Printf("  Question %d\n", n)
			}
			return nil
		},
	}
}

func newProblemsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <num>",
		Short: "Show a question's prompt and grading cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			num, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question number %q", args[0])
			}

			p, err := client.Problem(cmd.Context(), num)
			if err != nil {
				return fmt.Errorf("fetch problem: %w", err)
			}

			fmt.Printf("Question %d\n", p.Num)
			fmt.Printf("--- Prompt ---\n%s\n", p.Prompt)
			if p.StarterCode != "" {
				fmt.Printf("--- Starter code ---\n%s\n", p.StarterCode)
			}
			fmt.Printf("--- Test cases ---\n%s\n", p.TestCases)
			if p.DemoCases != "" {
				fmt.Printf("--- Demo cases ---\n%s\n", p.DemoCases)
			}
			return nil
		},
	}
}

func newProblemsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Add a blank question at the next number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.CreateProblem(cmd.Context()); err != nil {
				return fmt.Errorf("create problem: %w", err)
			}
			fmt.Println("Created question")
			return nil
		},
	}
}

func newProblemsSetCmd() *cobra.Command {
	var promptFile, starterFile, testsFile, demosFile string

	cmd := &cobra.Command{
		Use:   "set <num>",
		Short: "Update a question's fields from files",
		Long:  "Replace a question's prompt, starter code, or grading cases with the contents of the given files. Fields without a flag are left unchanged.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			num, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question number %q", args[0])
			}

			p, err := client.Problem(cmd.Context(), num)
			if err != nil {
				return fmt.Errorf("fetch problem: %w", err)
			}

			set := func(dest *string, path string) error {
				if path == "" {
					return nil
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				*dest = string(data)
				return nil
			}
			if err := set(&p.Prompt, promptFile); err != nil {
				return err
			}
			if err := set(&p.StarterCode, starterFile); err != nil {
				return err
			}
			if err := set(&p.TestCases, testsFile); err != nil {
				return err
			}
			if err := set(&p.DemoCases, demosFile); err != nil {
				return err
			}

			if err := client.UpdateProblem(cmd.Context(), p); err != nil {
				return fmt.Errorf("update problem: %w", err)
			}
			fmt.Printf("Updated question %d\n", num)
			return nil
		},
	}

	cmd.Flags().StringVar(&promptFile, "prompt", "", "File with the question prompt")
	cmd.Flags().StringVar(&starterFile, "starter", "", "File with the starter code")
	cmd.Flags().StringVar(&testsFile, "tests", "", "File with the grading test cases")
	cmd.Flags().StringVar(&demosFile, "demos", "", "File with the demo cases")
	return cmd
}

func newProblemsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <num>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			num, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question number %q", args[0])
			}
			if err := client.DeleteProblem(cmd.Context(), num); err != nil {
				return fmt.Errorf("delete problem: %w", err)
			}
			fmt.Printf("Deleted question %d\n", num)
			return nil
		},
	}
}
