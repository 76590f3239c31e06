package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"student-records/internal/roster"
)

var formFields = []string{
	roster.FieldName,
	roster.FieldEmail,
	roster.FieldAge,
	roster.FieldCourse,
	roster.FieldGender,
}

func addFormFlags(flags *pflag.FlagSet) {
	flags.String(roster.FieldName, "", "student name")
	flags.String(roster.FieldEmail, "", "student email")
	flags.String(roster.FieldAge, "", "student age")
	flags.String(roster.FieldCourse, "", "enrolled course")
	flags.String(roster.FieldGender, "", "Male, Female or Other")
}

// applyFormFlags copies the flags the user set into the roster form.
func applyFormFlags(flags *pflag.FlagSet, r *roster.Roster) {
	for _, name := range formFields {
		if !flags.Changed(name) {
			continue
		}
		value, _ := flags.GetString(name)
		r.Change(name, value)
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, _, cancel, err := session(cmd, opts)
			if err != nil {
				return err
			}
			defer cancel()

			return r.Render(cmd.OutOrStdout())
		},
	}
}

func newAddCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, ctx, cancel, err := session(cmd, opts)
			if err != nil {
				return err
			}
			defer cancel()

			applyFormFlags(cmd.Flags(), r)
			if err := r.Submit(ctx); err != nil {
				return fmt.Errorf("add student: %w", err)
			}
			return r.Render(cmd.OutOrStdout())
		},
	}
	addFormFlags(cmd.Flags())
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of an existing student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ctx, cancel, err := session(cmd, opts)
			if err != nil {
				return err
			}
			defer cancel()

			s, ok := r.Find(args[0])
			if !ok {
				return fmt.Errorf("student %s not found", args[0])
			}
			r.Edit(s)
			applyFormFlags(cmd.Flags(), r)

			if err := r.Submit(ctx); err != nil {
				return fmt.Errorf("update student %s: %w", args[0], err)
			}
			return r.Render(cmd.OutOrStdout())
		},
	}
	addFormFlags(cmd.Flags())
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a student",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ctx, cancel, err := session(cmd, opts)
			if err != nil {
				return err
			}
			defer cancel()

			if err := r.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("delete student %s: %w", args[0], err)
			}
			return r.Render(cmd.OutOrStdout())
		},
	}
}
