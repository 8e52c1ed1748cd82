package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"equipment-tracker/internal/client"
	"equipment-tracker/internal/form"
	"equipment-tracker/internal/model"
)

type draftFlags struct {
	name, typ, status, lastCleaned string
}

func (d *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.name, "name", "", "equipment name")
	cmd.Flags().StringVar(&d.typ, "type", "", "one of Machine, Vessel, Tank, Mixer")
	cmd.Flags().StringVar(&d.status, "status", "", `one of Active, Inactive, "Under Maintenance"`)
	cmd.Flags().StringVar(&d.lastCleaned, "last-cleaned", "", "date last cleaned, YYYY-MM-DD")
}

// apply copies the flags the user actually set onto f's draft.
func (d *draftFlags) apply(cmd *cobra.Command, f *form.Form) {
	if cmd.Flags().Changed("name") {
		f.Draft.Name = d.name
	}
	if cmd.Flags().Changed("type") {
		f.Draft.Type = d.typ
	}
	if cmd.Flags().Changed("status") {
		f.Draft.Status = d.status
	}
	if cmd.Flags().Changed("last-cleaned") {
		f.Draft.LastCleaned = d.lastCleaned
	}
}

func newAddCommand(opts *options) *cobra.Command {
	flags := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new piece of equipment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.container()
			f := form.New(nil)
			flags.apply(cmd, f)

			var created model.Equipment
			err := f.Submit(commandContext(cmd), func(ctx context.Context, data client.EquipmentData) error {
				var err error
				created, err = c.Create(ctx, data)
				return err
			})
			if err != nil {
				return reportSubmitError(cmd, c.Snapshot().Err, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added equipment %d (%s)\n", created.ID, created.Name)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCommand(opts *options) *cobra.Command {
	flags := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an existing piece of equipment; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			c := opts.container()
			if err := c.Load(ctx); err != nil {
				banner(cmd.ErrOrStderr(), c)
				return err
			}
			var current *model.Equipment
			for _, item := range c.Snapshot().Items {
				if item.ID == id {
					current = &item
					break
				}
			}
			if current == nil {
				return fmt.Errorf("equipment %d not found", id)
			}

			f := form.New(current)
			flags.apply(cmd, f)

			var updated model.Equipment
			err = f.Submit(ctx, func(ctx context.Context, data client.EquipmentData) error {
				var err error
				updated, err = c.Update(ctx, id, data)
				return err
			})
			if err != nil {
				return reportSubmitError(cmd, c.Snapshot().Err, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated equipment %d (%s, %s)\n", updated.ID, updated.Name, updated.Status)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a piece of equipment permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := opts.container()
			if err := c.Delete(commandContext(cmd), id); err != nil {
				banner(cmd.ErrOrStderr(), c)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted equipment %d\n", id)
			return nil
		},
	}
}

func reportSubmitError(cmd *cobra.Command, bannerMsg string, err error) error {
	var fieldErrs form.FieldErrors
	if errors.As(err, &fieldErrs) {
		printFieldErrors(cmd.ErrOrStderr(), fieldErrs)
		return err
	}
	if bannerMsg != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", bannerMsg)
	}
	return err
}

func printFieldErrors(w io.Writer, errs form.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, errs[f])
	}
}
