package main

import (
	"cmp"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jacoelho/spb"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTable(cmd.OutOrStdout(), "Code", "Version", "Tag", "Namespace", "Overlay")
			for _, e := range a.registry.Entries() {
				t.Append([]string{e.Code, e.Version, e.Schema.Tag(), e.Schema.Namespace(), strconv.FormatBool(e.Schema.IsOverlay())})
			}
			t.Render()
			return nil
		},
	}
}

func (a *app) skeletonCommand() *cobra.Command {
	var version string
	cmd := &cobra.Command{
		Use:   "skeleton <code>",
		Short: "Print the field layout of a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.registry.Resolve(args[0], cmp.Or(version, a.cfg.Version))
			if err != nil {
				return fail(err)
			}
			t := newTable(cmd.OutOrStdout(), "Field", "Location", "Kind", "Required")
			for _, b := range s.Bindings().Bindings {
				appendBinding(t, b, "")
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "version", "", "catalog version (default from config)")
	return cmd
}

func appendBinding(t *tablewriter.Table, b spb.Binding, prefix string) {
	kind := b.Kind
	switch {
	case b.Group:
		kind = "group"
	case b.Companion:
		kind = "error code"
	}
	t.Append([]string{prefix + b.Field, b.String(), kind, strconv.FormatBool(b.Required)})
	for _, m := range b.Members {
		appendBinding(t, m, prefix+b.Field+"[].")
	}
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(true)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetHeaderLine(false)
	t.SetBorder(false)
	t.SetTablePadding("  ")
	return t
}
