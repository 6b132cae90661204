package main

import (
	"github.com/spf13/cobra"

	"github.com/jacoelho/spb"
)

func (a *app) fmtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a document in canonical form",
		Long: `Decode a document and encode it again with the configured indentation.
Use - to read standard input. Invalid documents are reported as by validate.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runFmt,
	}
}

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return fail(err)
	}
	s, msg, err := a.registry.DecodeSchema(data, a.cfg.Version)
	if err != nil {
		return fail(err)
	}
	out, err := s.EncodeAny(msg, spb.EncodeOptions{Indent: a.cfg.IndentString()})
	if err != nil {
		return fail(err)
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fail(err)
	}
	return nil
}
