package main

import (
	"github.com/spf13/cobra"

	"github.com/jacoelho/spb/errors"
)

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Decode documents and report every violation",
		Long: `Decode each document through the catalog registry. Violations are
printed one per line; the command fails if any document fails.
Use - to read standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runValidate,
	}
}

func (a *app) runValidate(cmd *cobra.Command, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	failed := 0
	for _, path := range args {
		code, err := a.validateFile(cmd, path)
		if err == nil {
			if err := writef(stdout, "%s: %s validates\n", path, code); err != nil {
				return fail(err)
			}
			continue
		}
		failed++
		a.logger.Debug().
			Str("file", path).
			Str("code", string(errors.Code(err))).
			Bool("fatal", errors.IsFatal(err)).
			Msg("document rejected")
		if list, ok := errors.AsValidations(err); ok {
			for _, v := range list {
				if err := writef(stderr, "%s: %s\n", path, v.Error()); err != nil {
					return fail(err)
				}
			}
		} else if err := writef(stderr, "%s: %v\n", path, err); err != nil {
			return fail(err)
		}
		if err := writef(stderr, "%s fails to validate\n", path); err != nil {
			return fail(err)
		}
	}
	a.logger.Info().Int("files", len(args)).Int("failed", failed).Msg("validation finished")
	if failed > 0 {
		return fail(nil)
	}
	return nil
}

func (a *app) validateFile(cmd *cobra.Command, path string) (string, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return "", err
	}
	s, _, err := a.registry.DecodeSchema(data, a.cfg.Version)
	if s == nil {
		return "", err
	}
	return s.Code(), err
}
