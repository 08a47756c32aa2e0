package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"msauthexport/internal/app/verifier"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <export-file>",
		Short: "Check that every line of an export file is a valid TOTP URI",
		Long: `verify parses each line of an export file as an otpauth:// URI,
checks the 6 digit / 30 second parameters and prints the current code
for every account.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup()
			if err != nil {
				return err
			}

			rep, err := verifier.VerifyFile(args[0], time.Now())
			if err != nil {
				return err
			}
			log.Debug("export file verified", "path", args[0], "valid", rep.Valid, "invalid", rep.Invalid())

			bad := color.New(color.FgRed)
			if !colored(stdout) {
				bad.DisableColor()
			}

			for _, l := range rep.Lines {
				if l.Err != nil {
					bad.Fprintf(stdout, "  [%2d] invalid: %v\n", l.Number, l.Err)
					continue
				}
				fmt.Fprintf(stdout, "  [%2d] %-26s %-26s %-6s %s\n",
					l.Number, l.Issuer, l.Account, l.Algorithm, l.Code)
			}
			fmt.Fprintf(stdout, "\n%d valid, %d invalid\n", rep.Valid, rep.Invalid())

			if rep.Invalid() > 0 {
				return fmt.Errorf("%d invalid lines in %s", rep.Invalid(), args[0])
			}
			return nil
		},
	}
}
