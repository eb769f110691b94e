package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/listkeeper/internal/wildcard"
)

var errRejected = errors.New("one or more candidates rejected")

var validateCmd = &cobra.Command{
	Use:   "validate <candidate>...",
	Short: "Check candidate phrases with the wildcard heuristic",
	Long: `Prints "accept" or "reject" for each candidate. A candidate is accepted
when it has fewer than three words and none of them is a function word
such as "the", "of" or "it". Exits 1 if any candidate is rejected.`,
	Args: cobra.MinimumNArgs(1),
	// validate needs no config or backend.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		rejected := 0
		for _, c := range args {
			verdict := "accept"
			if !wildcard.IsSimpleNoun(c) {
				verdict = "reject"
				rejected++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", verdict, c)
		}
		if rejected > 0 {
			return errRejected
		}
		return nil
	},
}
