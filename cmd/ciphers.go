// File: cmd/ciphers.go
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/numo/internal/cipher"
)

// newCiphersCmd creates the `ciphers` command, which prints cipher tables.
func newCiphersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ciphers [name...]",
		Short: "List the available ciphers and their character values",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := cipher.SelectAll
			if len(args) > 0 {
				expr = strings.Join(args, ",")
			}
			selection, err := cipher.Default().Select(expr)
			if err != nil {
				return err
			}
			return printCiphers(cmd.OutOrStdout(), selection)
		},
	}
}

// printCiphers writes one block per cipher: its name, then its table in
// value order.
func printCiphers(w io.Writer, selection []cipher.Named) error {
	for i, n := range selection {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		entries := n.Cipher.Entries()
		pairs := make([]string, len(entries))
		for j, e := range entries {
			pairs[j] = fmt.Sprintf("%c=%d", e.Char, e.Value)
		}
		if _, err := fmt.Fprintf(w, "%s (%d characters)\n  %s\n", n.Name, len(entries), strings.Join(pairs, " ")); err != nil {
			return err
		}
	}
	return nil
}
