// Command genhash prints the bcrypt hash of a password, with the same cost the
// API uses when storing credentials.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var costo int
	cmd := &cobra.Command{
		Use:   "genhash <clave>",
		Short: "Imprime el hash bcrypt de una clave",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := bcrypt.GenerateFromPassword([]byte(args[0]), costo)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(h))
			return nil
		},
	}
	cmd.Flags().IntVar(&costo, "costo", 12, "costo bcrypt")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
