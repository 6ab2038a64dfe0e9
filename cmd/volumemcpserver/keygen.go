package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgauth "github.com/akansha-code/volumemcpserver/pkg/auth"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an access key and the matching auth config block",
		Long: `keygen generates a fresh access key, hashes it, and prints a ready-to-paste
auth block for the config file. The key itself is shown once and never stored;
hand it to clients for POST /auth/token.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := pkgauth.GenerateAccessKey()
			if err != nil {
				return err
			}
			hash, err := pkgauth.HashAccessKey(key)
			if err != nil {
				return err
			}
			// The signing secret wants the same 32 bytes of entropy.
			secret, err := pkgauth.GenerateAccessKey()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "access key: %s\n\n", key)
			fmt.Fprintln(out, "auth:")
			fmt.Fprintf(out, "  access_key_hash: %q\n", hash)
			fmt.Fprintf(out, "  jwt_secret: %q\n", secret)
			return nil
		},
	}
}
