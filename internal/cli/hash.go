package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/auth"
)

func newHashSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-secret [secret]",
		Short: "Print a bcrypt hash for admin_secret_hash",
		Long:  "Print a bcrypt hash of the admin secret, for the admin_secret_hash setting or $UKLC_ADMIN_SECRET_HASH. Reads the secret from stdin when no argument is given. --dotenv prints a single-quoted line for a .env file, since unquoted values there have $ expanded.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var secret string
			if len(args) == 1 {
				secret = args[0]
			} else {
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				secret = strings.TrimRight(line, "\r\n")
			}

			hash, err := auth.HashSecret(secret)
			if err != nil {
				return fmt.Errorf("hash-secret: %w", err)
			}
			if dotenv, _ := cmd.Flags().GetBool("dotenv"); dotenv {
				fmt.Fprintf(cmd.OutOrStdout(), "UKLC_ADMIN_SECRET_HASH='%s'\n", hash)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().Bool("dotenv", false, "Print a .env line instead of the bare hash")
	return cmd
}
