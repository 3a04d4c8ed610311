package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/strengthforge/progression/api"
)

var tokenTTL time.Duration

// tokenCmd signs a bearer token for local testing against auth.jwt_secret.
var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Print a signed bearer token for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		token, err := api.IssueToken(cfg.Auth.JWTSecret, args[0], tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
