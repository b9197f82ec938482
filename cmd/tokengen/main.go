package main

import (
	"fmt"
	"os"
	"time"

	"bitpesa-lending/config"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/service"

	"github.com/spf13/cobra"
)

func main() {
	if err := command().Execute(); err != nil {
		os.Exit(1)
	}
}

func command() *cobra.Command {
	var (
		configPath string
		account    string
		roles      []string
	)

	cmd := &cobra.Command{
		Use:   "tokengen",
		Short: "Issues a role token for the lending API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("jwt.secret is not configured")
			}

			acct, err := domain.ParseAccount(account)
			if err != nil {
				return err
			}
			parsed := make([]domain.Role, 0, len(roles))
			for _, r := range roles {
				role, err := domain.ParseRole(r)
				if err != nil {
					return err
				}
				parsed = append(parsed, role)
			}

			tokens := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
			token, expiresAt, err := tokens.Generate(acct, parsed)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the config file")
	cmd.Flags().StringVar(&account, "account", "", "account the token is issued to")
	cmd.Flags().StringSliceVar(&roles, "role", []string{string(domain.RoleBorrower)}, "granted roles (repeatable)")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
