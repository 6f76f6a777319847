package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/storefront/utils"
	"github.com/spf13/cobra"
)

var tokenFlags struct {
	user string
	role string
	ttl  time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		switch tokenFlags.role {
		case utils.RoleCustomer, utils.RoleAdmin:
		default:
			return fmt.Errorf("unknown role %q", tokenFlags.role)
		}
		token, err := utils.GenerateToken(cfg.JWTSecret, tokenFlags.user, tokenFlags.role, tokenFlags.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.user, "user", "", "user id")
	tokenCmd.Flags().StringVar(&tokenFlags.role, "role", utils.RoleAdmin, "customer or admin")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}
