package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"novelhub/internal/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Token utilities",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a 12h access token for a user uid",
	RunE:  runTokenIssue,
}

var tokenUID int64

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)

	tokenIssueCmd.Flags().Int64Var(&tokenUID, "uid", 0, "user uid")
	_ = tokenIssueCmd.MarkFlagRequired("uid")
}

func runTokenIssue(cmd *cobra.Command, args []string) error {
	secret := GetConfig().Auth.JWTSecret
	if secret == "" {
		return errors.New("auth.jwt_secret is not configured")
	}

	token, err := jwt.NewJWT(secret).GenerateToken(tokenUID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
