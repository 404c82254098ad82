package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"novelhub/internal/pkg/jwt"
	"novelhub/internal/repository"
	"novelhub/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user directly in the store",
	RunE:  runUserCreate,
}

var (
	userUsername string
	userPassword string
	userNickname string
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	flags := userCreateCmd.Flags()
	flags.StringVarP(&userUsername, "username", "u", "", "login name (3-32 characters)")
	flags.StringVarP(&userPassword, "password", "P", "", "password (at least 6 characters)")
	flags.StringVarP(&userNickname, "nickname", "n", "", "display name (defaults to username)")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, store repository.Store) error {
		authSvc := service.NewAuthService(store.Users(), jwt.NewJWT(GetConfig().Auth.JWTSecret))
		user, err := authSvc.Register(ctx, userUsername, userPassword, userNickname)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user uid=%d username=%s nickname=%s\n",
			user.UID, user.Username, user.Nickname)
		return nil
	})
}
