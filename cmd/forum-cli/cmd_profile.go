package main

import (
	"github.com/spf13/cobra"
)

func newCreateProfileCmd(a *app) *cobra.Command {
	var forumFlag string
	cmd := &cobra.Command{
		Use:   "create-profile",
		Short: "Create the wallet's user profile, paying the forum's profile fee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forumKey, err := parseKey("forum", forumFlag)
			if err != nil {
				return err
			}
			res, err := a.client.CreateUserProfile(cmd.Context(), forumKey, a.client.WalletAuthority(), a.exec()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&forumFlag, "forum", "f", "", "forum account pubkey")
	return cmd
}

func newEditProfileCmd(a *app) *cobra.Command {
	var mintFlag string
	cmd := &cobra.Command{
		Use:   "edit-profile",
		Short: "Set the NFT used as the wallet profile's picture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := parseKey("token-mint", mintFlag)
			if err != nil {
				return err
			}
			res, err := a.client.EditUserProfile(cmd.Context(), a.client.WalletAuthority(), mint, a.exec()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&mintFlag, "token-mint", "t", "", "NFT token mint pubkey")
	return cmd
}

func newDeleteProfileCmd(a *app) *cobra.Command {
	var forumFlag, receiverFlag string
	cmd := &cobra.Command{
		Use:   "delete-profile",
		Short: "Close the wallet's user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forumKey, err := parseKey("forum", forumFlag)
			if err != nil {
				return err
			}
			receiver, err := a.receiverOr(receiverFlag)
			if err != nil {
				return err
			}
			res, err := a.client.DeleteUserProfile(cmd.Context(), forumKey, a.client.WalletAuthority(), receiver, a.exec()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&forumFlag, "forum", "f", "", "forum account pubkey")
	cmd.Flags().StringVarP(&receiverFlag, "receiver", "r", "", "receiver of the profile's lamports (default wallet)")
	return cmd
}
