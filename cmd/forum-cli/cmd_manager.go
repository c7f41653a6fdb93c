package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitForumCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-forum",
		Short: "Create a forum managed by the wallet, with the configured fees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.InitForum(cmd.Context(), nil, a.client.WalletAuthority(), a.cfg.Forum, a.exec()...)
			if err != nil {
				return err
			}
			a.logger.Info("forum initialized", zap.Stringer("forum", res.Forum), zap.Bool("dryRun", res.DryRun))
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newUpdateForumParamsCmd(a *app) *cobra.Command {
	var forumFlag string
	cmd := &cobra.Command{
		Use:   "update-forum-params",
		Short: "Replace a forum's fees with the configured ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forumKey, err := parseKey("forum", forumFlag)
			if err != nil {
				return err
			}
			res, err := a.client.UpdateForumParams(cmd.Context(), forumKey, a.client.WalletAuthority(), a.cfg.Forum, a.exec()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&forumFlag, "forum", "f", "", "forum account pubkey")
	return cmd
}

func newPayoutFromTreasuryCmd(a *app) *cobra.Command {
	var forumFlag, receiverFlag string
	var minimum uint64
	cmd := &cobra.Command{
		Use:   "payout-from-treasury",
		Short: "Withdraw a forum treasury down to its rent-exempt minimum",
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
			res, err := a.client.PayoutFromTreasury(cmd.Context(), forumKey, a.client.WalletAuthority(), receiver, minimum, a.exec()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&forumFlag, "forum", "f", "", "forum account pubkey")
	cmd.Flags().StringVarP(&receiverFlag, "receiver", "r", "", "payout receiver (default wallet)")
	cmd.Flags().Uint64Var(&minimum, "rent-minimum", 0, "lamports to leave in the treasury (default fetched from the cluster)")
	return cmd
}

func newCloseForumCmd(a *app) *cobra.Command {
	var forumFlag, receiverFlag string
	cmd := &cobra.Command{
		Use:   "close-forum",
		Short: "Close a forum and send its lamports to the receiver",
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
			res, err := a.client.CloseForum(cmd.Context(), forumKey, a.client.WalletAuthority(), receiver, a.exec()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&forumFlag, "forum", "f", "", "forum account pubkey")
	cmd.Flags().StringVarP(&receiverFlag, "receiver", "r", "", "receiver of the closed accounts' lamports (default wallet)")
	return cmd
}
