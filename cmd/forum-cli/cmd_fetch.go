package main

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/SolCharms/DeEdIT-SDK/pkg/forum"
)

func newFetchAllForumsCmd(a *app) *cobra.Command {
	var managerFlag string
	cmd := &cobra.Command{
		Use:   "fetch-all-forums",
		Short: "List the forums of a manager (default wallet)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := a.wallet.PublicKey()
			if managerFlag != "" {
				key, err := parseKey("manager", managerFlag)
				if err != nil {
					return err
				}
				manager = key
			}
			forums, err := a.client.FetchAllForums(cmd.Context(), &manager)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), forums)
		},
	}
	cmd.Flags().StringVarP(&managerFlag, "manager", "m", "", "forum manager pubkey (default wallet)")
	return cmd
}

func newFetchForumByKeyCmd(a *app) *cobra.Command {
	var keyFlag string
	cmd := &cobra.Command{
		Use:   "fetch-forum-by-key",
		Short: "Show one forum account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey("key", keyFlag)
			if err != nil {
				return err
			}
			f, err := a.client.FetchForum(cmd.Context(), key)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVarP(&keyFlag, "key", "k", "", "forum account pubkey")
	return cmd
}

func newFetchAllProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-all-profiles",
		Short: "List every user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.client.FetchAllUserProfiles(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profiles)
		},
	}
}

func newFetchProfileByKeyCmd(a *app) *cobra.Command {
	var keyFlag string
	cmd := &cobra.Command{
		Use:   "fetch-profile-by-key",
		Short: "Show one user profile account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey("key", keyFlag)
			if err != nil {
				return err
			}
			p, err := a.client.FetchUserProfile(cmd.Context(), key)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVarP(&keyFlag, "key", "k", "", "user profile account pubkey")
	return cmd
}

func newFetchProfileByOwnerCmd(a *app) *cobra.Command {
	var ownerFlag string
	cmd := &cobra.Command{
		Use:   "fetch-profile-by-owner",
		Short: "Show the user profile owned by a wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := parseKey("owner", ownerFlag)
			if err != nil {
				return err
			}
			p, err := a.client.FetchUserProfileByOwner(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVarP(&ownerFlag, "owner", "o", "", "profile owner pubkey")
	return cmd
}

func newFetchAllQuestionsCmd(a *app) *cobra.Command {
	var profileFlag string
	cmd := &cobra.Command{
		Use:   "fetch-all-questions",
		Short: "List questions, optionally only those of one user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile *solana.PublicKey
			if profileFlag != "" {
				key, err := parseKey("profile", profileFlag)
				if err != nil {
					return err
				}
				profile = &key
			}
			questions, err := a.client.FetchAllQuestions(cmd.Context(), profile)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), questions)
		},
	}
	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "user profile account pubkey")
	return cmd
}

func newFetchQuestionByKeyCmd(a *app) *cobra.Command {
	var keyFlag string
	cmd := &cobra.Command{
		Use:   "fetch-question-by-key",
		Short: "Show one question account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey("key", keyFlag)
			if err != nil {
				return err
			}
			q, err := a.client.FetchQuestion(cmd.Context(), key)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().StringVarP(&keyFlag, "key", "k", "", "question account pubkey")
	return cmd
}

func newFetchForumAuthCmd(a *app) *cobra.Command {
	var forumFlag string
	cmd := &cobra.Command{
		Use:   "fetch-forum-auth",
		Short: "Derive a forum's authority address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forumKey, err := parseKey("forum", forumFlag)
			if err != nil {
				return err
			}
			auth, err := forum.FindForumAuthorityPDA(a.client.ProgramID(), forumKey)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), auth)
		},
	}
	cmd.Flags().StringVarP(&forumFlag, "forum", "f", "", "forum account pubkey")
	return cmd
}

type treasuryBalance struct {
	ForumTreasury forum.PDA `json:"forumTreasury"`
	Lamports      uint64    `json:"lamports"`
	SOL           float64   `json:"sol"`
}

func newFetchTreasuryBalanceCmd(a *app) *cobra.Command {
	var forumFlag string
	cmd := &cobra.Command{
		Use:   "fetch-treasury-balance",
		Short: "Show the lamport balance of a forum's treasury",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forumKey, err := parseKey("forum", forumFlag)
			if err != nil {
				return err
			}
			treasury, lamports, err := a.client.FetchTreasuryBalance(cmd.Context(), forumKey)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), treasuryBalance{
				ForumTreasury: treasury,
				Lamports:      lamports,
				SOL:           float64(lamports) / float64(solana.LAMPORTS_PER_SOL),
			})
		},
	}
	cmd.Flags().StringVarP(&forumFlag, "forum", "f", "", "forum account pubkey")
	return cmd
}
