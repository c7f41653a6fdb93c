package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAskQuestionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask-question",
		Short: "Post the question described in the config's question section",
		Long: `Posts a question from the wallet's profile. Title, content, tag and bounty are
read from the question section of the config, for example:

  question:
    forum: <forum pubkey>
    title: How are PDAs derived?
    content: ...
    tag: Development
    bounty: 150000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := a.cfg.Question
			if q.Forum.IsZero() {
				return errors.New("question.forum is not configured")
			}
			res, err := a.client.AskQuestion(cmd.Context(), q.Forum, a.client.WalletAuthority(), q.Params, a.exec()...)
			if err != nil {
				return err
			}
			a.logger.Info("question posted",
				zap.Stringer("question", res.Question.Address),
				zap.Stringer("questionSeed", res.QuestionSeed))
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}
