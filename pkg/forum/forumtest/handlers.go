package forumtest

import (
	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

func (x *executor) initForum(args *forum_program.InitForumArgs, a *forum_program.InitForumAccounts) *instructionError {
	if err := x.checkSeeds(a.ForumAuthority, &args.ForumAuthBump, a.Forum.Bytes()); err != nil {
		return err
	}
	if err := x.checkSeeds(a.ForumTreasury, nil, []byte(forum_program.SEED_TREASURY), a.Forum.Bytes()); err != nil {
		return err
	}
	if err := x.createAccount(a.ForumManager, a.Forum, forum_program.FORUM_ACCOUNT_SIZE); err != nil {
		return err
	}
	if _, ok := x.state[a.ForumTreasury]; !ok {
		rent := RentExemptMinimum(forum_program.TREASURY_RENT_BYTES)
		if err := x.debit(a.ForumManager, rent); err != nil {
			return err
		}
		x.state[a.ForumTreasury] = &AccountState{Lamports: rent, Owner: x.ledger.programID}
	}
	forum := forum_program.Forum{
		Version:                forum_program.FORUM_ACCOUNT_VERSION,
		ForumManager:           a.ForumManager,
		ForumAuthority:         a.ForumAuthority,
		ForumAuthoritySeed:     a.Forum,
		ForumAuthorityBumpSeed: [1]uint8{args.ForumAuthBump},
		ForumFees:              args.ForumFees,
	}
	return x.store(a.Forum, forum, forum_program.FORUM_ACCOUNT_SIZE)
}

func (x *executor) updateForumParams(args *forum_program.UpdateForumParamsArgs, a *forum_program.UpdateForumParamsAccounts) *instructionError {
	forum, err := x.loadForum(a.Forum)
	if err != nil {
		return err
	}
	if !forum.ForumManager.Equals(a.ForumManager) {
		return customError(forum_program.ErrorCode_UnauthorizedManager)
	}
	forum.ForumFees = args.ForumFees
	return x.store(a.Forum, forum, forum_program.FORUM_ACCOUNT_SIZE)
}

func (x *executor) payoutFromTreasury(args *forum_program.PayoutFromTreasuryArgs, a *forum_program.TreasuryAccounts) *instructionError {
	forum, err := x.loadForum(a.Forum)
	if err != nil {
		return err
	}
	if !forum.ForumManager.Equals(a.ForumManager) {
		return customError(forum_program.ErrorCode_UnauthorizedManager)
	}
	if err := x.checkSeeds(a.ForumTreasury, &args.ForumTreasuryBump, []byte(forum_program.SEED_TREASURY), a.Forum.Bytes()); err != nil {
		return err
	}
	treasury, err := x.programAccount(a.ForumTreasury)
	if err != nil {
		return err
	}
	retained := max(args.MinimumBalanceForRentExemption, RentExemptMinimum(forum_program.TREASURY_RENT_BYTES))
	if treasury.Lamports <= retained {
		return customError(forum_program.ErrorCode_InsufficientTreasuryBalance)
	}
	return x.transfer(a.ForumTreasury, a.Receiver, treasury.Lamports-retained)
}

func (x *executor) closeForum(args *forum_program.CloseForumArgs, a *forum_program.TreasuryAccounts) *instructionError {
	forum, err := x.loadForum(a.Forum)
	if err != nil {
		return err
	}
	if !forum.ForumManager.Equals(a.ForumManager) {
		return customError(forum_program.ErrorCode_UnauthorizedManager)
	}
	if err := x.checkSeeds(a.ForumTreasury, &args.ForumTreasuryBump, []byte(forum_program.SEED_TREASURY), a.Forum.Bytes()); err != nil {
		return err
	}
	if _, err := x.programAccount(a.ForumTreasury); err != nil {
		return err
	}
	x.closeAccount(a.ForumTreasury, a.Receiver)
	x.closeAccount(a.Forum, a.Receiver)
	return nil
}

func (x *executor) createUserProfile(args *forum_program.CreateUserProfileArgs, a *forum_program.CreateUserProfileAccounts) *instructionError {
	forum, err := x.loadForum(a.Forum)
	if err != nil {
		return err
	}
	if err := x.checkSeeds(a.ForumAuthority, &args.ForumAuthBump, a.Forum.Bytes()); err != nil {
		return err
	}
	if err := x.checkSeeds(a.ForumTreasury, &args.ForumTreasuryBump, []byte(forum_program.SEED_TREASURY), a.Forum.Bytes()); err != nil {
		return err
	}
	if err := x.checkSeeds(a.UserProfile, nil, []byte(forum_program.SEED_USER_PROFILE), a.ProfileOwner.Bytes()); err != nil {
		return err
	}
	if err := x.createAccount(a.ProfileOwner, a.UserProfile, forum_program.USER_PROFILE_ACCOUNT_SIZE); err != nil {
		return err
	}
	if err := x.transfer(a.ProfileOwner, a.ForumTreasury, forum.ForumFees.ForumProfileFee); err != nil {
		return err
	}
	forum.ForumCounts.ForumProfileCount++
	if err := x.store(a.Forum, forum, forum_program.FORUM_ACCOUNT_SIZE); err != nil {
		return err
	}
	profile := forum_program.UserProfile{ProfileOwner: a.ProfileOwner, ProfileCreatedTs: x.now}
	return x.store(a.UserProfile, profile, forum_program.USER_PROFILE_ACCOUNT_SIZE)
}

func (x *executor) editUserProfile(args *forum_program.UserProfileBumpArgs, a *forum_program.EditUserProfileAccounts) *instructionError {
	if err := x.checkSeeds(a.UserProfile, &args.UserProfileBump, []byte(forum_program.SEED_USER_PROFILE), a.ProfileOwner.Bytes()); err != nil {
		return err
	}
	profile, err := x.loadUserProfile(a.UserProfile)
	if err != nil {
		return err
	}
	if !profile.ProfileOwner.Equals(a.ProfileOwner) {
		return customError(forum_program.ErrorCode_UnauthorizedProfileOwner)
	}
	mint := a.NftPfpTokenMint
	profile.NftPfpTokenMint = &mint
	return x.store(a.UserProfile, profile, forum_program.USER_PROFILE_ACCOUNT_SIZE)
}

func (x *executor) deleteUserProfile(args *forum_program.UserProfileBumpArgs, a *forum_program.DeleteUserProfileAccounts) *instructionError {
	if err := x.checkSeeds(a.UserProfile, &args.UserProfileBump, []byte(forum_program.SEED_USER_PROFILE), a.ProfileOwner.Bytes()); err != nil {
		return err
	}
	profile, err := x.loadUserProfile(a.UserProfile)
	if err != nil {
		return err
	}
	if !profile.ProfileOwner.Equals(a.ProfileOwner) {
		return customError(forum_program.ErrorCode_UnauthorizedProfileOwner)
	}
	forum, err := x.loadForum(a.Forum)
	if err != nil {
		return err
	}
	if forum.ForumCounts.ForumProfileCount > 0 {
		forum.ForumCounts.ForumProfileCount--
	}
	if err := x.store(a.Forum, forum, forum_program.FORUM_ACCOUNT_SIZE); err != nil {
		return err
	}
	x.closeAccount(a.UserProfile, a.Receiver)
	return nil
}

func (x *executor) askQuestion(args *forum_program.AskQuestionArgs, a *forum_program.AskQuestionAccounts) *instructionError {
	forum, err := x.loadForum(a.Forum)
	if err != nil {
		return err
	}
	if err := x.checkSeeds(a.ForumTreasury, &args.ForumTreasuryBump, []byte(forum_program.SEED_TREASURY), a.Forum.Bytes()); err != nil {
		return err
	}
	if err := x.checkSeeds(a.UserProfile, &args.UserProfileBump, []byte(forum_program.SEED_USER_PROFILE), a.ProfileOwner.Bytes()); err != nil {
		return err
	}
	profile, err := x.loadUserProfile(a.UserProfile)
	if err != nil {
		return err
	}
	if !profile.ProfileOwner.Equals(a.ProfileOwner) {
		return customError(forum_program.ErrorCode_UnauthorizedProfileOwner)
	}
	if err := x.checkSeeds(a.Question, nil,
		[]byte(forum_program.SEED_QUESTION), a.Forum.Bytes(), a.UserProfile.Bytes(), a.QuestionSeed.Bytes()); err != nil {
		return err
	}
	if len(args.Title) > forum_program.MAX_TITLE_LENGTH {
		return customError(forum_program.ErrorCode_TitleTooLong)
	}
	if len(args.Content) > forum_program.MAX_CONTENT_LENGTH {
		return customError(forum_program.ErrorCode_ContentTooLong)
	}
	if args.BountyAmount < forum.ForumFees.ForumBountyMinimum {
		return customError(forum_program.ErrorCode_BountyBelowMinimum)
	}
	if err := x.createAccount(a.ProfileOwner, a.Question, forum_program.QUESTION_ACCOUNT_SIZE); err != nil {
		return err
	}
	if err := x.transfer(a.ProfileOwner, a.ForumTreasury, forum.ForumFees.ForumQuestionFee+args.BountyAmount); err != nil {
		return err
	}

	profile.QuestionsAsked++
	if err := x.store(a.UserProfile, profile, forum_program.USER_PROFILE_ACCOUNT_SIZE); err != nil {
		return err
	}
	forum.ForumCounts.ForumQuestionCount++
	if err := x.store(a.Forum, forum, forum_program.FORUM_ACCOUNT_SIZE); err != nil {
		return err
	}
	question := forum_program.Question{
		UserProfile:      a.UserProfile,
		Forum:            a.Forum,
		QuestionSeed:     a.QuestionSeed,
		QuestionPostedTs: x.now,
		BountyAmount:     args.BountyAmount,
		Tags:             args.Tags,
		Title:            args.Title,
		Content:          args.Content,
	}
	return x.store(a.Question, question, forum_program.QUESTION_ACCOUNT_SIZE)
}

