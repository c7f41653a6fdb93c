// Package forum is a client for the forum program: a question-and-answer board whose
// forums, user profiles and questions live as independently addressed accounts.
//
// Every account other than the forum itself sits at a program derived address. The
// client derives them, assembles the instruction, signs with the wallet and any
// keypair authority, submits and waits for confirmation. Pass DryRun to an operation
// to get the derived addresses and the assembled instruction without submitting.
//
//	client := forum.NewClient(rpc.New(rpc.DevNet_RPC), forum.WithWallet(wallet))
//	res, err := client.CreateUserProfile(ctx, forumKey, client.WalletAuthority())
//
// Failures wrap one of the sentinel errors; remote program failures also unwrap to a
// *ProgramError carrying the code and logs.
package forum
