package forum

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// fetchAccountData returns the data of a program-owned account, or ErrAccountNotFound.
func (c *Client) fetchAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	resp, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &solanarpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if errors.Is(err, solanarpc.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, classifyRemote(err)
	}
	if resp == nil || resp.Value == nil || resp.Value.Data == nil {
		return nil, ErrAccountNotFound
	}
	if !resp.Value.Owner.Equals(c.programID) {
		return nil, fmt.Errorf("%w: owned by %s", ErrAccountNotFound, resp.Value.Owner)
	}
	return resp.Value.Data.GetBinary(), nil
}

// FetchForum fetches and decodes a forum account.
func (c *Client) FetchForum(ctx context.Context, address solana.PublicKey) (*Forum, error) {
	const op = "fetchForum"
	data, err := c.fetchAccountData(ctx, address)
	if err != nil {
		return nil, opError(op, address, err)
	}
	acc, err := forum_program.ParseAccount_Forum(data)
	if err != nil {
		return nil, opError(op, address, fmt.Errorf("%w: %v", ErrAccountNotFound, err))
	}
	return &Forum{Address: address, Account: acc}, nil
}

// FetchUserProfile fetches and decodes a user profile by its address.
func (c *Client) FetchUserProfile(ctx context.Context, address solana.PublicKey) (*UserProfile, error) {
	const op = "fetchUserProfile"
	data, err := c.fetchAccountData(ctx, address)
	if err != nil {
		return nil, opError(op, address, err)
	}
	acc, err := forum_program.ParseAccount_UserProfile(data)
	if err != nil {
		return nil, opError(op, address, fmt.Errorf("%w: %v", ErrAccountNotFound, err))
	}
	return &UserProfile{Address: address, Account: acc}, nil
}

// FetchUserProfileByOwner derives the owner's profile address and fetches it.
func (c *Client) FetchUserProfileByOwner(ctx context.Context, owner solana.PublicKey) (*UserProfile, error) {
	profile, err := c.derive(UserProfileSeeds(owner))
	if err != nil {
		return nil, opError("fetchUserProfileByOwner", owner, err)
	}
	return c.FetchUserProfile(ctx, profile.Address)
}

// FetchQuestion fetches and decodes a question account.
func (c *Client) FetchQuestion(ctx context.Context, address solana.PublicKey) (*Question, error) {
	const op = "fetchQuestion"
	data, err := c.fetchAccountData(ctx, address)
	if err != nil {
		return nil, opError(op, address, err)
	}
	acc, err := forum_program.ParseAccount_Question(data)
	if err != nil {
		return nil, opError(op, address, fmt.Errorf("%w: %v", ErrAccountNotFound, err))
	}
	return &Question{Address: address, Account: acc}, nil
}

// FetchBalance returns the lamport balance of any account; missing accounts hold zero.
func (c *Client) FetchBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, address, c.commitment)
	if err != nil {
		return 0, opError("fetchBalance", address, classifyRemote(err))
	}
	if out == nil {
		return 0, nil
	}
	return out.Value, nil
}

// FetchTreasuryBalance returns the forum's treasury address and its balance.
func (c *Client) FetchTreasuryBalance(ctx context.Context, forum solana.PublicKey) (PDA, uint64, error) {
	treasury, err := c.derive(ForumTreasurySeeds(forum))
	if err != nil {
		return PDA{}, 0, opError("fetchTreasuryBalance", forum, err)
	}
	balance, err := c.FetchBalance(ctx, treasury.Address)
	return treasury, balance, err
}

// MinimumBalanceForRentExemption returns the lamports an account of dataSize bytes
// must hold to persist.
func (c *Client) MinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	lamports, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, dataSize, c.commitment)
	if err != nil {
		return 0, classifyRemote(err)
	}
	return lamports, nil
}

// FetchAllForums returns every forum, or those managed by manager when it is set.
func (c *Client) FetchAllForums(ctx context.Context, manager *solana.PublicKey) ([]Forum, error) {
	filters := []solanarpc.RPCFilter{memcmpFilter(0, forum_program.Account_Forum[:])}
	if manager != nil {
		filters = append(filters, memcmpFilter(forum_program.FORUM_MANAGER_OFFSET, manager.Bytes()))
	}
	accs, err := fetchProgramAccounts(ctx, c, "fetchAllForums", filters, forum_program.ParseAccount_Forum)
	if err != nil {
		return nil, err
	}
	out := make([]Forum, 0, len(accs))
	for _, a := range accs {
		out = append(out, Forum{Address: a.address, Account: a.account})
	}
	return out, nil
}

// FetchAllUserProfiles returns every profile, or the one held by owner when it is set.
func (c *Client) FetchAllUserProfiles(ctx context.Context, owner *solana.PublicKey) ([]UserProfile, error) {
	filters := []solanarpc.RPCFilter{memcmpFilter(0, forum_program.Account_UserProfile[:])}
	if owner != nil {
		filters = append(filters, memcmpFilter(forum_program.USER_PROFILE_OWNER_OFFSET, owner.Bytes()))
	}
	accs, err := fetchProgramAccounts(ctx, c, "fetchAllUserProfiles", filters, forum_program.ParseAccount_UserProfile)
	if err != nil {
		return nil, err
	}
	out := make([]UserProfile, 0, len(accs))
	for _, a := range accs {
		out = append(out, UserProfile{Address: a.address, Account: a.account})
	}
	return out, nil
}

// FetchAllQuestions returns every question, or those asked under userProfile when it
// is set. userProfile is the profile account address, not its owner.
func (c *Client) FetchAllQuestions(ctx context.Context, userProfile *solana.PublicKey) ([]Question, error) {
	filters := []solanarpc.RPCFilter{memcmpFilter(0, forum_program.Account_Question[:])}
	if userProfile != nil {
		filters = append(filters, memcmpFilter(forum_program.QUESTION_USER_PROFILE_OFFSET, userProfile.Bytes()))
	}
	accs, err := fetchProgramAccounts(ctx, c, "fetchAllQuestions", filters, forum_program.ParseAccount_Question)
	if err != nil {
		return nil, err
	}
	out := make([]Question, 0, len(accs))
	for _, a := range accs {
		out = append(out, Question{Address: a.address, Account: a.account})
	}
	return out, nil
}

type keyedAccount[T any] struct {
	address solana.PublicKey
	account *T
}

// fetchProgramAccounts lists matching keys with an empty data slice, then loads the
// accounts in chunks. Accounts closed between the two phases are skipped.
func fetchProgramAccounts[T any](ctx context.Context, c *Client, op string, filters []solanarpc.RPCFilter, parse func([]byte) (*T, error)) ([]keyedAccount[T], error) {
	var zero uint64
	keyed, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.programID, &solanarpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
		Filters:    filters,
		DataSlice:  &solanarpc.DataSlice{Offset: &zero, Length: &zero},
	})
	if err != nil {
		return nil, opError(op, c.programID, classifyRemote(err))
	}
	if len(keyed) == 0 {
		c.logger.Debug("no accounts matched", zap.String("op", op))
		return []keyedAccount[T]{}, nil
	}

	keys := make([]solana.PublicKey, 0, len(keyed))
	for _, k := range keyed {
		keys = append(keys, k.Pubkey)
	}

	out := make([]keyedAccount[T], 0, len(keys))
	for start := 0; start < len(keys); start += maxAccountsPerRequest {
		end := min(start+maxAccountsPerRequest, len(keys))
		chunk := keys[start:end]
		multi, err := c.rpc.GetMultipleAccountsWithOpts(ctx, chunk, &solanarpc.GetMultipleAccountsOpts{
			Commitment: c.commitment,
			Encoding:   solana.EncodingBase64,
		})
		if err != nil {
			return nil, opError(op, c.programID, classifyRemote(err))
		}
		if multi == nil {
			return nil, opError(op, c.programID, fmt.Errorf("%w: empty response", ErrTransport))
		}
		for i, acct := range multi.Value {
			if acct == nil || acct.Data == nil || i >= len(chunk) {
				continue
			}
			decoded, err := parse(acct.Data.GetBinary())
			if err != nil {
				return nil, opError(op, chunk[i], err)
			}
			out = append(out, keyedAccount[T]{address: chunk[i], account: decoded})
		}
	}
	c.logger.Debug("fetched program accounts", zap.String("op", op), zap.Int("count", len(out)))
	return out, nil
}

// memcmpFilter helper to construct an RPC memcmp filter.
func memcmpFilter(offset uint64, bytes []byte) solanarpc.RPCFilter {
	return solanarpc.RPCFilter{Memcmp: &solanarpc.RPCFilterMemcmp{Offset: offset, Bytes: bytes}}
}
