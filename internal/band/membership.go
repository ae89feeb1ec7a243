package band

import (
	"context"
	"fmt"

	"github.com/feral-file/band-ledger/internal/domain"
)

// IsMember reports whether the account is authorized on this band
func (b *Band) IsMember(account domain.Account) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.isMember(account)
}

// Members returns the authorized accounts in the order they were added, creator first
func (b *Band) Members() []domain.Account {
	b.mu.RLock()
	defer b.mu.RUnlock()

	members := make([]domain.Account, len(b.memberOrder))
	copy(members, b.memberOrder)
	return members
}

// AddMember authorizes account on behalf of caller, who must already be a member.
// Adding an existing member succeeds without journaling anything.
func (b *Band) AddMember(ctx context.Context, caller, account domain.Account) (*domain.MemberAdded, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.isMember(caller) {
		return nil, fmt.Errorf("%w: %s is not a member of %s", domain.ErrUnauthorized, caller.Hex(), b.handle.Hex())
	}
	if domain.IsZeroAddress(account) {
		return nil, fmt.Errorf("%w: zero address cannot be a member", domain.ErrInvalidInput)
	}

	result := &domain.MemberAdded{
		Owner:   account,
		AddedBy: caller,
	}
	if b.isMember(account) {
		return result, nil
	}

	if err := b.journal.Append(ctx, domain.NewMemberAddedEvent(b.handle, result)); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	b.addMember(account)

	return result, nil
}

func (b *Band) isMember(account domain.Account) bool {
	_, ok := b.members[account]
	return ok
}

func (b *Band) addMember(account domain.Account) {
	if b.isMember(account) {
		return
	}
	b.members[account] = struct{}{}
	b.memberOrder = append(b.memberOrder, account)
}
