package contract

import (
	"context"
	"math"

	"github.com/go-errors/errors"

	"requestpay.com/payment-contract/event"
	"requestpay.com/payment-contract/models"
)

// GetBalance returns the balance of an address, zero if it never held tokens.
func (c *Contract) GetBalance(address string) (models.TokenAmount, error) {
	return c.begin().tx.GetUInt64(balanceKey(address))
}

// Allowance returns what spender may still move from owner's balance.
func (c *Contract) Allowance(owner string, spender string) (models.TokenAmount, error) {
	return c.begin().tx.GetUInt64(allowanceKey(owner, spender))
}

// TransferTo moves amount from the caller to another address. Insufficient
// balance is an anticipated outcome and returns false with nothing changed;
// a zero amount is a degenerate success that only emits the event.
func (c *Contract) TransferTo(ctx context.Context, caller string, to string, amount models.TokenAmount) (bool, error) {
	_, span := c.tracer.Start(ctx, "contract-TransferTo")
	defer span.End()

	in := c.begin()

	ok, err := c.transferTo(in, caller, to, amount)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return true, c.commit(in)
}

// TransferFrom moves amount from one address to another on the strength of
// an allowance granted to the caller. The allowance decrement and both
// balance moves are part of the same all-or-nothing unit.
func (c *Contract) TransferFrom(ctx context.Context, caller string, from string, to string, amount models.TokenAmount) (bool, error) {
	_, span := c.tracer.Start(ctx, "contract-TransferFrom")
	defer span.End()

	in := c.begin()

	if amount == 0 {
		in.emit(event.Transfer{From: from, To: to, Amount: 0})
		return true, c.commit(in)
	}

	callerAllowance, err := in.tx.GetUInt64(allowanceKey(from, caller))
	if err != nil {
		return false, err
	}
	fromBalance, err := in.tx.GetUInt64(balanceKey(from))
	if err != nil {
		return false, err
	}

	if callerAllowance < amount || fromBalance < amount {
		return false, nil
	}

	in.tx.SetUInt64(allowanceKey(from, caller), callerAllowance-amount)
	in.tx.SetUInt64(balanceKey(from), fromBalance-amount)

	err = c.credit(in, to, amount)
	if err != nil {
		return false, err
	}

	in.emit(event.Transfer{From: from, To: to, Amount: amount})

	return true, c.commit(in)
}

// Approve replaces the caller's allowance for spender, but only when the
// caller's view of the current value still holds. The compare-and-swap
// closes the classic approval race where two replacements interleave; a
// stale expectation returns false and changes nothing.
func (c *Contract) Approve(ctx context.Context, caller string, spender string, currentAmount models.TokenAmount, amount models.TokenAmount) (bool, error) {
	_, span := c.tracer.Start(ctx, "contract-Approve")
	defer span.End()

	in := c.begin()

	allowance, err := in.tx.GetUInt64(allowanceKey(caller, spender))
	if err != nil {
		return false, err
	}
	if allowance != currentAmount {
		return false, nil
	}

	in.tx.SetUInt64(allowanceKey(caller, spender), amount)

	in.emit(event.Approval{Owner: caller, Spender: spender, OldAmount: currentAmount, Amount: amount})

	return true, c.commit(in)
}

// transferTo is the shared movement primitive; registry operations compose
// it inside their own invocation so a failing later step discards the
// balance writes too.
func (c *Contract) transferTo(in *invocation, from string, to string, amount models.TokenAmount) (bool, error) {
	if amount == 0 {
		in.emit(event.Transfer{From: from, To: to, Amount: 0})
		return true, nil
	}

	senderBalance, err := in.tx.GetUInt64(balanceKey(from))
	if err != nil {
		return false, err
	}
	if senderBalance < amount {
		return false, nil
	}

	in.tx.SetUInt64(balanceKey(from), senderBalance-amount)

	err = c.credit(in, to, amount)
	if err != nil {
		return false, err
	}

	in.emit(event.Transfer{From: from, To: to, Amount: amount})

	return true, nil
}

// credit adds to a balance with a checked addition. Wraparound would corrupt
// the ledger's conservation invariant, so overflow aborts the invocation.
func (c *Contract) credit(in *invocation, to string, amount models.TokenAmount) error {
	toBalance, err := in.tx.GetUInt64(balanceKey(to))
	if err != nil {
		return err
	}
	if toBalance > math.MaxUint64-amount {
		return errors.Errorf("balance overflow crediting %s", to)
	}
	in.tx.SetUInt64(balanceKey(to), toBalance+amount)
	return nil
}
