package contract

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/assert"

	"requestpay.com/payment-contract/event"
	"requestpay.com/payment-contract/models"
	"requestpay.com/payment-contract/state"
)

func newAddress() string {
	return keypair.MustRandom().Address()
}

type testSetup struct {
	contract *Contract
	store    state.Store
	sink     *event.MemorySink
	owner    string
}

func deployTestContract(t *testing.T, totalSupply models.TokenAmount, serviceFee models.TokenAmount) *testSetup {
	store := state.NewMemoryStore()
	sink := event.NewMemorySink()
	owner := newAddress()

	c, err := Deploy(store, sink, owner, totalSupply, "Payment Request Token", "PRT", serviceFee)
	if err != nil {
		t.Fatalf("deploy failed: %v", err)
	}

	return &testSetup{
		contract: c,
		store:    store,
		sink:     sink,
		owner:    owner,
	}
}

func (s *testSetup) balance(t *testing.T, address string) models.TokenAmount {
	balance, err := s.contract.GetBalance(address)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	return balance
}

func (s *testSetup) sumBalances(t *testing.T, addresses ...string) models.TokenAmount {
	var sum models.TokenAmount
	for _, address := range addresses {
		sum += s.balance(t, address)
	}
	return sum
}

func (s *testSetup) fund(t *testing.T, to string, amount models.TokenAmount) {
	ok, err := s.contract.TransferTo(context.Background(), s.owner, to, amount)
	if err != nil || !ok {
		t.Fatalf("funding transfer failed: ok=%v err=%v", ok, err)
	}
}

func TestDeployMintsTotalSupplyToOwner(t *testing.T) {
	assert := assert.New(t)

	setup := deployTestContract(t, 1000, 10)

	assert.EqualValues(1000, setup.balance(t, setup.owner))

	info, err := setup.contract.TokenInfo()
	assert.NoError(err)
	assert.Equal("Payment Request Token", info.Name)
	assert.Equal("PRT", info.Symbol)
	assert.EqualValues(1000, info.TotalSupply)
	assert.EqualValues(8, info.Decimals)
	assert.Equal(setup.owner, info.Owner)
	assert.EqualValues(10, info.ServiceFee)
}

func TestDeployOnExistingStateFails(t *testing.T) {
	assert := assert.New(t)

	setup := deployTestContract(t, 1000, 10)

	_, err := Deploy(setup.store, setup.sink, newAddress(), 500, "Other", "OTH", 1)
	assert.Error(err)

	// the original constructor state is untouched
	assert.EqualValues(1000, setup.balance(t, setup.owner))
}

func TestOpenEmptyStateFails(t *testing.T) {
	_, err := Open(state.NewMemoryStore(), event.NewMemorySink())
	assert.Error(t, err)
}

func TestTransferConservation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	setup := deployTestContract(t, 1000, 10)
	a := newAddress()
	b := newAddress()

	setup.fund(t, a, 400)

	ok, err := setup.contract.TransferTo(ctx, a, b, 150)
	assert.NoError(err)
	assert.True(ok)

	ok, err = setup.contract.TransferTo(ctx, b, setup.owner, 50)
	assert.NoError(err)
	assert.True(ok)

	assert.EqualValues(1000, setup.sumBalances(t, setup.owner, a, b))
	assert.EqualValues(250, setup.balance(t, a))
	assert.EqualValues(100, setup.balance(t, b))
}

func TestTransferInsufficientBalance(t *testing.T) {
	assert := assert.New(t)

	setup := deployTestContract(t, 1000, 10)
	a := newAddress()
	b := newAddress()
	setup.fund(t, a, 30)

	ok, err := setup.contract.TransferTo(context.Background(), a, b, 31)
	assert.NoError(err, "insufficient balance is a business outcome, not an abort")
	assert.False(ok)

	assert.EqualValues(30, setup.balance(t, a))
	assert.EqualValues(0, setup.balance(t, b))
}

func TestZeroAmountTransfer(t *testing.T) {
	assert := assert.New(t)

	setup := deployTestContract(t, 1000, 10)
	a := newAddress()
	b := newAddress()

	ok, err := setup.contract.TransferTo(context.Background(), a, b, 0)
	assert.NoError(err)
	assert.True(ok)

	assert.EqualValues(0, setup.balance(t, a))
	assert.EqualValues(0, setup.balance(t, b))

	transfers := setup.sink.EventsNamed("Transfer")
	if assert.Len(transfers, 1) {
		transfer := transfers[0].(event.Transfer)
		assert.Equal(a, transfer.From)
		assert.Equal(b, transfer.To)
		assert.EqualValues(0, transfer.Amount)
	}
}

func TestTransferOverflowAborts(t *testing.T) {
	assert := assert.New(t)

	setup := deployTestContract(t, 1000, 10)
	a := newAddress()
	b := newAddress()

	// Conservation makes overflow unreachable from a single mint; seed the
	// store directly to exercise the checked addition.
	max := strconv.FormatUint(math.MaxUint64, 10)
	err := setup.store.Apply(map[string]string{
		balanceKey(a): "100",
		balanceKey(b): max,
	})
	assert.NoError(err)

	ok, err := setup.contract.TransferTo(context.Background(), a, b, 1)
	assert.Error(err)
	assert.False(ok)

	// nothing was applied: the debit rolled back with the failed credit
	assert.EqualValues(100, setup.balance(t, a))
	assert.EqualValues(uint64(math.MaxUint64), setup.balance(t, b))
	assert.Empty(setup.sink.EventsNamed("Transfer"))
}

func TestApproveCompareAndSwap(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	setup := deployTestContract(t, 1000, 10)
	spender := newAddress()

	ok, err := setup.contract.Approve(ctx, setup.owner, spender, 0, 50)
	assert.NoError(err)
	assert.True(ok)

	allowance, err := setup.contract.Allowance(setup.owner, spender)
	assert.NoError(err)
	assert.EqualValues(50, allowance)

	approvals := setup.sink.EventsNamed("Approval")
	if assert.Len(approvals, 1) {
		approval := approvals[0].(event.Approval)
		assert.EqualValues(0, approval.OldAmount)
		assert.EqualValues(50, approval.Amount)
	}
}

func TestApproveStaleValue(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	setup := deployTestContract(t, 1000, 10)
	spender := newAddress()

	ok, err := setup.contract.Approve(ctx, setup.owner, spender, 0, 50)
	assert.NoError(err)
	assert.True(ok)

	// a second approval still expecting 0 lost the race and must not apply
	ok, err = setup.contract.Approve(ctx, setup.owner, spender, 0, 75)
	assert.NoError(err)
	assert.False(ok)

	allowance, err := setup.contract.Allowance(setup.owner, spender)
	assert.NoError(err)
	assert.EqualValues(50, allowance)
}

func TestTransferFromWithinAllowance(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	setup := deployTestContract(t, 1000, 10)
	spender := newAddress()
	destination := newAddress()

	ok, err := setup.contract.Approve(ctx, setup.owner, spender, 0, 50)
	assert.NoError(err)
	assert.True(ok)

	ok, err = setup.contract.TransferFrom(ctx, spender, setup.owner, destination, 40)
	assert.NoError(err)
	assert.True(ok)

	assert.EqualValues(960, setup.balance(t, setup.owner))
	assert.EqualValues(40, setup.balance(t, destination))

	allowance, err := setup.contract.Allowance(setup.owner, spender)
	assert.NoError(err)
	assert.EqualValues(10, allowance)
}

func TestTransferFromInsufficientAllowance(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	setup := deployTestContract(t, 1000, 10)
	spender := newAddress()
	destination := newAddress()

	ok, err := setup.contract.Approve(ctx, setup.owner, spender, 0, 50)
	assert.NoError(err)
	assert.True(ok)

	ok, err = setup.contract.TransferFrom(ctx, spender, setup.owner, destination, 60)
	assert.NoError(err)
	assert.False(ok)

	assert.EqualValues(1000, setup.balance(t, setup.owner))
	assert.EqualValues(0, setup.balance(t, destination))

	allowance, err := setup.contract.Allowance(setup.owner, spender)
	assert.NoError(err)
	assert.EqualValues(50, allowance)
}

func TestTransferFromZeroAmount(t *testing.T) {
	assert := assert.New(t)

	setup := deployTestContract(t, 1000, 10)
	spender := newAddress()
	destination := newAddress()

	// no allowance needed for the degenerate case
	ok, err := setup.contract.TransferFrom(context.Background(), spender, setup.owner, destination, 0)
	assert.NoError(err)
	assert.True(ok)

	assert.EqualValues(1000, setup.balance(t, setup.owner))
	assert.Len(setup.sink.EventsNamed("Transfer"), 1)
}
