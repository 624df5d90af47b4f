// Package contract implements the payment-request token contract: a fungible
// token ledger and the escrow-free payment-request workflow built on it.
//
// Every public operation is one invocation: it reads through a staged
// write-set, validates its preconditions, and either commits every write as
// one batch or returns an error with nothing applied. Events are buffered
// during the invocation and handed to the sink only after the state commit,
// so external listeners never observe balances that are not final.
package contract

import (
	"fmt"

	"github.com/go-errors/errors"
	"go.opentelemetry.io/otel/api/trace"

	"requestpay.com/payment-contract/common"
	"requestpay.com/payment-contract/event"
	"requestpay.com/payment-contract/models"
	"requestpay.com/payment-contract/state"
)

const (
	keyName        = "Name"
	keySymbol      = "Symbol"
	keyTotalSupply = "TotalSupply"
	keyDecimals    = "Decimals"
	keyOwner       = "Owner"
	keyServiceFee  = "ServiceFee"
)

// Decimals is fixed at construction and never revised.
const tokenDecimals = 8

func balanceKey(address string) string {
	return "Balance:" + address
}

func allowanceKey(owner string, spender string) string {
	return fmt.Sprintf("Allowance:%s:%s", owner, spender)
}

func paymentRequestKey(id models.RequestID) string {
	return fmt.Sprintf("PaymentRequest:%d", id)
}

type Contract struct {
	store  state.Store
	sink   event.Sink
	tracer trace.Tracer
}

// Deploy writes the constructor state: token metadata, owner, service fee,
// and the initial mint of the whole supply to the deployer. The only point
// where the sum of balances increases.
func Deploy(store state.Store, sink event.Sink, deployer string, totalSupply models.TokenAmount, name string, symbol string, serviceFee models.TokenAmount) (*Contract, error) {
	tx := state.Begin(store)

	owner, err := tx.GetString(keyOwner)
	if err != nil {
		return nil, err
	}
	if owner != "" {
		return nil, errors.Errorf("contract is already deployed (owner %s)", owner)
	}

	tx.SetString(keyOwner, deployer)
	tx.SetString(keyName, name)
	tx.SetString(keySymbol, symbol)
	tx.SetUInt64(keyTotalSupply, totalSupply)
	tx.SetUInt32(keyDecimals, tokenDecimals)
	tx.SetUInt64(keyServiceFee, serviceFee)
	tx.SetUInt64(balanceKey(deployer), totalSupply)

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return newContract(store, sink), nil
}

// Open binds to already-deployed contract state.
func Open(store state.Store, sink event.Sink) (*Contract, error) {
	owner, err := state.Begin(store).GetString(keyOwner)
	if err != nil {
		return nil, err
	}
	if owner == "" {
		return nil, errors.New("contract state is empty, deploy first")
	}
	return newContract(store, sink), nil
}

// IsDeployed reports whether the store already holds constructor state.
func IsDeployed(store state.Store) (bool, error) {
	owner, err := state.Begin(store).GetString(keyOwner)
	if err != nil {
		return false, err
	}
	return owner != "", nil
}

func newContract(store state.Store, sink event.Sink) *Contract {
	return &Contract{
		store:  store,
		sink:   sink,
		tracer: common.CreateTracer("contract"),
	}
}

// invocation is the unit of atomicity: one staged state transaction plus the
// events produced while it ran.
type invocation struct {
	tx     *state.Transaction
	events []event.Event
}

func (c *Contract) begin() *invocation {
	return &invocation{
		tx: state.Begin(c.store),
	}
}

func (in *invocation) emit(e event.Event) {
	in.events = append(in.events, e)
}

// commit applies the staged writes, then releases the buffered events.
// Nothing external runs between a balance check and its write.
func (c *Contract) commit(in *invocation) error {
	err := in.tx.Commit()
	if err != nil {
		return err
	}
	for _, e := range in.events {
		c.sink.Emit(e)
	}
	return nil
}

func (c *Contract) Name() (string, error) {
	return state.Begin(c.store).GetString(keyName)
}

func (c *Contract) Symbol() (string, error) {
	return state.Begin(c.store).GetString(keySymbol)
}

func (c *Contract) TotalSupply() (models.TokenAmount, error) {
	return state.Begin(c.store).GetUInt64(keyTotalSupply)
}

func (c *Contract) GetDecimals() (uint32, error) {
	return state.Begin(c.store).GetUInt32(keyDecimals)
}

func (c *Contract) Owner() (string, error) {
	return state.Begin(c.store).GetString(keyOwner)
}

func (c *Contract) ServiceFee() (models.TokenAmount, error) {
	return state.Begin(c.store).GetUInt64(keyServiceFee)
}

// TokenInfo reads the constructor-state scalars in one pass.
func (c *Contract) TokenInfo() (*models.TokenInfoResponse, error) {
	tx := state.Begin(c.store)

	info := &models.TokenInfoResponse{}
	var err error

	info.Name, err = tx.GetString(keyName)
	if err != nil {
		return nil, err
	}
	info.Symbol, err = tx.GetString(keySymbol)
	if err != nil {
		return nil, err
	}
	info.TotalSupply, err = tx.GetUInt64(keyTotalSupply)
	if err != nil {
		return nil, err
	}
	info.Decimals, err = tx.GetUInt32(keyDecimals)
	if err != nil {
		return nil, err
	}
	info.Owner, err = tx.GetString(keyOwner)
	if err != nil {
		return nil, err
	}
	info.ServiceFee, err = tx.GetUInt64(keyServiceFee)
	if err != nil {
		return nil, err
	}
	return info, nil
}
