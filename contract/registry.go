package contract

import (
	"context"

	"github.com/go-errors/errors"

	"requestpay.com/payment-contract/event"
	"requestpay.com/payment-contract/models"
)

// GetPaymentRequest returns the stored record; a zero-valued record with
// Id 0 means no request exists under that id.
func (c *Contract) GetPaymentRequest(id models.RequestID) (models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := c.begin().tx.GetStruct(paymentRequestKey(id), &request)
	return request, err
}

// CreateRequest registers a payable obligation and collects the service fee
// from the creator to the contract owner. The record write and the fee
// transfer are one unit: if the fee cannot be paid the record is discarded
// with everything else.
func (c *Contract) CreateRequest(ctx context.Context, caller string, id models.RequestID, description string, recipientAddress string, amount models.TokenAmount, expiry uint64) (bool, error) {
	_, span := c.tracer.Start(ctx, "contract-CreateRequest")
	defer span.End()

	in := c.begin()

	if id == 0 {
		return false, errors.New("payment request id must be greater than zero")
	}

	var existing models.PaymentRequest
	err := in.tx.GetStruct(paymentRequestKey(id), &existing)
	if err != nil {
		return false, err
	}
	if existing.Exists() {
		return false, errors.Errorf("payment request is already present with id %d", id)
	}

	if caller == recipientAddress {
		return false, errors.New("recipient address should be different from the creator")
	}

	request := models.PaymentRequest{
		Id:               id,
		CreatorAddress:   caller,
		RecipientAddress: recipientAddress,
		Amount:           amount,
		Description:      description,
		Status:           models.StatusCreated,
		Expiry:           expiry,
	}

	err = in.tx.SetStruct(paymentRequestKey(id), request)
	if err != nil {
		return false, err
	}

	owner, err := in.tx.GetString(keyOwner)
	if err != nil {
		return false, err
	}
	serviceFee, err := in.tx.GetUInt64(keyServiceFee)
	if err != nil {
		return false, err
	}

	paid, err := c.transferTo(in, caller, owner, serviceFee)
	if err != nil {
		return false, err
	}
	if !paid {
		return false, errors.New("fee transfer failed")
	}

	in.emit(event.RequestChanged{Request: request})

	return true, c.commit(in)
}

// PayRequest settles a request before its expiry. The payer must be the
// designated recipient; by the time payment is attempted an insufficient
// balance is a hard violation, not a value to branch on.
func (c *Contract) PayRequest(ctx context.Context, caller string, id models.RequestID, currentTime uint64) (bool, error) {
	_, span := c.tracer.Start(ctx, "contract-PayRequest")
	defer span.End()

	in := c.begin()

	var request models.PaymentRequest
	err := in.tx.GetStruct(paymentRequestKey(id), &request)
	if err != nil {
		return false, err
	}

	if !request.Exists() {
		return false, errors.Errorf("payment request %d is not present", id)
	}
	if request.RecipientAddress != caller {
		return false, errors.New("invalid payer")
	}
	// Strict inequality: paying exactly at the expiry tick is too late.
	if request.Expiry <= currentTime {
		return false, errors.Errorf("payment request %d is expired", id)
	}
	if request.Status != models.StatusCreated {
		return false, errors.Errorf("payment request %d is paid or cancelled", id)
	}

	paid, err := c.transferTo(in, caller, request.CreatorAddress, request.Amount)
	if err != nil {
		return false, err
	}
	if !paid {
		return false, errors.New("payment failed")
	}

	request.Status = models.StatusPaid

	err = in.tx.SetStruct(paymentRequestKey(request.Id), request)
	if err != nil {
		return false, err
	}

	in.emit(event.RequestChanged{Request: request})

	return true, c.commit(in)
}

// CancelRequest retires an unsettled request. Only the creator may cancel,
// only from the Created state, and no funds move.
func (c *Contract) CancelRequest(ctx context.Context, caller string, id models.RequestID) (bool, error) {
	_, span := c.tracer.Start(ctx, "contract-CancelRequest")
	defer span.End()

	in := c.begin()

	var request models.PaymentRequest
	err := in.tx.GetStruct(paymentRequestKey(id), &request)
	if err != nil {
		return false, err
	}

	if !request.Exists() {
		return false, errors.Errorf("payment request %d is not present", id)
	}
	if request.Status != models.StatusCreated {
		return false, errors.New("only a created request can be cancelled")
	}
	if request.CreatorAddress != caller {
		return false, errors.New("only the request creator can cancel")
	}

	request.Status = models.StatusCancelled

	err = in.tx.SetStruct(paymentRequestKey(request.Id), request)
	if err != nil {
		return false, err
	}

	in.emit(event.RequestChanged{Request: request})

	return true, c.commit(in)
}

// ReviseServiceFee replaces the per-request fee. Owner only.
func (c *Contract) ReviseServiceFee(ctx context.Context, caller string, newServiceFee models.TokenAmount) error {
	_, span := c.tracer.Start(ctx, "contract-ReviseServiceFee")
	defer span.End()

	in := c.begin()

	owner, err := in.tx.GetString(keyOwner)
	if err != nil {
		return err
	}
	if owner != caller {
		return errors.New("the method is owner only")
	}

	oldServiceFee, err := in.tx.GetUInt64(keyServiceFee)
	if err != nil {
		return err
	}

	in.tx.SetUInt64(keyServiceFee, newServiceFee)

	in.emit(event.ServiceFeeChanged{Owner: owner, OldFee: oldServiceFee, NewFee: newServiceFee})

	return c.commit(in)
}
