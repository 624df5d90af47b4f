// Package event defines the contract event schema and the sinks events are
// delivered to. Fields flagged Indexed mark what an external indexer should
// key on; delivery and durability are the sink's concern.
package event

import "requestpay.com/payment-contract/models"

type Field struct {
	Name    string
	Value   interface{}
	Indexed bool
}

type Event interface {
	Name() string
	Fields() []Field
}

type Transfer struct {
	From   string
	To     string
	Amount models.TokenAmount
}

func (e Transfer) Name() string { return "Transfer" }

func (e Transfer) Fields() []Field {
	return []Field{
		{Name: "From", Value: e.From, Indexed: true},
		{Name: "To", Value: e.To, Indexed: true},
		{Name: "Amount", Value: e.Amount},
	}
}

type Approval struct {
	Owner     string
	Spender   string
	OldAmount models.TokenAmount
	Amount    models.TokenAmount
}

func (e Approval) Name() string { return "Approval" }

func (e Approval) Fields() []Field {
	return []Field{
		{Name: "Owner", Value: e.Owner, Indexed: true},
		{Name: "Spender", Value: e.Spender, Indexed: true},
		{Name: "OldAmount", Value: e.OldAmount},
		{Name: "Amount", Value: e.Amount},
	}
}

// RequestChanged carries the full record so indexers never need a follow-up
// state read to see the request after a lifecycle change.
type RequestChanged struct {
	Request models.PaymentRequest
}

func (e RequestChanged) Name() string { return "RequestChanged" }

func (e RequestChanged) Fields() []Field {
	return []Field{
		{Name: "Id", Value: e.Request.Id, Indexed: true},
		{Name: "CreatorAddress", Value: e.Request.CreatorAddress},
		{Name: "RecipientAddress", Value: e.Request.RecipientAddress},
		{Name: "Amount", Value: e.Request.Amount},
		{Name: "Description", Value: e.Request.Description},
		{Name: "Status", Value: e.Request.Status.String()},
		{Name: "Expiry", Value: e.Request.Expiry},
	}
}

type ServiceFeeChanged struct {
	Owner  string
	OldFee models.TokenAmount
	NewFee models.TokenAmount
}

func (e ServiceFeeChanged) Name() string { return "ServiceFeeChanged" }

func (e ServiceFeeChanged) Fields() []Field {
	return []Field{
		{Name: "Owner", Value: e.Owner, Indexed: true},
		{Name: "OldFee", Value: e.OldFee},
		{Name: "NewFee", Value: e.NewFee},
	}
}
