package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/xid"

	"requestpay.com/payment-contract/contract"
	"requestpay.com/payment-contract/log"
	"requestpay.com/payment-contract/models"
	"requestpay.com/payment-contract/stats"
)

// ContractController adapts HTTP requests into contract invocations. The
// caller address travels in the request body and is validated here, before
// the contract sees it; the contract core treats addresses as opaque.
type ContractController struct {
	contract *contract.Contract
	observer *stats.VolumeObserver
}

func NewContractController(c *contract.Contract, observer *stats.VolumeObserver) *ContractController {
	return &ContractController{
		contract: c,
		observer: observer,
	}
}

// respondAbort maps a fatal abort onto a 400 with the abort reason. The
// invocation id ties the response to the server log line.
func respondAbort(w http.ResponseWriter, invocationId xid.ID, operation string, err error) {
	log.Errorf("Invocation %s aborted in %s: %v", invocationId.String(), operation, err)
	Respond(w, MessageWithStatus(http.StatusBadRequest, err.Error()))
}

func validAddresses(w http.ResponseWriter, addresses ...string) bool {
	for _, address := range addresses {
		if err := models.ValidateAddress(address); err != nil {
			Respond(w, MessageWithStatus(http.StatusBadRequest, err.Error()))
			return false
		}
	}
	return true
}

func (c *ContractController) HttpGetBalance(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:GetBalance")
	defer span.End()

	address := mux.Vars(r)["address"]
	if !validAddresses(w, address) {
		return
	}

	balance, err := c.contract.GetBalance(address)
	if err != nil {
		respondAbort(w, xid.New(), "GetBalance", err)
		return
	}

	Respond(w, &models.BalanceResponse{Address: address, Balance: balance})
}

func (c *ContractController) HttpGetAllowance(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:GetAllowance")
	defer span.End()

	vars := mux.Vars(r)
	owner := vars["owner"]
	spender := vars["spender"]
	if !validAddresses(w, owner, spender) {
		return
	}

	allowance, err := c.contract.Allowance(owner, spender)
	if err != nil {
		respondAbort(w, xid.New(), "GetAllowance", err)
		return
	}

	Respond(w, &models.AllowanceResponse{Owner: owner, Spender: spender, Allowance: allowance})
}

func (c *ContractController) HttpGetTokenInfo(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:GetTokenInfo")
	defer span.End()

	info, err := c.contract.TokenInfo()
	if err != nil {
		respondAbort(w, xid.New(), "GetTokenInfo", err)
		return
	}

	Respond(w, info)
}

func (c *ContractController) HttpTransferTo(w http.ResponseWriter, r *http.Request) {
	ctx, span := spanFromRequest(r, "requesthandler:TransferTo")
	defer span.End()

	invocationId := xid.New()

	command := &models.TransferCommand{}
	err := json.NewDecoder(r.Body).Decode(command)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}
	if !validAddresses(w, command.Caller, command.To) {
		return
	}

	ok, err := c.contract.TransferTo(ctx, command.Caller, command.To, command.Amount)
	if err != nil {
		respondAbort(w, invocationId, "TransferTo", err)
		return
	}

	Respond(w, &models.ResultResponse{Ok: ok})
}

func (c *ContractController) HttpTransferFrom(w http.ResponseWriter, r *http.Request) {
	ctx, span := spanFromRequest(r, "requesthandler:TransferFrom")
	defer span.End()

	invocationId := xid.New()

	command := &models.TransferFromCommand{}
	err := json.NewDecoder(r.Body).Decode(command)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}
	if !validAddresses(w, command.Caller, command.From, command.To) {
		return
	}

	ok, err := c.contract.TransferFrom(ctx, command.Caller, command.From, command.To, command.Amount)
	if err != nil {
		respondAbort(w, invocationId, "TransferFrom", err)
		return
	}

	Respond(w, &models.ResultResponse{Ok: ok})
}

func (c *ContractController) HttpApprove(w http.ResponseWriter, r *http.Request) {
	ctx, span := spanFromRequest(r, "requesthandler:Approve")
	defer span.End()

	invocationId := xid.New()

	command := &models.ApproveCommand{}
	err := json.NewDecoder(r.Body).Decode(command)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}
	if !validAddresses(w, command.Caller, command.Spender) {
		return
	}

	ok, err := c.contract.Approve(ctx, command.Caller, command.Spender, command.CurrentAmount, command.Amount)
	if err != nil {
		respondAbort(w, invocationId, "Approve", err)
		return
	}

	Respond(w, &models.ResultResponse{Ok: ok})
}

func (c *ContractController) HttpCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := spanFromRequest(r, "requesthandler:CreateRequest")
	defer span.End()

	invocationId := xid.New()

	command := &models.CreateRequestCommand{}
	err := json.NewDecoder(r.Body).Decode(command)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}
	if !validAddresses(w, command.Caller, command.RecipientAddress) {
		return
	}

	ok, err := c.contract.CreateRequest(ctx, command.Caller, command.Id, command.Description, command.RecipientAddress, command.Amount, command.Expiry)
	if err != nil {
		respondAbort(w, invocationId, "CreateRequest", err)
		return
	}

	Respond(w, &models.ResultResponse{Ok: ok})
}

func (c *ContractController) HttpGetPaymentRequest(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:GetPaymentRequest")
	defer span.End()

	rawId := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(rawId, 10, 32)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request id"))
		return
	}

	request, err := c.contract.GetPaymentRequest(models.RequestID(id))
	if err != nil {
		respondAbort(w, xid.New(), "GetPaymentRequest", err)
		return
	}
	if !request.Exists() {
		Respond(w, MessageWithStatus(http.StatusNotFound, "Payment request is not present"))
		return
	}

	Respond(w, &request)
}

func (c *ContractController) HttpPayRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := spanFromRequest(r, "requesthandler:PayRequest")
	defer span.End()

	invocationId := xid.New()

	command := &models.PayRequestCommand{}
	err := json.NewDecoder(r.Body).Decode(command)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}
	if !validAddresses(w, command.Caller) {
		return
	}
	if command.CurrentTime == 0 {
		command.CurrentTime = uint64(time.Now().Unix())
	}

	ok, err := c.contract.PayRequest(ctx, command.Caller, command.Id, command.CurrentTime)
	if err != nil {
		respondAbort(w, invocationId, "PayRequest", err)
		return
	}

	Respond(w, &models.ResultResponse{Ok: ok})
}

func (c *ContractController) HttpCancelRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := spanFromRequest(r, "requesthandler:CancelRequest")
	defer span.End()

	invocationId := xid.New()

	command := &models.CancelRequestCommand{}
	err := json.NewDecoder(r.Body).Decode(command)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}
	if !validAddresses(w, command.Caller) {
		return
	}

	ok, err := c.contract.CancelRequest(ctx, command.Caller, command.Id)
	if err != nil {
		respondAbort(w, invocationId, "CancelRequest", err)
		return
	}

	Respond(w, &models.ResultResponse{Ok: ok})
}

func (c *ContractController) HttpReviseServiceFee(w http.ResponseWriter, r *http.Request) {
	ctx, span := spanFromRequest(r, "requesthandler:ReviseServiceFee")
	defer span.End()

	invocationId := xid.New()

	command := &models.ReviseServiceFeeCommand{}
	err := json.NewDecoder(r.Body).Decode(command)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}
	if !validAddresses(w, command.Caller) {
		return
	}

	err = c.contract.ReviseServiceFee(ctx, command.Caller, command.NewServiceFee)
	if err != nil {
		respondAbort(w, invocationId, "ReviseServiceFee", err)
		return
	}

	Respond(w, Message("Service fee revised"))
}

func (c *ContractController) HttpGetStatistics(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:GetStatistics")
	defer span.End()

	Respond(w, c.observer.Snapshot())
}

func (c *ContractController) HttpGetAddressActivity(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:GetAddressActivity")
	defer span.End()

	address := mux.Vars(r)["address"]
	if !validAddresses(w, address) {
		return
	}

	Respond(w, &models.AddressActivityResponse{
		Address:   address,
		Transfers: c.observer.AddressActivity(address),
	})
}
