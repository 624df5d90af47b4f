package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/assert"

	"requestpay.com/payment-contract/contract"
	"requestpay.com/payment-contract/controllers"
	"requestpay.com/payment-contract/event"
	"requestpay.com/payment-contract/models"
	"requestpay.com/payment-contract/serviceNode"
	"requestpay.com/payment-contract/state"
	"requestpay.com/payment-contract/stats"
)

type httpSetup struct {
	server *httptest.Server
	owner  string
}

func startTestServer(t *testing.T) *httpSetup {
	owner := keypair.MustRandom().Address()
	observer := stats.NewVolumeObserver()

	c, err := contract.Deploy(state.NewMemoryStore(), event.MultiSink{observer}, owner, 1000, "Payment Request Token", "PRT", 10)
	if err != nil {
		t.Fatalf("deploy failed: %v", err)
	}

	router := serviceNode.NewRouter(controllers.NewContractController(c, observer))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &httpSetup{server: server, owner: owner}
}

func (s *httpSetup) post(t *testing.T, path string, command interface{}) *http.Response {
	body, err := json.Marshal(command)
	if err != nil {
		t.Fatalf("encoding command: %v", err)
	}
	res, err := http.Post(s.server.URL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return res
}

func (s *httpSetup) get(t *testing.T, path string) *http.Response {
	res, err := http.Get(s.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return res
}

func decodeResult(t *testing.T, res *http.Response) *models.ResultResponse {
	defer res.Body.Close()
	result := &models.ResultResponse{}
	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	return result
}

func TestHttpTokenInfo(t *testing.T) {
	assert := assert.New(t)

	setup := startTestServer(t)

	res := setup.get(t, "/api/token/info")
	defer res.Body.Close()
	assert.Equal(http.StatusOK, res.StatusCode)

	info := &models.TokenInfoResponse{}
	assert.NoError(json.NewDecoder(res.Body).Decode(info))
	assert.Equal("PRT", info.Symbol)
	assert.EqualValues(1000, info.TotalSupply)
	assert.EqualValues(8, info.Decimals)
	assert.Equal(setup.owner, info.Owner)
}

func TestHttpTransferAndBalance(t *testing.T) {
	assert := assert.New(t)

	setup := startTestServer(t)
	to := keypair.MustRandom().Address()

	res := setup.post(t, "/api/token/transfer", &models.TransferCommand{
		Caller: setup.owner,
		To:     to,
		Amount: 250,
	})
	assert.Equal(http.StatusOK, res.StatusCode)
	assert.True(decodeResult(t, res).Ok)

	res = setup.get(t, "/api/token/balance/"+to)
	defer res.Body.Close()
	assert.Equal(http.StatusOK, res.StatusCode)

	balance := &models.BalanceResponse{}
	assert.NoError(json.NewDecoder(res.Body).Decode(balance))
	assert.EqualValues(250, balance.Balance)
}

func TestHttpTransferInsufficientBalanceReturnsOkFalse(t *testing.T) {
	assert := assert.New(t)

	setup := startTestServer(t)
	poor := keypair.MustRandom().Address()

	res := setup.post(t, "/api/token/transfer", &models.TransferCommand{
		Caller: poor,
		To:     setup.owner,
		Amount: 5,
	})
	assert.Equal(http.StatusOK, res.StatusCode)
	assert.False(decodeResult(t, res).Ok)
}

func TestHttpRejectsMalformedAddress(t *testing.T) {
	assert := assert.New(t)

	setup := startTestServer(t)

	res := setup.post(t, "/api/token/transfer", &models.TransferCommand{
		Caller: "not-an-address",
		To:     setup.owner,
		Amount: 5,
	})
	defer res.Body.Close()
	assert.Equal(http.StatusBadRequest, res.StatusCode)
}

func TestHttpRequestLifecycle(t *testing.T) {
	assert := assert.New(t)

	setup := startTestServer(t)
	creator := keypair.MustRandom().Address()
	recipient := keypair.MustRandom().Address()

	// fund both parties from the owner mint
	res := setup.post(t, "/api/token/transfer", &models.TransferCommand{Caller: setup.owner, To: creator, Amount: 100})
	assert.True(decodeResult(t, res).Ok)
	res = setup.post(t, "/api/token/transfer", &models.TransferCommand{Caller: setup.owner, To: recipient, Amount: 100})
	assert.True(decodeResult(t, res).Ok)

	res = setup.post(t, "/api/request/create", &models.CreateRequestCommand{
		Caller:           creator,
		Id:               1,
		Description:      "hosting invoice",
		RecipientAddress: recipient,
		Amount:           100,
		Expiry:           uint64(1 << 60),
	})
	assert.Equal(http.StatusOK, res.StatusCode)
	assert.True(decodeResult(t, res).Ok)

	res = setup.get(t, "/api/request/1")
	assert.Equal(http.StatusOK, res.StatusCode)
	request := &models.PaymentRequest{}
	assert.NoError(json.NewDecoder(res.Body).Decode(request))
	res.Body.Close()
	assert.Equal(models.StatusCreated, request.Status)
	assert.Equal(creator, request.CreatorAddress)

	// CurrentTime omitted: the adapter samples its own clock, still far
	// before the configured expiry
	res = setup.post(t, "/api/request/pay", &models.PayRequestCommand{Caller: recipient, Id: 1})
	assert.Equal(http.StatusOK, res.StatusCode)
	assert.True(decodeResult(t, res).Ok)

	// settling twice is a fatal abort
	res = setup.post(t, "/api/request/pay", &models.PayRequestCommand{Caller: recipient, Id: 1})
	res.Body.Close()
	assert.Equal(http.StatusBadRequest, res.StatusCode)

	res = setup.get(t, fmt.Sprintf("/api/request/%d", 1))
	request = &models.PaymentRequest{}
	assert.NoError(json.NewDecoder(res.Body).Decode(request))
	res.Body.Close()
	assert.Equal(models.StatusPaid, request.Status)
}

func TestHttpUnknownRequestIs404(t *testing.T) {
	assert := assert.New(t)

	setup := startTestServer(t)

	res := setup.get(t, "/api/request/99")
	defer res.Body.Close()
	assert.Equal(http.StatusNotFound, res.StatusCode)
}

func TestHttpReviseServiceFeeOwnerOnly(t *testing.T) {
	assert := assert.New(t)

	setup := startTestServer(t)

	res := setup.post(t, "/api/request/fee", &models.ReviseServiceFeeCommand{
		Caller:        keypair.MustRandom().Address(),
		NewServiceFee: 99,
	})
	res.Body.Close()
	assert.Equal(http.StatusBadRequest, res.StatusCode)

	res = setup.post(t, "/api/request/fee", &models.ReviseServiceFeeCommand{
		Caller:        setup.owner,
		NewServiceFee: 99,
	})
	res.Body.Close()
	assert.Equal(http.StatusOK, res.StatusCode)
}

func TestHttpStatisticsTrackTransfers(t *testing.T) {
	assert := assert.New(t)

	setup := startTestServer(t)
	to := keypair.MustRandom().Address()

	res := setup.post(t, "/api/token/transfer", &models.TransferCommand{Caller: setup.owner, To: to, Amount: 40})
	assert.True(decodeResult(t, res).Ok)

	res = setup.get(t, "/api/utility/statistics")
	defer res.Body.Close()
	assert.Equal(http.StatusOK, res.StatusCode)

	statistics := &models.VolumeStatistics{}
	assert.NoError(json.NewDecoder(res.Body).Decode(statistics))
	assert.EqualValues(1, statistics.Transfers)
	assert.EqualValues(40, statistics.Volume)
}
