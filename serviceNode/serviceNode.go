package serviceNode

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/stellar/go/keypair"

	"requestpay.com/payment-contract/common"
	"requestpay.com/payment-contract/config"
	"requestpay.com/payment-contract/contract"
	"requestpay.com/payment-contract/controllers"
	"requestpay.com/payment-contract/event"
	"requestpay.com/payment-contract/log"
	"requestpay.com/payment-contract/state"
	"requestpay.com/payment-contract/state/sqlite"
	"requestpay.com/payment-contract/stats"
)

// StartServiceNode opens the contract state, deploys on first start, and
// serves the contract operations over HTTP. The HTTP layer is the host
// execution environment: it authenticates nothing beyond address shape and
// serializes nothing itself; the store's batch apply keeps each invocation
// atomic.
func StartServiceNode(cfg *config.Configuration) (*http.Server, error) {
	tracer := common.CreateTracer("requestpay/serviceNode")

	_, span := tracer.Start(context.Background(), "serviceNode-initialization")
	defer span.End()

	store, err := openStore(cfg.DatabasePath)
	if err != nil {
		glog.Errorf("Error opening contract state store: %s", err)
		return nil, err
	}

	observer := stats.NewVolumeObserver()
	sink := event.MultiSink{event.NewLogSink(), observer}
	if cfg.EventWebhookUrl != "" {
		sink = append(sink, event.NewWebhookSink(cfg.EventWebhookUrl))
	}

	contractInstance, err := deployOrOpen(store, sink, cfg)
	if err != nil {
		glog.Errorf("Error initializing contract: %s", err)
		return nil, err
	}

	owner, err := contractInstance.Owner()
	if err != nil {
		return nil, err
	}
	glog.Infof("Contract ready, owner %s", owner)

	controller := controllers.NewContractController(contractInstance, observer)

	handler := handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(log.Writer(), NewRouter(controller)))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	server.SetKeepAlivesEnabled(false)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Warningf("Error starting service node: %s", err)
		}
	}()

	return server, nil
}

// NewRouter maps every public contract operation onto its route.
func NewRouter(controller *controllers.ContractController) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/token/info", controller.HttpGetTokenInfo).Methods("GET")
	router.HandleFunc("/api/token/balance/{address}", controller.HttpGetBalance).Methods("GET")
	router.HandleFunc("/api/token/allowance/{owner}/{spender}", controller.HttpGetAllowance).Methods("GET")
	router.HandleFunc("/api/token/transfer", controller.HttpTransferTo).Methods("POST")
	router.HandleFunc("/api/token/transferFrom", controller.HttpTransferFrom).Methods("POST")
	router.HandleFunc("/api/token/approve", controller.HttpApprove).Methods("POST")
	router.HandleFunc("/api/request/create", controller.HttpCreateRequest).Methods("POST")
	router.HandleFunc("/api/request/pay", controller.HttpPayRequest).Methods("POST")
	router.HandleFunc("/api/request/cancel", controller.HttpCancelRequest).Methods("POST")
	router.HandleFunc("/api/request/fee", controller.HttpReviseServiceFee).Methods("POST")
	router.HandleFunc("/api/request/{id}", controller.HttpGetPaymentRequest).Methods("GET")
	router.HandleFunc("/api/utility/statistics", controller.HttpGetStatistics).Methods("GET")
	router.HandleFunc("/api/utility/activity/{address}", controller.HttpGetAddressActivity).Methods("GET")

	return router
}

func openStore(databasePath string) (state.Store, error) {
	if databasePath == ":memory:" {
		return state.NewMemoryStore(), nil
	}
	return sqlite.New(databasePath)
}

func deployOrOpen(store state.Store, sink event.Sink, cfg *config.Configuration) (*contract.Contract, error) {
	deployed, err := contract.IsDeployed(store)
	if err != nil {
		return nil, err
	}
	if deployed {
		return contract.Open(store, sink)
	}

	owner := cfg.OwnerAddress
	if owner == "" {
		pair, err := keypair.Random()
		if err != nil {
			return nil, err
		}
		owner = pair.Address()
		// Dev convenience only; a configured deployment supplies OwnerAddress.
		glog.Infof("No owner address configured, generated account %s (seed %s)", pair.Address(), pair.Seed())
	}

	tokenCfg := cfg.TokenConfig
	glog.Infof("Deploying contract %s (%s), supply %d, fee %d, owner %s",
		tokenCfg.Name, tokenCfg.Symbol, tokenCfg.TotalSupply, tokenCfg.ServiceFee, owner)

	return contract.Deploy(store, sink, owner, tokenCfg.TotalSupply, tokenCfg.Name, tokenCfg.Symbol, tokenCfg.ServiceFee)
}
