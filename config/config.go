package config

import (
	"os"
	"strconv"

	"github.com/go-errors/errors"
	"github.com/tkanos/gonfig"

	"requestpay.com/payment-contract/log"
)

type jsonConfiguration struct {
	Port              int
	DatabasePath      string
	OwnerAddress      string
	TokenName         string
	TokenSymbol       string
	TotalSupply       uint64
	ServiceFee        uint64
	EventWebhookUrl   string
	JaegerUrl         string
	JaegerServiceName string
}

type TokenConfig struct {
	Name        string
	Symbol      string
	TotalSupply uint64
	ServiceFee  uint64
}

type JaegerConfig struct {
	Url         string
	ServiceName string
}

type Configuration struct {
	Port            int
	DatabasePath    string
	OwnerAddress    string
	EventWebhookUrl string
	JaegerConfig    *JaegerConfig
	TokenConfig     TokenConfig
}

const defaultPort = 28090
const defaultDatabasePath = "./contract.db"
const defaultTokenName = "Payment Request Token"
const defaultTokenSymbol = "PRT"
const defaultTotalSupply = 100000000
const defaultServiceFee = 10

func DefaultCfg() *Configuration {
	return &Configuration{
		Port:         defaultPort,
		DatabasePath: defaultDatabasePath,
		TokenConfig: TokenConfig{
			Name:        defaultTokenName,
			Symbol:      defaultTokenSymbol,
			TotalSupply: defaultTotalSupply,
			ServiceFee:  defaultServiceFee,
		},
	}
}

func ParseConfiguration(configFile string) (*Configuration, error) {

	rawConfig := jsonConfiguration{}

	err := gonfig.GetConf(configFile, &rawConfig)
	if err != nil {
		log.Error("Read json config error: ", err)
		return nil, err
	}

	instance := &Configuration{
		Port:            rawConfig.Port,
		DatabasePath:    rawConfig.DatabasePath,
		OwnerAddress:    rawConfig.OwnerAddress,
		EventWebhookUrl: rawConfig.EventWebhookUrl,
		TokenConfig: TokenConfig{
			Name:        rawConfig.TokenName,
			Symbol:      rawConfig.TokenSymbol,
			TotalSupply: rawConfig.TotalSupply,
			ServiceFee:  rawConfig.ServiceFee,
		},
	}

	if rawConfig.JaegerUrl != "" {
		instance.JaegerConfig = &JaegerConfig{
			Url:         rawConfig.JaegerUrl,
			ServiceName: rawConfig.JaegerServiceName,
		}
	}

	defCfg := DefaultCfg()
	if instance.Port == 0 {
		instance.Port = defCfg.Port
	}
	if instance.DatabasePath == "" {
		instance.DatabasePath = defCfg.DatabasePath
	}
	if instance.TokenConfig.Name == "" {
		instance.TokenConfig.Name = defCfg.TokenConfig.Name
	}
	if instance.TokenConfig.Symbol == "" {
		instance.TokenConfig.Symbol = defCfg.TokenConfig.Symbol
	}
	if instance.TokenConfig.TotalSupply == 0 {
		instance.TokenConfig.TotalSupply = defCfg.TokenConfig.TotalSupply
	}
	if instance.TokenConfig.ServiceFee == 0 {
		instance.TokenConfig.ServiceFee = defCfg.TokenConfig.ServiceFee
	}
	return instance, nil
}

func ParseConfig() (*Configuration, error) {
	configPath := "config.json"
	if len(os.Args) == 2 {
		configPath = os.Args[1]
	}
	config, err := ParseConfiguration(configPath)

	if err != nil {
		log.Errorf("Error reading configuration file (%s), trying cmdline params: %v", configPath, err)
		if len(os.Args) < 3 {
			return nil, errors.New("reading configuration file failed, and no command line parameters supplied")
		}
		config = DefaultCfg()
		config.OwnerAddress = os.Args[1]
		config.Port, err = strconv.Atoi(os.Args[2])
		if err != nil {
			return nil, errors.Errorf("port supplied, but couldn't be parsed: %v", err)
		}
		return config, nil
	}
	return config, nil
}
