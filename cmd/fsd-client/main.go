package main

import (
	"errors"
	"flag"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/base"
	"github.com/half-nothing/simple-fsd-client/internal/database"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/recorder"
	"github.com/half-nothing/simple-fsd-client/internal/http_server"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
)

func recoverFromError() {
	if r := recover(); r != nil {
		fmt.Printf("It looks like there are some serious errors, the details are as follows: %v", r)
	}
}

func main() {
	flag.Parse()

	defer recoverFromError()

	logger := base.NewLogger()
	logger.Init(*global.DebugMode)

	logger.InfoF("Simple-Fsd-Client %s initializing...", global.AppVersion)

	cleaner := base.NewCleaner(logger)
	cleaner.Init()
	defer cleaner.Clean()

	configManager := base.NewManager(logger, *global.ConfigFilePath)
	cfg, result := configManager.Load()
	if result.IsFail() {
		if errors.Is(result.Error(), base.ErrConfigCreated) {
			logger.Warn(result.Error().Error())
			return
		}
		if result.OriginErr() != nil {
			logger.FatalF("%v, details: %v", result.Error(), result.OriginErr())
		} else {
			logger.Fatal(result.Error().Error())
		}
		return
	}

	severity := fsd_client.SeverityInfo
	if *global.DebugMode {
		severity = fsd_client.SeverityDebug
	}
	fsd_client.SetNetworkLogHandler(severity, fsd_client.LoggerHandler(logger))

	var databaseOperation *operation.DatabaseOperations
	var trafficOperation operation.TrafficOperationInterface
	if cfg.Recorder.Enabled && cfg.Recorder.RecorderType == config.RecorderDatabase {
		shutdownCallback, operations, err := database.ConnectDatabase(logger, cfg.Recorder.Database, *global.DebugMode)
		if err != nil {
			logger.FatalF("Error occurred while initializing operation, details: %v", err)
			return
		}
		cleaner.Add(shutdownCallback)
		databaseOperation = operations
		trafficOperation = operations.TrafficOperation()
	}

	trafficRecorder, err := recorder.NewRecorder(logger, cfg.Recorder, trafficOperation)
	if err != nil {
		logger.FatalF("Error occurred while initializing traffic recorder, details: %v", err)
		return
	}

	options := fsd_client.OptionsFromConfig(logger, cfg.Network)
	if trafficRecorder != nil {
		cleaner.Add(trafficRecorder)
		options.Recorder = trafficRecorder
	}

	client := fsd_client.NewClient(options)
	if err := createSession(client, cfg); err != nil {
		logger.FatalF("Error occurred while creating session, details: %v", err)
		return
	}

	driver, err := startDriver(logger, client, cfg.Network)
	if err != nil {
		logger.FatalF("Error occurred while starting processing loop, details: %v", err)
		return
	}
	cleaner.Add(driver)
	cleaner.Add(newClientShutdown(logger, client, cfg.Network.LogoffDuration))

	reporter := newPositionReporter(logger, client, cfg.Login)
	installHandlers(logger, client, reporter, cleaner)
	cleaner.Add(reporter)

	applicationContent := interfaces.NewApplicationContent(configManager, cleaner, logger, databaseOperation)
	if cfg.HttpServer.Enabled {
		go http_server.StartHttpServer(applicationContent, client)
	}

	if ok, err := client.Connect(); err != nil {
		logger.FatalF("Error occurred while connecting, details: %v", err)
		return
	} else if !ok {
		logger.ErrorF("Fail to resolve %s, error code %s", cfg.Network.Address, client.NetworkErrorCode())
		return
	}
	logger.InfoF("Connecting to %s as %s", cfg.Network.Address, client.Callsign())

	<-cleaner.Done()
}

func createSession(client *fsd_client.Client, cfg *config.Config) error {
	if err := client.CreateSession(cfg.Client.SessionInfo()); err != nil {
		return err
	}
	login := cfg.Login
	network := cfg.Network
	if login.ClientType == fsd.ClientAtc {
		return client.SetAtcLoginInfo(network.Host, network.Port, login.Cid, login.Password, login.Atc())
	}
	return client.SetPilotLoginInfo(network.Host, network.Port, login.Cid, login.Password, login.Pilot())
}
