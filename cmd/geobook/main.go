package main

import (
	"bufio"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/geobook/geobook/internal/console"
	"github.com/geobook/geobook/internal/screens"
	"github.com/geobook/geobook/internal/signals"
	"github.com/geobook/geobook/internal/store"
	"github.com/geobook/geobook/internal/utils"
	"github.com/geobook/geobook/pkg/file"
	"github.com/geobook/geobook/pkg/geocoder"
	"github.com/geobook/geobook/pkg/location"
	"github.com/geobook/geobook/pkg/mqtt"
	"github.com/geobook/geobook/pkg/navigation"
)

func main() {
	// Structured logging with JSON output; the console owns stdout, the
	// log goes to stderr
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	fileClient := file.NewFileService()

	config, err := utils.LoadConfig("configs/config.yaml", fileClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(config.Logging.Level); err == nil && config.Logging.Level != "" {
		logger = logger.Level(level)
	}

	if exists, err := fileClient.IsFileExists(config.Storage.Path); err != nil {
		logger.Fatal().Err(err).Str("path", config.Storage.Path).Msg("Failed to check database path")
	} else if !exists {
		logger.Info().Str("path", config.Storage.Path).Msg("No database found, creating a new one")
	}

	recordStore, err := store.NewGormRecordStore(config.Storage.Path, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer recordStore.Close()

	bus := signals.NewSignalBus(logger)

	// Optional broker bridge: other devices publishing on the same topic
	// refresh this list too
	if config.MQTT.Enabled {
		clientID := config.MQTT.ClientID + "-" + uuid.New().String()
		mqttClient := mqtt.NewMqttService(fileClient)
		if err := mqttClient.Initialize(config.MQTT.Broker, clientID, config.MQTT.CACertificate); err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize MQTT connection")
		}
		defer mqttClient.Disconnect(250)

		bridge := signals.NewMQTTBridge(bus, mqttClient, config.MQTT.Topic, config.MQTT.QOS, clientID, logger)
		if err := bridge.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start MQTT signal bridge")
		}
		defer bridge.Stop()
	}

	// Background workers for the reverse-geocode hand-off
	pool := utils.NewWorkerPool(2)
	defer pool.Shutdown()

	monitor := buildMonitor(config, logger)

	var resolver geocoder.Resolver
	if config.Location.MapsAPIKey != "" {
		g, err := geocoder.NewGoogleGeocoder(config.Location.MapsAPIKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create geocoder")
		}
		resolver = g
	}

	launcher := navigation.NewSystemLauncher(logger)

	minPress := 3 * time.Second
	if config.Editor.MinPressSeconds > 0 {
		minPress = time.Duration(config.Editor.MinPressSeconds) * time.Second
	}

	in := bufio.NewReader(os.Stdin)
	mapWidget := console.NewMapWidget(os.Stdout, minPress)
	dialogs := console.NewDialogs(os.Stdout, in)
	listView := console.NewListView(os.Stdout)
	navigator := screens.NewNavigator(logger)
	cons := console.New(in, os.Stdout, navigator, mapWidget, logger)

	openEditor := func(id *uuid.UUID) {
		mapWidget.Reset()
		editor := screens.NewEditorScreen(id, recordStore, bus, mapWidget, monitor,
			resolver, launcher, dialogs, pool, func() {
				if err := navigator.Pop(); err != nil {
					logger.Error().Err(err).Msg("Failed to close editor")
				}
				cons.EditorClosed()
			}, logger)
		navigator.Push(editor)
		cons.EditorOpened(editor)
	}

	list := screens.NewListScreen(recordStore, bus, listView, openEditor, logger)
	listView.Bind(list)
	cons.BindList(list)

	navigator.Push(list)
	cons.Run()

	logger.Info().Msg("Shutting down")
}

// buildMonitor assembles the position-fix source selected by the
// configuration, or nil when live follow is disabled.
func buildMonitor(config *utils.Config, logger zerolog.Logger) *location.Monitor {
	if !config.Location.Enabled {
		return nil
	}

	var provider location.Provider
	if config.Location.SensorBased {
		provider = location.NewDeviceSensorProvider(config.Location.GPSDevicePort, config.Location.GPSDeviceBaudRate)
	} else {
		p, err := location.NewGoogleGeolocationProvider(config.Location.MapsAPIKey)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create geolocation provider")
			return nil
		}
		provider = p
	}

	interval := time.Duration(config.Location.Interval) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return location.NewMonitor(provider, interval, logger)
}
