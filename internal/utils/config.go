package utils

import (
	"time"

	"github.com/geobook/geobook/pkg/file"
)

// Config represents the structure of the configuration file.
type Config struct {
	Storage struct {
		Path string `yaml:"path"` // Path to the SQLite database file
	} `yaml:"storage"`

	Editor struct {
		MinPressSeconds int `yaml:"min_press_seconds"` // Minimum hold for the annotate gesture
	} `yaml:"editor"`

	Location struct {
		Enabled           bool          `yaml:"enabled"`         // Enable/disable the current-position follow in create mode
		SensorBased       bool          `yaml:"sensor_based"`    // Use GPS sensor instead of the geolocation API
		Interval          time.Duration `yaml:"interval"`        // Interval between position fixes (in seconds)
		MapsAPIKey        string        `yaml:"maps_api_key"`    // Google Maps API key (geolocation, reverse geocoding)
		GPSDeviceBaudRate int           `yaml:"gps_baud_rate"`   // The Baud rate for GPS sensor
		GPSDevicePort     string        `yaml:"gps_device_port"` // UNIX port where the GPS sensor is mounted
	} `yaml:"location_service"`

	MQTT struct {
		Enabled       bool   `yaml:"enabled"`        // Enable/disable the saved-signal broker bridge
		Broker        string `yaml:"broker"`         // MQTT broker address
		ClientID      string `yaml:"client_id"`      // MQTT client ID
		Topic         string `yaml:"topic"`          // Broker topic mirroring the saved-location signal
		QOS           int    `yaml:"qos"`            // MQTT QoS level for bridge messages
		CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate (empty for plain TCP)
	} `yaml:"mqtt"`

	Logging struct {
		Level string `yaml:"level"` // zerolog level name, defaults to info
	} `yaml:"logging"`
}

// LoadConfig loads the YAML configuration from the specified file.
// It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
