package location

import (
	"bufio"
	"errors"
	"strings"

	"github.com/adrianmo/go-nmea"
	"github.com/tarm/serial"
)

// DeviceSensorProvider retrieves position fixes from a GPS device
// connected via serial port.
type DeviceSensorProvider struct {
	port     string // Serial port to which the GPS device is connected
	baudRate int    // Baud rate for the serial communication
}

// NewDeviceSensorProvider creates a new instance of DeviceSensorProvider with the specified port and baud rate.
func NewDeviceSensorProvider(port string, baudRate int) *DeviceSensorProvider {
	return &DeviceSensorProvider{
		port:     port,
		baudRate: baudRate,
	}
}

// GetLocation reads GPS data from the device and returns the device's location.
func (d *DeviceSensorProvider) GetLocation() (Location, error) {
	c := &serial.Config{Name: d.port, Baud: d.baudRate}
	s, err := serial.OpenPort(c)
	if err != nil {
		return Location{}, err
	}
	defer s.Close()

	// Scan the NMEA stream for the first GGA fix
	scanner := bufio.NewScanner(s)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "$GPGGA") {
			sentence, err := nmea.Parse(line)
			if err != nil {
				return Location{}, err
			}

			if gga, ok := sentence.(nmea.GGA); ok {
				return Location{
					Latitude:  gga.Latitude,
					Longitude: gga.Longitude,
					Accuracy:  float64(gga.HDOP), // HDOP as a proxy for accuracy
				}, nil
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return Location{}, err
	}

	return Location{}, errors.New("no valid GPS data found")
}

// Close is a no-op; the serial port is opened per read.
func (d *DeviceSensorProvider) Close() error {
	return nil
}
