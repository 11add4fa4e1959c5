// Package ble discovers the Actuel fixture and provides its command transport.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"tinygo.org/x/bluetooth"
)

var (
	// ErrNoDevice means no advertising device matched the name filter
	// within the scan window.
	ErrNoDevice = errors.New("no matching device found")

	// ErrCharacteristicNotFound means service discovery did not expose
	// the expected command characteristic.
	ErrCharacteristicNotFound = errors.New("command characteristic not found")
)

// Fixture holds the connection to the one discovered light.
// Established once at startup, never reconnected.
type Fixture struct {
	device  bluetooth.Device
	command bluetooth.DeviceCharacteristic
}

// Connect enables the default adapter, scans for a device whose advertised
// name contains nameFilter and connects to the first match. Scanning gives
// up after scanWindow.
func Connect(ctx context.Context, nameFilter string, scanWindow time.Duration) (*Fixture, error) {
	adapter := bluetooth.DefaultAdapter

	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	log.Info().Str("filter", nameFilter).Dur("window", scanWindow).Msg("Scanning for fixture")

	found := make(chan bluetooth.ScanResult, 1)
	scanErr := make(chan error, 1)

	go func() {
		err := adapter.Scan(func(a *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !strings.Contains(result.LocalName(), nameFilter) {
				return
			}
			select {
			case found <- result:
			default:
			}
			a.StopScan()
		})
		if err != nil {
			scanErr <- err
		}
	}()

	var result bluetooth.ScanResult
	select {
	case result = <-found:
	case err := <-scanErr:
		return nil, fmt.Errorf("scan failed: %w", err)
	case <-time.After(scanWindow):
		adapter.StopScan()
		return nil, fmt.Errorf("%w: no %q device within %s", ErrNoDevice, nameFilter, scanWindow)
	case <-ctx.Done():
		adapter.StopScan()
		return nil, ctx.Err()
	}

	log.Info().
		Str("address", result.Address.String()).
		Str("name", result.LocalName()).
		Msg("Found fixture")

	device, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	log.Info().Str("address", result.Address.String()).Msg("Connected to fixture")

	return &Fixture{device: device}, nil
}

// ResolveCommand discovers services and locates the writable command
// characteristic by its 16-bit identifier. Resolved once, immutable after.
func (f *Fixture) ResolveCommand(charID uint16) error {
	target := bluetooth.New16BitUUID(charID)

	services, err := f.device.DiscoverServices(nil)
	if err != nil {
		return fmt.Errorf("service discovery failed: %w", err)
	}

	for _, svc := range services {
		chars, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			continue
		}
		for _, char := range chars {
			if char.UUID() == target {
				f.command = char
				log.Info().Str("uuid", target.String()).Msg("Resolved command characteristic")
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrCharacteristicNotFound, target.String())
}

// WriteFrame sends one frame to the command characteristic without response.
// Fixture implements FrameWriter for the command channel.
func (f *Fixture) WriteFrame(frame []byte) error {
	_, err := f.command.WriteWithoutResponse(frame)
	return err
}

// Disconnect drops the connection
func (f *Fixture) Disconnect() error {
	return f.device.Disconnect()
}
