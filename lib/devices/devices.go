// Package devices is a table of screen presets for emulation.
package devices

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-rod/htmlshot/lib/proto"
	"github.com/tidwall/gjson"
)

// ErrDeviceNotExists err
var ErrDeviceNotExists = errors.New("device not exists")

//go:embed devices.json
var table string

var list = gjson.Parse(table).Array()

// Device preset
type Device struct {
	Name      string
	Title     string
	UserAgent string

	// DeviceScaleFactor of the screen
	DeviceScaleFactor float64

	Mobile bool
	Touch  bool

	vertical   size
	horizontal size
}

type size struct {
	width  int
	height int
}

// Get a device by its name, such as "iphone-x"
func Get(name string) (Device, error) {
	for _, d := range list {
		if d.Get("name").String() == name {
			return parse(d), nil
		}
	}
	return Device{}, fmt.Errorf("%w: %s", ErrDeviceNotExists, name)
}

// Names of all devices
func Names() []string {
	names := make([]string, 0, len(list))
	for _, d := range list {
		names = append(names, d.Get("name").String())
	}
	return names
}

// Size of the screen in CSS pixels
func (d Device) Size(landscape bool) (width, height int) {
	if landscape {
		return d.horizontal.width, d.horizontal.height
	}
	return d.vertical.width, d.vertical.height
}

// Metrics for Emulation.setDeviceMetricsOverride
func (d Device) Metrics(landscape bool) *proto.EmulationSetDeviceMetricsOverride {
	orientation := &proto.EmulationScreenOrientation{
		Angle: 0,
		Type:  proto.EmulationScreenOrientationTypePortraitPrimary,
	}
	if landscape {
		orientation = &proto.EmulationScreenOrientation{
			Angle: 90,
			Type:  proto.EmulationScreenOrientationTypeLandscapePrimary,
		}
	}

	w, h := d.Size(landscape)

	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             w,
		Height:            h,
		DeviceScaleFactor: d.DeviceScaleFactor,
		Mobile:            d.Mobile,
		ScreenOrientation: orientation,
	}
}

// TouchEmulation for Emulation.setTouchEmulationEnabled
func (d Device) TouchEmulation() *proto.EmulationSetTouchEmulationEnabled {
	if !d.Touch {
		return &proto.EmulationSetTouchEmulationEnabled{Enabled: false}
	}
	return &proto.EmulationSetTouchEmulationEnabled{
		Enabled:        true,
		MaxTouchPoints: 5,
	}
}

func parse(d gjson.Result) Device {
	dev := Device{
		Name:              d.Get("name").String(),
		Title:             d.Get("title").String(),
		UserAgent:         d.Get("user-agent").String(),
		DeviceScaleFactor: d.Get("screen.device-pixel-ratio").Float(),
		vertical: size{
			width:  int(d.Get("screen.vertical.width").Int()),
			height: int(d.Get("screen.vertical.height").Int()),
		},
		horizontal: size{
			width:  int(d.Get("screen.horizontal.width").Int()),
			height: int(d.Get("screen.horizontal.height").Int()),
		},
	}

	for _, c := range d.Get("capabilities").Array() {
		switch c.String() {
		case "mobile":
			dev.Mobile = true
		case "touch":
			dev.Touch = true
		}
	}
	return dev
}
