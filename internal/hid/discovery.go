package hid

import (
	"github.com/karalabe/hid"
)

// HID usage identifying a touchpad on the digitizer page
const (
	UsagePageDigitizer uint16 = 0x0D
	UsageTouchPad      uint16 = 0x05
)

// DeviceInfo contains information about a discovered HID device
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Path         string
	Manufacturer string
	Product      string
	SerialNumber string
	UsagePage    uint16
	Usage        uint16
}

// IsTouchpad reports whether the device describes itself as a touchpad
func (d DeviceInfo) IsTouchpad() bool {
	return d.UsagePage == UsagePageDigitizer && d.Usage == UsageTouchPad
}

// ListDevices returns a list of all available HID devices
func ListDevices() ([]DeviceInfo, error) {
	return convert(hid.Enumerate(0, 0)), nil
}

// ListTouchpads returns the HID devices that report the touchpad usage
func ListTouchpads() ([]DeviceInfo, error) {
	all, err := ListDevices()
	if err != nil {
		return nil, err
	}
	return FilterTouchpads(all), nil
}

// FilterTouchpads keeps the touchpads, dropping duplicate interfaces of the
// same vendor and product
func FilterTouchpads(devices []DeviceInfo) []DeviceInfo {
	type key struct{ vendor, product uint16 }
	seen := make(map[key]bool)

	var out []DeviceInfo
	for _, d := range devices {
		if !d.IsTouchpad() {
			continue
		}
		k := key{d.VendorID, d.ProductID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	return out
}

// FindDevice searches for a device matching the given vendor and product IDs.
// It returns nil when no such device is connected.
func FindDevice(vendorID, productID uint16) (*DeviceInfo, error) {
	return preferTouchpad(convert(hid.Enumerate(vendorID, productID))), nil
}

// preferTouchpad picks the touchpad interface of a composite device,
// falling back to its first interface
func preferTouchpad(devices []DeviceInfo) *DeviceInfo {
	if len(devices) == 0 {
		return nil
	}
	for i := range devices {
		if devices[i].IsTouchpad() {
			return &devices[i]
		}
	}
	return &devices[0]
}

func convert(devices []hid.DeviceInfo) []DeviceInfo {
	result := make([]DeviceInfo, len(devices))
	for i, d := range devices {
		result[i] = DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Path:         d.Path,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
			SerialNumber: d.Serial,
			UsagePage:    d.UsagePage,
			Usage:        d.Usage,
		}
	}
	return result
}
