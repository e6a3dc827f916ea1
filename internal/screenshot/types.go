package screenshot

import "fmt"

// DeviceType is the closed set of screenshot device classes.
type DeviceType int

const (
	Phone DeviceType = iota
	Tablet
)

// DeviceOrder is the default scan order: phone before tablet.
var DeviceOrder = []DeviceType{Phone, Tablet}

func (d DeviceType) String() string {
	switch d {
	case Phone:
		return "phone"
	case Tablet:
		return "tablet"
	default:
		return fmt.Sprintf("device(%d)", int(d))
	}
}

// ParseDeviceType resolves a device directory / CLI name.
func ParseDeviceType(s string) (DeviceType, error) {
	switch s {
	case "phone":
		return Phone, nil
	case "tablet":
		return Tablet, nil
	default:
		return 0, fmt.Errorf("unknown device type %q", s)
	}
}

// Size is an image width/height in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Canonical store-upload dimensions per device class. Every resize
// converges final screenshots to these.
var targetSizes = map[DeviceType]Size{
	Phone:  {Width: 1242, Height: 2688},
	Tablet: {Width: 2048, Height: 2732},
}

// TargetSize returns the canonical upload size for d.
func TargetSize(d DeviceType) Size {
	return targetSizes[d]
}

// aspectHints maps device class to the ratio enum the translation
// backend accepts. The backend's enum is coarser than real screenshot
// ratios, so hints come from this fixed table, not from measuring the
// image.
var aspectHints = map[DeviceType]string{
	Phone:  "9:16",
	Tablet: "3:4",
}

// AspectHint returns the backend aspect-ratio hint for d.
func AspectHint(d DeviceType) string {
	return aspectHints[d]
}

// Info describes one source screenshot file found on disk.
type Info struct {
	Device   DeviceType
	Index    int
	Filename string
	Path     string
}
