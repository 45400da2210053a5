package device

// Device represents a controllable smart home device
type Device struct {
	ID     string         `json:"id"`             // Unique stable identifier (e.g. "light-1")
	Name   string         `json:"name"`           // User-friendly name
	Type   string         `json:"type"`           // Device type (light, thermostat, lock, camera)
	Room   string         `json:"room"`           // Room the device belongs to
	Status string         `json:"status"`         // Current status; legal values depend on Type
	Data   map[string]any `json:"data,omitempty"` // Type-specific attributes (temperature, mode, ...)
}

// Clone returns a deep copy of the device. The Data map is copied so
// callers can hold the result without observing later registry mutations.
func (d Device) Clone() Device {
	out := d
	if d.Data != nil {
		out.Data = make(map[string]any, len(d.Data))
		for k, v := range d.Data {
			out.Data[k] = v
		}
	}
	return out
}

// Device type constants
const (
	TypeLight      = "light"
	TypeThermostat = "thermostat"
	TypeLock       = "lock"
	TypeCamera     = "camera"
)

// Status constants
const (
	StatusOn       = "on"
	StatusOff      = "off"
	StatusLocked   = "locked"
	StatusUnlocked = "unlocked"
)
