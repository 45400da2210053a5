package device

// DefaultCatalog returns the fixed device catalog the registry is seeded
// with. Devices are created once at startup; there is no runtime
// create/delete.
func DefaultCatalog() []Device {
	return []Device{
		{
			ID:     "light-1",
			Name:   "Living Room Main Light",
			Type:   TypeLight,
			Status: StatusOff,
			Room:   "Living Room",
		},
		{
			ID:     "light-2",
			Name:   "Kitchen Ceiling Light",
			Type:   TypeLight,
			Status: StatusOff,
			Room:   "Kitchen",
		},
		{
			ID:     "light-3",
			Name:   "Bedroom Lamp",
			Type:   TypeLight,
			Status: StatusOff,
			Room:   "Bedroom",
		},
		{
			ID:     "light-4",
			Name:   "Bathroom Light",
			Type:   TypeLight,
			Status: StatusOff,
			Room:   "Bathroom",
		},
		{
			ID:     "thermostat-1",
			Name:   "Living Room Thermostat",
			Type:   TypeThermostat,
			Status: StatusOn,
			Room:   "Living Room",
			Data:   map[string]any{"temperature": 22, "mode": "cooling"},
		},
		{
			ID:     "thermostat-2",
			Name:   "Bedroom Thermostat",
			Type:   TypeThermostat,
			Status: StatusOn,
			Room:   "Bedroom",
			Data:   map[string]any{"temperature": 21, "mode": "cooling"},
		},
		{
			ID:     "lock-1",
			Name:   "Front Door",
			Type:   TypeLock,
			Status: StatusLocked,
			Room:   "Entrance",
		},
		{
			ID:     "lock-2",
			Name:   "Back Door",
			Type:   TypeLock,
			Status: StatusLocked,
			Room:   "Backyard",
		},
		{
			ID:     "camera-1",
			Name:   "Front Door Camera",
			Type:   TypeCamera,
			Status: StatusOn,
			Room:   "Entrance",
		},
	}
}
