package constants

// Defaults seeded into the settings singleton on first initialization.
const (
	DefaultNotifyHour   = 20
	DefaultNotifyMinute = 0
	DefaultVoiceEnabled = true
	DefaultSttEnabled   = true
)
