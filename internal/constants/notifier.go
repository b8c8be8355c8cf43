package constants

const (
	// TrayAppIdentifier is the config directory name used by the tray app.
	TrayAppIdentifier = "clara-tray"

	// NotifierLockfileName holds "port|pid|secret" for the running tray.
	NotifierLockfileName = "clara-tray.lock"

	// NotificationDurationMs is how long a nudge stays on screen.
	NotificationDurationMs uint32 = 8000
)
