package models

// Settings is the singleton application settings row (ID is always 1).
type Settings struct {
	ID           int  `json:"id"`
	NotifyHour   int  `json:"notify_hour"`
	NotifyMinute int  `json:"notify_min"`
	VoiceEnabled bool `json:"voice_enabled"`
	SttEnabled   bool `json:"stt_enabled"`
}

// SettingsPatch is a partial settings update. Nil fields keep their
// previous values.
type SettingsPatch struct {
	NotifyHour   *int  `json:"notify_hour,omitempty"`
	NotifyMinute *int  `json:"notify_min,omitempty"`
	VoiceEnabled *bool `json:"voice_enabled,omitempty"`
	SttEnabled   *bool `json:"stt_enabled,omitempty"`
}

// Apply merges the patch onto s, returning the merged settings.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.NotifyHour != nil {
		s.NotifyHour = *p.NotifyHour
	}
	if p.NotifyMinute != nil {
		s.NotifyMinute = *p.NotifyMinute
	}
	if p.VoiceEnabled != nil {
		s.VoiceEnabled = *p.VoiceEnabled
	}
	if p.SttEnabled != nil {
		s.SttEnabled = *p.SttEnabled
	}
	return s
}
