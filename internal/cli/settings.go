package cli

import (
	"fmt"

	"github.com/clarahq/clara/internal/models"
)

type SettingsCmd struct {
	NotifyHour   *int  `help:"Hour of the daily reminder (0-23)."`
	NotifyMinute *int  `help:"Minute of the daily reminder (0-59)."`
	Voice        *bool `help:"Enable/disable spoken nudges."`
	Stt          *bool `help:"Enable/disable speech-to-text for reasons."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	// Update settings if flags provided
	changed := false
	patch := models.SettingsPatch{}
	if c.NotifyHour != nil {
		if *c.NotifyHour < 0 || *c.NotifyHour > 23 {
			return fmt.Errorf("notify-hour must be between 0 and 23")
		}
		patch.NotifyHour = c.NotifyHour
		changed = true
	}
	if c.NotifyMinute != nil {
		if *c.NotifyMinute < 0 || *c.NotifyMinute > 59 {
			return fmt.Errorf("notify-minute must be between 0 and 59")
		}
		patch.NotifyMinute = c.NotifyMinute
		changed = true
	}
	if c.Voice != nil {
		patch.VoiceEnabled = c.Voice
		changed = true
	}
	if c.Stt != nil {
		patch.SttEnabled = c.Stt
		changed = true
	}

	if changed {
		if err := ctx.Store.UpdateSettings(patch); err != nil {
			return err
		}
		fmt.Println("Settings updated.")
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Println("Current settings:")
	fmt.Printf("  reminder: %02d:%02d\n", settings.NotifyHour, settings.NotifyMinute)
	fmt.Printf("  voice_enabled: %t\n", settings.VoiceEnabled)
	fmt.Printf("  stt_enabled: %t\n", settings.SttEnabled)
	return nil
}
