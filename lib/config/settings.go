package config

import (
	"os"
	"time"

	"dario.cat/mergo"

	"studyreport/lib/configutil"
)

// Settings are the site tunables: selectors don't live here, but every
// timeout, settle delay and endpoint does, so a broken run can be poked at
// without a rebuild. Loaded from studyreport.json5 (+ .local override),
// defaults used when no file exists.
type Settings struct {
	// ElementTimeoutSecs bounds every single wait-for-element operation.
	ElementTimeoutSecs int `json:"element_timeout_secs"`
	// SettleDelaySecs approximates "client-side rendering finished" on
	// pages with no real readiness signal. Known weak point, kept to match
	// observed site behavior.
	SettleDelaySecs     int    `json:"settle_delay_secs"`
	StaleRetryDelaySecs int    `json:"stale_retry_delay_secs"`
	ScreenshotDir       string `json:"screenshot_dir"`

	IXL         IXLSettings         `json:"ixl"`
	MathAcademy MathAcademySettings `json:"mathacademy"`
	SMTP        SMTPSettings        `json:"smtp"`
}

type IXLSettings struct {
	AnalyticsURL    string `json:"analytics_url"`
	TroubleSpotsURL string `json:"trouble_spots_url"`
	Subaccount      string `json:"subaccount"`
	DateRangeLabel  string `json:"date_range_label"`
}

type MathAcademySettings struct {
	LoginURL        string `json:"login_url"`
	BaseActivityURL string `json:"base_activity_url"`
}

type SMTPSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func DefaultSettings() Settings {
	return Settings{
		ElementTimeoutSecs:  10,
		SettleDelaySecs:     5,
		StaleRetryDelaySecs: 2,
		ScreenshotDir:       ".",
		IXL: IXLSettings{
			AnalyticsURL:    "https://www.ixl.com/analytics/student-usage#",
			TroubleSpotsURL: "https://www.ixl.com/analytics/trouble-spots",
			Subaccount:      "Parent",
			DateRangeLabel:  "Last 7 days",
		},
		MathAcademy: MathAcademySettings{
			LoginURL:        "https://www.mathacademy.com/login",
			BaseActivityURL: "https://www.mathacademy.com/students",
		},
		SMTP: SMTPSettings{
			Host: "smtp.gmail.com",
			Port: 465,
		},
	}
}

// LoadSettings reads studyreport.json5 recursively up from the cwd and
// backfills unset fields with defaults. A missing file just means
// defaults.
func LoadSettings() (Settings, error) {
	settings, err := configutil.ReadRecursively[Settings]("studyreport.json5")
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	err = mergo.Merge(&settings, DefaultSettings())
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) ElementTimeout() time.Duration {
	return time.Duration(s.ElementTimeoutSecs) * time.Second
}

func (s Settings) SettleDelay() time.Duration {
	return time.Duration(s.SettleDelaySecs) * time.Second
}

func (s Settings) StaleRetryDelay() time.Duration {
	return time.Duration(s.StaleRetryDelaySecs) * time.Second
}
