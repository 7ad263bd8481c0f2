package config

type CalendarConfig interface {
	GetGoogleCredentialsFile() string
	GetCalendarID() string
}

type Calendar struct {
	GoogleCredentialsFile string `yaml:"google_credentials" env:"GOOGLE_CREDS"`
	CalendarID            string `yaml:"calendar_id" env:"CALENDAR_ID"`
}

var _ CalendarConfig = Calendar{}

func (c *Calendar) applyDefaults() {
	if c.CalendarID == "" {
		c.CalendarID = "primary"
	}
}

func (c Calendar) GetGoogleCredentialsFile() string {
	return c.GoogleCredentialsFile
}

func (c Calendar) GetCalendarID() string {
	return c.CalendarID
}
