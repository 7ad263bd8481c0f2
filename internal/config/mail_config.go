package config

type MailConfig interface {
	GetSmtpHost() string
	GetSmtpPort() int
	GetSmtpAccount() string
	GetSmtpPassword() string
	GetMaintainer() string
	GetTwilioAccountSID() string
	GetTwilioAuthToken() string
	GetTwilioNumber() string
	GetTwilioTarget() string
}

type Mail struct {
	SmtpHost     string `yaml:"smtp_host" env:"MAIL_SERVER"`
	SmtpPort     int    `yaml:"smtp_port" env:"MAIL_PORT"`
	SmtpAccount  string `yaml:"smtp_account" env:"MAIL_ACCOUNT"`
	SmtpPassword string `yaml:"smtp_password" env:"MAIL_PASS"`
	Maintainer   string `yaml:"maintainer" env:"MAINTAINER"`

	TwilioAccountSID string `yaml:"twilio_account_sid" env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `yaml:"twilio_auth_token" env:"TWILIO_AUTH_TOKEN"`
	TwilioNumber     string `yaml:"twilio_number" env:"TWILIO_NUMBER"`
	TwilioTarget     string `yaml:"twilio_target" env:"TWILIO_TARGET"`
}

var _ MailConfig = Mail{}

func (m *Mail) applyDefaults() {
	if m.SmtpPort == 0 {
		m.SmtpPort = 465
	}
}

// GetSmtpHost returns the SMTP host. An empty host means mail is logged instead of sent.
func (m Mail) GetSmtpHost() string {
	return m.SmtpHost
}

func (m Mail) GetSmtpPort() int {
	return m.SmtpPort
}

func (m Mail) GetSmtpAccount() string {
	return m.SmtpAccount
}

func (m Mail) GetSmtpPassword() string {
	return m.SmtpPassword
}

// GetMaintainer returns the administrator address that receives new-question notifications.
func (m Mail) GetMaintainer() string {
	return m.Maintainer
}

func (m Mail) GetTwilioAccountSID() string {
	return m.TwilioAccountSID
}

func (m Mail) GetTwilioAuthToken() string {
	return m.TwilioAuthToken
}

func (m Mail) GetTwilioNumber() string {
	return m.TwilioNumber
}

func (m Mail) GetTwilioTarget() string {
	return m.TwilioTarget
}
