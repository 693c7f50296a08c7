package config

import (
	"os"
	"strconv"
	"strings"
)

// RequiredVars is every environment variable a full report run needs, in
// the order they are reported by the credential check.
var RequiredVars = []string{
	"IXL_USERNAME",
	"IXL_PASSWORD",
	"MATHACADEMY_USERNAME",
	"MATHACADEMY_PASSWORD",
	"MATHACADEMY_STUDENT_IDS",
	"GMAIL_USER",
	"GMAIL_APP_PASSWORD",
	"RECIPIENT_EMAILS",
}

// Env holds everything read from the process environment. Credentials are
// deliberately kept out of the json5 settings file.
type Env struct {
	IXLUsername string
	IXLPassword string

	MathAcademyUsername   string
	MathAcademyPassword   string
	MathAcademyStudentIDs []string

	GmailUser        string
	GmailAppPassword string
	Recipients       []string

	// SendEmail gates actual delivery, default false.
	SendEmail bool
	// Headless controls browser visibility, default true.
	Headless bool
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func boolVar(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func FromEnv() Env {
	return Env{
		IXLUsername:           os.Getenv("IXL_USERNAME"),
		IXLPassword:           os.Getenv("IXL_PASSWORD"),
		MathAcademyUsername:   os.Getenv("MATHACADEMY_USERNAME"),
		MathAcademyPassword:   os.Getenv("MATHACADEMY_PASSWORD"),
		MathAcademyStudentIDs: splitList(os.Getenv("MATHACADEMY_STUDENT_IDS")),
		GmailUser:             os.Getenv("GMAIL_USER"),
		GmailAppPassword:      os.Getenv("GMAIL_APP_PASSWORD"),
		Recipients:            splitList(os.Getenv("RECIPIENT_EMAILS")),
		SendEmail:             boolVar("SEND_EMAIL", false),
		Headless:              boolVar("HEADLESS", true),
	}
}

// MissingVars returns the required variables that are unset or empty, in
// declaration order.
func MissingVars() []string {
	var missing []string
	for _, name := range RequiredVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
