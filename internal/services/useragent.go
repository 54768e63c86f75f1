package services

import (
	"strings"

	"github.com/mssola/user_agent"
)

// UserAgentClassifier is the library-backed UAClassifier. Anything the parser
// cannot make sense of comes back as Unknown fields.
type UserAgentClassifier struct{}

func NewUserAgentClassifier() *UserAgentClassifier {
	return &UserAgentClassifier{}
}

func (c *UserAgentClassifier) Classify(userAgent string) DeviceInfo {
	info := DeviceInfo{
		DeviceType: "Unknown",
		OS:         "Unknown",
		Browser:    "Unknown",
	}
	if strings.TrimSpace(userAgent) == "" {
		return info
	}

	ua := user_agent.New(userAgent)

	if browserName, browserVer := ua.Browser(); browserName != "" {
		info.Browser = strings.TrimSpace(browserName + " " + browserVer)
	}
	if os := ua.OS(); os != "" {
		info.OS = os
	}

	switch {
	case ua.Bot():
		info.DeviceType = "Bot"
	case ua.Mobile():
		info.DeviceType = "Mobile"
	default:
		info.DeviceType = "Desktop"
	}

	return info
}
