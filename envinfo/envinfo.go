// Package envinfo collects a best-effort fingerprint of the machine running
// the game. Collection never fails; anything that cannot be determined is
// reported as Unknown.
package envinfo

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const Unknown = "Unknown"

// Info is the environment snapshot stored on the player.
type Info struct {
	Client     string `yaml:"client"`
	OS         string `yaml:"os"`
	Resolution string `yaml:"resolution"`
	Locale     string `yaml:"locale"`
	Timezone   string `yaml:"timezone"`
	Host       string `yaml:"host"`
	User       string `yaml:"user"`
}

// Source abstracts the process environment so tests can fake it.
type Source struct {
	Getenv   func(string) string
	Hostname func() (string, error)
	Username func() (string, error)
	Location *time.Location
}

// OSSource reads from the real process environment.
func OSSource() Source {
	return Source{
		Getenv:   os.Getenv,
		Hostname: os.Hostname,
		Username: currentUser,
		Location: time.Local,
	}
}

// Collect gathers environment info using the real process environment.
func Collect(screenW, screenH int) Info {
	return OSSource().Collect(screenW, screenH)
}

func (s Source) Collect(screenW, screenH int) Info {
	info := Info{
		Client:     fmt.Sprintf("S.A.V.E. terminal client (%s)", runtime.Version()),
		OS:         fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Resolution: Unknown,
		Locale:     s.locale(),
		Timezone:   Unknown,
		Host:       Unknown,
		User:       Unknown,
	}
	if screenW > 0 && screenH > 0 {
		info.Resolution = fmt.Sprintf("%dx%d", screenW, screenH)
	}
	if s.Location != nil && s.Location.String() != "" {
		info.Timezone = s.Location.String()
	}
	if s.Hostname != nil {
		if h, err := s.Hostname(); err == nil && strings.TrimSpace(h) != "" {
			info.Host = h
		}
	}
	if s.Username != nil {
		if u, err := s.Username(); err == nil && strings.TrimSpace(u) != "" {
			info.User = u
		}
	}
	return info
}

// locale follows the POSIX precedence LC_ALL > LC_MESSAGES > LANG.
func (s Source) locale() string {
	if s.Getenv == nil {
		return Unknown
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		raw := strings.TrimSpace(s.Getenv(key))
		if raw == "" || raw == "C" || raw == "POSIX" {
			continue
		}
		// en_GB.UTF-8@euro -> en_GB
		if i := strings.IndexAny(raw, ".@"); i >= 0 {
			raw = raw[:i]
		}
		tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
		if err != nil {
			continue
		}
		return tag.String()
	}
	return Unknown
}

func currentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	if u.Name != "" {
		return u.Name, nil
	}
	return u.Username, nil
}
