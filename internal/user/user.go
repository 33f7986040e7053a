// Package user resolves who is running the CLI
package user

import (
	"os"
	"os/user"
	"strings"
)

// DisplayName returns a name for the current OS user: the account's full
// name when set, then the login name, then $USER, then "unknown".
func DisplayName() string {
	if u, err := user.Current(); err == nil {
		// GECOS may carry extra comma separated fields
		if name := strings.TrimSpace(strings.Split(u.Name, ",")[0]); name != "" {
			return name
		}
		if u.Username != "" {
			return u.Username
		}
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
