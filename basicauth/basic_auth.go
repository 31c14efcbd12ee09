package basicauth

import (
	"errors"
	"strings"
)

var ErrCredentialsLength = errors.New("credentials array length should only have two entries")

// GetBasicAuth splits a "username:password" value into its two parts.
func GetBasicAuth(basicAuth string) ([]string, error) {
	basicAuthCredentials := strings.SplitN(basicAuth, ":", 2)
	if len(basicAuthCredentials) != 2 || basicAuthCredentials[0] == "" {
		return nil, ErrCredentialsLength
	}
	return basicAuthCredentials, nil
}
