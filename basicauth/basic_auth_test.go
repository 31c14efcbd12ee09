package basicauth

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBasicAuth(t *testing.T) {
	tests := []struct {
		name              string
		input             string
		expectedBasicAuth []string
		expectedError     error
	}{
		{
			name:              "successful parse",
			input:             "username:password",
			expectedBasicAuth: []string{"username", "password"},
		},
		{
			name:              "password containing a colon",
			input:             "username:pass:word",
			expectedBasicAuth: []string{"username", "pass:word"},
		},
		{
			name:              "username and password keep their order",
			input:             "password:username",
			expectedBasicAuth: []string{"password", "username"},
		},
		{
			name:          "unsuccessful parse",
			input:         "missingsemicolon",
			expectedError: ErrCredentialsLength,
		},
		{
			name:          "missing username",
			input:         ":password",
			expectedError: ErrCredentialsLength,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			basicAuth, err := GetBasicAuth(test.input)
			if err != nil {
				if test.expectedError == nil {
					t.Fatalf("unexpected error occurred: %v", err)
				}

				if !errors.Is(err, test.expectedError) {
					t.Fatalf("expected error: %v, got: %v", test.expectedError, err)
				}

				return
			}

			if test.expectedError != nil {
				t.Fatalf("expected error did not occur: %v", test.expectedError)
			}

			if !cmp.Equal(test.expectedBasicAuth, basicAuth) {
				diff := cmp.Diff(test.expectedBasicAuth, basicAuth)
				t.Errorf("unexpected differences occurred: %v", diff)
			}
		})
	}
}
