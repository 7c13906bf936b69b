package myerrors

import (
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		httpStatus int
		errorText  string
		cause      string
	}{
		{
			name:       "No http error",
			in:         myErr,
			httpStatus: 500,
			errorText:  "my error",
			cause:      "my error",
		},
		{
			name:       "Invalid input error",
			in:         NewInvalidInputError(myErr),
			httpStatus: 400,
			errorText:  "status: 400, err: my error",
			cause:      "my error",
		},
		{
			name:       "Invalid input errorf",
			in:         NewInvalidInputErrorf("%s: %d", myErr.Error(), 123),
			httpStatus: 400,
			errorText:  "status: 400, err: my error: 123",
			cause:      "my error: 123",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError(myErr),
			httpStatus: 404,
			errorText:  "status: 404, err: my error",
			cause:      "my error",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			httpStatus: 500,
			errorText:  "status: 500, err: my error",
			cause:      "my error",
		},
		{
			name:       "Not available error",
			in:         NewUnavailableError(myErr),
			httpStatus: 503,
			errorText:  "status: 503, err: my error",
			cause:      "my error",
		},
		{
			name:       "Gateway error keeps remote status",
			in:         NewGatewayError(409, myErr),
			httpStatus: 409,
			errorText:  "status: 409, err: my error",
			cause:      "my error",
		},
		{
			name:       "Gateway error without error status",
			in:         NewGatewayError(302, myErr),
			httpStatus: 502,
			errorText:  "status: 502, err: my error",
			cause:      "my error",
		},
		{
			name:       "Wrapped error",
			in:         fmt.Errorf("calling gateway: %w", NewNotFoundError(myErr)),
			httpStatus: 404,
			errorText:  "calling gateway: status: 404, err: my error",
			cause:      "my error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpStatus := GetHTTPStatus(tc.in)
			if httpStatus != tc.httpStatus {
				t.Errorf("HttpStatus: got %v, want %v", httpStatus, tc.httpStatus)
			}
			if tc.errorText != tc.in.Error() {
				t.Errorf("%s: ErrorText: got %v, want %v", tc.name, tc.in.Error(), tc.errorText)
			}
			if got := GetCause(tc.in); got != tc.cause {
				t.Errorf("%s: Cause: got %v, want %v", tc.name, got, tc.cause)
			}
		})
	}
}
