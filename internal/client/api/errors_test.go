package api

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name     string
		in       error
		wantKind any
		wantMsg  string
	}{
		{
			name:     "deadline exceeded",
			in:       &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded},
			wantKind: &TimeoutError{},
			wantMsg:  "timed out",
		},
		{
			name:     "dns failure",
			in:       &url.Error{Op: "Get", URL: "http://x", Err: &net.DNSError{Name: "x", Err: "no such host"}},
			wantKind: &ConnectivityError{},
			wantMsg:  "cannot resolve",
		},
		{
			name:     "connection refused",
			in:       &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}},
			wantKind: &ConnectivityError{},
			wantMsg:  "cannot reach",
		},
		{
			name:     "anything else",
			in:       errors.New("boom"),
			wantKind: &UnexpectedError{},
			wantMsg:  "unexpected error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyTransport(tc.in)
			require.Error(t, got)
			switch tc.wantKind.(type) {
			case *TimeoutError:
				var e *TimeoutError
				require.ErrorAs(t, got, &e)
			case *ConnectivityError:
				var e *ConnectivityError
				require.ErrorAs(t, got, &e)
			case *UnexpectedError:
				var e *UnexpectedError
				require.ErrorAs(t, got, &e)
			}
			assert.Contains(t, got.Error(), tc.wantMsg)
		})
	}
}

func TestServerError_Message(t *testing.T) {
	withMsg := &ServerError{Status: 422, Message: "Invalid credentials"}
	assert.Contains(t, withMsg.Error(), "Invalid credentials")

	bare := &ServerError{Status: 500}
	assert.Contains(t, bare.Error(), "500")
}
