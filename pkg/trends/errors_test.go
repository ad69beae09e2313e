package trends

import (
	"errors"
	"fmt"
	"testing"
)

func TestFetchError_RateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  *FetchError
		want bool
	}{
		{
			name: "status 429",
			err:  &FetchError{Geo: "US", StatusCode: 429, Err: errors.New("Too Many Requests")},
			want: true,
		},
		{
			name: "other status wins over message text",
			err:  &FetchError{Geo: "US", StatusCode: 500, Err: errors.New("backend said 429")},
			want: false,
		},
		{
			name: "transport error with 429 hint",
			err:  &FetchError{Geo: "US", Err: errors.New("proxy replied 429")},
			want: true,
		},
		{
			name: "transport error with substring hint",
			err:  &FetchError{Geo: "US", Err: errors.New("upstream: Too Many Requests")},
			want: true,
		},
		{
			name: "plain transport error",
			err:  &FetchError{Geo: "US", Err: errors.New("connection refused")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.RateLimited(); got != tt.want {
				t.Errorf("RateLimited() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRateLimited_Wrapped(t *testing.T) {
	inner := &FetchError{Geo: "BR", StatusCode: 429, Err: errors.New("throttled")}
	wrapped := fmt.Errorf("fetch failed: %w", inner)
	if !IsRateLimited(wrapped) {
		t.Error("expected wrapped FetchError to classify as rate limited")
	}

	if IsRateLimited(errors.New("timeout")) {
		t.Error("plain timeout should not classify as rate limited")
	}
}

func TestFetchError_Label(t *testing.T) {
	err := &FetchError{Geo: "", Err: errors.New("boom")}
	if got := err.Error(); got != "trends fetch WW: boom" {
		t.Errorf("unexpected message: %q", got)
	}
}
