package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestMapHTTPError_Status(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
		want   string
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			check:  domain.IsNotFound,
			want:   `posts "fetch posts" not found`,
		},
		{
			name:   "bad request uses body message",
			status: http.StatusBadRequest,
			body:   `{"message":"bad limit"}`,
			check:  domain.IsValidation,
			want:   "validation failed: bad limit",
		},
		{
			name:   "conflict",
			status: http.StatusConflict,
			check:  domain.IsValidation,
			want:   "validation failed: fetch posts failed with status 409",
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check:  domain.IsUnavailable,
			want:   `service "posts" unavailable: access denied`,
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			check:  domain.IsUnavailable,
			want:   `service "posts" unavailable: rate limit exceeded`,
		},
		{
			name:   "server error with nested body",
			status: http.StatusInternalServerError,
			body:   `{"error":{"code":"BOOM","message":"database down"}}`,
			check:  domain.IsUnavailable,
			want:   `service "posts" unavailable: database down`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(response(tt.status, tt.body), nil, "posts", "fetch posts")

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestMapHTTPError_ValidationDetails(t *testing.T) {
	body := `{"error":{"code":"VALIDATION_ERROR","message":"bad","details":{"title":"too long"}}}`

	err := MapHTTPError(response(http.StatusUnprocessableEntity, body), nil, "posts", "publish quotes")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
	assert.Equal(t, "too long", ve.Message)
}

func TestMapHTTPError_ClientErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"circuit open", clients.ErrCircuitOpen, "circuit breaker open during fetch posts"},
		{"retries spent", fmt.Errorf("%w: boom", clients.ErrMaxRetriesExceeded), "max retries exceeded during fetch posts"},
		{"other", errors.New("dial tcp: refused"), "fetch posts failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(nil, tt.err, "posts", "fetch posts")

			var ue *domain.UnavailableError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, "posts", ue.Service)
			assert.Equal(t, tt.want, ue.Reason)
			require.ErrorIs(t, err, tt.err, "client error stays reachable")
			assert.Contains(t, err.Error(), tt.err.Error())
		})
	}
}

func TestMapHTTPError_SuccessAndNil(t *testing.T) {
	assert.NoError(t, MapHTTPError(response(http.StatusOK, ""), nil, "posts", "fetch posts"))

	err := MapHTTPError(nil, nil, "posts", "fetch posts")
	assert.True(t, domain.IsUnavailable(err))
}

func TestParseErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     io.Reader
		wantNil  bool
		wantCode string
		wantMsg  string
	}{
		{"nested", strings.NewReader(`{"error":{"code":"X","message":"nested"}}`), false, "X", "nested"},
		{"flat", strings.NewReader(`{"code":"Y","message":"flat"}`), false, "Y", "flat"},
		{"not json", strings.NewReader(`<html>`), true, "", ""},
		{"empty object", strings.NewReader(`{}`), true, "", ""},
		{"nil body", nil, true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseErrorResponse(tt.body)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.GetCode())
			assert.Equal(t, tt.wantMsg, got.GetMessage())
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	got, err := DecodeResponse[[]post](io.NopCloser(strings.NewReader(`[{"id":1,"title":"a"}]`)))
	require.NoError(t, err)
	assert.Equal(t, []post{{ID: 1, Title: "a"}}, got)

	_, err = DecodeResponse[[]post](io.NopCloser(strings.NewReader(`{`)))
	require.ErrorContains(t, err, "decoding response")

	_, err = DecodeResponse[[]post](nil)
	require.Error(t, err)
}

func TestTranslateSlice_KeepsAcceptedAndReportsRejected(t *testing.T) {
	items := []string{"a", "", "b"}

	got, rejected := TranslateSlice(items, func(s *string) (string, error) {
		if *s == "" {
			return "", errors.New("empty")
		}
		return strings.ToUpper(*s), nil
	})

	assert.Equal(t, []string{"A", "B"}, got)
	require.Len(t, rejected, 1)
	assert.EqualError(t, rejected[0], "item 1: empty")
}

func TestTranslateSlice_Empty(t *testing.T) {
	got, rejected := TranslateSlice([]string{}, func(s *string) (string, error) { return *s, nil })

	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Nil(t, rejected)
}
