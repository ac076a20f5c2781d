// Package acl translates remote collections into domain quotes.
//
// Remote records never leave this package: each adapter decodes into
// unexported DTOs, translates them with [TranslateSlice], and reports
// failures as domain errors via [MapHTTPError]:
//
//   - 404 → [domain.ErrNotFound]
//   - 400/409/422 → [domain.ErrValidation]
//   - 401/403/429/5xx and transport failures → [domain.ErrUnavailable]
//
// [PostsSource] is the sync source for JSONPlaceholder-style /posts
// endpoints. It fetches post titles as quotes, publishes the local list,
// and exposes a health checker that follows its circuit breaker.
package acl
