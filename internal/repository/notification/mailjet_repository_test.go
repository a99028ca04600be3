package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWelcome(t *testing.T) {
	var (
		gotAuth    string
		gotPayload payloadSendEmail
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.1/send", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := NewMailjetRepository(MailjetConfig{
		MailjetBaseURL:           srv.URL,
		MailjetBasicAuthUsername: "key",
		MailjetBasicAuthPassword: "secret",
		MailjetSenderEmail:       "hello@skillcompare.dev",
		MailjetSenderName:        "SkillCompare",
	})

	err := repo.SendWelcome(context.Background(), "Ada", "ada@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Basic a2V5OnNlY3JldA==", gotAuth)
	require.Len(t, gotPayload.Messages, 1)
	assert.Equal(t, "ada@example.com", gotPayload.Messages[0].To[0].Email)
	assert.Equal(t, "hello@skillcompare.dev", gotPayload.Messages[0].From.Email)
	assert.Contains(t, gotPayload.Messages[0].TextPart, "Hi Ada")
}

func TestSendEmail_NegativeResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ErrorMessage":"bad credentials"}`))
	}))
	defer srv.Close()

	repo := NewMailjetRepository(MailjetConfig{MailjetBaseURL: srv.URL})

	err := repo.SendEmail(context.Background(), "Ada", "ada@example.com", "s", "t", "h")

	assert.ErrorContains(t, err, "401")
}
