package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneywatch/moneywatch/pkg/apiclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return apiclient.New(server.URL, apiclient.WithSession(apiclient.NewSession()))
}

func TestLoginStoresToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "token-123",
			"refresh_token": "refresh-456",
		})
	})

	err := client.Login(context.Background(), "demo@mail.com", "password")
	require.NoError(t, err)
	assert.True(t, client.Session().IsValid())
	assert.Equal(t, "token-123", client.Session().Token())
}

func TestBearerHeaderSentOnEveryCall(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]apiclient.Expense{})
	})
	client.Session().Login("token-123")

	_, err := client.ExpensesByPeriod(context.Background(), "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestLogoutClearsSession(t *testing.T) {
	session := apiclient.NewSession()
	session.Login("token-123")
	require.True(t, session.IsValid())

	session.Logout()
	assert.False(t, session.IsValid())
	assert.Empty(t, session.Token())
}

func TestAPIErrorDecoded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "EXPENSE_NOT_FOUND",
			"message": "expense not found",
		})
	})

	_, err := client.SetExpensePaid(context.Background(), 99, true)
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "expense not found", apiErr.Message)
}

func TestTogglePaidOptimisticConfirmed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiclient.Expense{ID: 1, Paid: true})
	})

	expenses := []apiclient.Expense{{ID: 1, Paid: false}}
	err := client.TogglePaidOptimistic(context.Background(), expenses, 0)

	require.NoError(t, err)
	assert.True(t, expenses[0].Paid)
}

func TestTogglePaidOptimisticRollsBackOnFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	expenses := []apiclient.Expense{{ID: 1, Paid: false}}
	err := client.TogglePaidOptimistic(context.Background(), expenses, 0)

	require.Error(t, err)
	assert.False(t, expenses[0].Paid, "paid flag must be restored after a failed confirm")
}

func TestGenerateAndReload(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]int{"generated": 2})
			return
		}
		json.NewEncoder(w).Encode([]apiclient.Expense{{ID: 1}, {ID: 2}})
	})

	expenses, err := client.GenerateAndReload(context.Background(), "2025-03")
	require.NoError(t, err)
	assert.Len(t, expenses, 2)
	require.Len(t, calls, 2)
	assert.Equal(t, "POST /api/v1/expenses/period/2025-03/generate", calls[0])
	assert.Equal(t, "GET /api/v1/expenses/period/2025-03", calls[1])
}

func TestMonthlyTrendGatedDiscardsStaleResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]apiclient.MonthTotal{{Month: "Jan"}})
	})

	gate := apiclient.NewPeriodGate()
	gate.Activate("2025-03")

	// Result for the active period is kept.
	trend, err := client.MonthlyTrendGated(context.Background(), gate, "2025-03", 2025)
	require.NoError(t, err)
	assert.NotNil(t, trend)

	// Caller navigates away before the next result lands.
	gate.Activate("2025-04")
	trend, err = client.MonthlyTrendGated(context.Background(), gate, "2025-03", 2025)
	require.NoError(t, err)
	assert.Nil(t, trend)
}

func TestOptimisticGeneric(t *testing.T) {
	state := 10

	err := apiclient.Optimistic(
		func() int { return state },
		func() { state = 20 },
		func() error { return errors.New("rejected") },
		func(prev int) { state = prev },
	)

	require.Error(t, err)
	assert.Equal(t, 10, state)
}
