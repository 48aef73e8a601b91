package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed HTTP client for the moneywatch API. The token from
// its session goes out as a Bearer header on every call.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: DefaultSession,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// APIError carries the server's error payload alongside the HTTP status.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// --- auth ---

type authTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates and stores the access token in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var tokens authTokens
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &tokens)
	if err != nil {
		return err
	}
	c.session.Login(tokens.AccessToken)
	return nil
}

func (c *Client) Register(ctx context.Context, email, name, password string) error {
	var tokens authTokens
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	}, &tokens)
	if err != nil {
		return err
	}
	c.session.Login(tokens.AccessToken)
	return nil
}

// Refresh exchanges a refresh token for a new pair and stores the new
// access token in the session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var tokens authTokens
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &tokens)
	if err != nil {
		return "", err
	}
	c.session.Login(tokens.AccessToken)
	return tokens.RefreshToken, nil
}

func (c *Client) Logout() {
	c.session.Logout()
}

// Validate asks the server whether the session's token is still good.
func (c *Client) Validate(ctx context.Context) (bool, error) {
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/validate", nil, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

// --- expenses ---

func (c *Client) ExpensesByPeriod(ctx context.Context, period string) ([]Expense, error) {
	var out []Expense
	err := c.do(ctx, http.MethodGet, "/api/v1/expenses/period/"+period, nil, &out)
	return out, err
}

func (c *Client) RecentExpenses(ctx context.Context, limit int) ([]Expense, error) {
	var out []Expense
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/expenses/recent?limit=%d", limit), nil, &out)
	return out, err
}

func (c *Client) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	var out Expense
	if err := c.do(ctx, http.MethodPost, "/api/v1/expenses", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, req UpdateExpenseRequest) (*Expense, error) {
	var out Expense
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/expenses/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetExpensePaid(ctx context.Context, id int64, paid bool) (*Expense, error) {
	var out Expense
	body := map[string]bool{"paid": paid}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/expenses/%d/paid", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/expenses/%d", id), nil, nil)
}

// GenerateRecurring materializes the period's recurring templates and
// returns how many expenses were created.
func (c *Client) GenerateRecurring(ctx context.Context, period string) (int, error) {
	var out struct {
		Generated int `json:"generated"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/expenses/period/"+period+"/generate", nil, &out)
	return out.Generated, err
}

// GenerateAndReload is the fire-and-refetch path: generate for the
// period, then re-query its expenses so the caller renders fresh state.
func (c *Client) GenerateAndReload(ctx context.Context, period string) ([]Expense, error) {
	if _, err := c.GenerateRecurring(ctx, period); err != nil {
		return nil, err
	}
	return c.ExpensesByPeriod(ctx, period)
}

func (c *Client) Years(ctx context.Context) ([]int, error) {
	var out []int
	err := c.do(ctx, http.MethodGet, "/api/v1/expenses/years", nil, &out)
	return out, err
}

// TogglePaidOptimistic flips the paid flag in the local slice first and
// rolls it back when the server rejects the change.
func (c *Client) TogglePaidOptimistic(ctx context.Context, expenses []Expense, index int) error {
	return Optimistic(
		func() bool { return expenses[index].Paid },
		func() { expenses[index].Paid = !expenses[index].Paid },
		func() error {
			_, err := c.SetExpensePaid(ctx, expenses[index].ID, expenses[index].Paid)
			return err
		},
		func(prev bool) { expenses[index].Paid = prev },
	)
}

// --- categories ---

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPost, "/api/v1/categories", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", id), nil, nil)
}

// --- recurring expenses ---

func (c *Client) RecurringExpenses(ctx context.Context) ([]RecurringExpense, error) {
	var out []RecurringExpense
	err := c.do(ctx, http.MethodGet, "/api/v1/recurringExpenses", nil, &out)
	return out, err
}

func (c *Client) CreateRecurringExpense(ctx context.Context, req CreateRecurringExpenseRequest) (*RecurringExpense, error) {
	var out RecurringExpense
	if err := c.do(ctx, http.MethodPost, "/api/v1/recurringExpenses", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRecurringExpense(ctx context.Context, id int64, req UpdateRecurringExpenseRequest) (*RecurringExpense, error) {
	var out RecurringExpense
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/recurringExpenses/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ToggleRecurringExpense(ctx context.Context, id int64) (*RecurringExpense, error) {
	var out RecurringExpense
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/recurringExpenses/%d/toggle", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRecurringExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/recurringExpenses/%d", id), nil, nil)
}

// --- salaries ---

func (c *Client) Salaries(ctx context.Context) ([]Salary, error) {
	var out []Salary
	err := c.do(ctx, http.MethodGet, "/api/v1/salaries", nil, &out)
	return out, err
}

func (c *Client) CreateSalary(ctx context.Context, req CreateSalaryRequest) (*Salary, error) {
	var out Salary
	if err := c.do(ctx, http.MethodPost, "/api/v1/salaries", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ActivateSalary(ctx context.Context, id int64) (*Salary, error) {
	var out Salary
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/salaries/%d/activate", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSalary(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/salaries/%d", id), nil, nil)
}

// --- summary and reports ---

func (c *Client) Summary(ctx context.Context, period string) (*Summary, error) {
	var out Summary
	if err := c.do(ctx, http.MethodGet, "/api/v1/summary/"+period, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CategoryDistribution(ctx context.Context, period string) ([]CategorySlice, error) {
	var out []CategorySlice
	err := c.do(ctx, http.MethodGet, "/api/v1/reports/distribution/"+period, nil, &out)
	return out, err
}

func (c *Client) MonthlyTrend(ctx context.Context, year int) ([]MonthTotal, error) {
	var out []MonthTotal
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/reports/trend/%d", year), nil, &out)
	return out, err
}

func (c *Client) YearlyCategoryTotals(ctx context.Context, year int) ([]CategorySlice, error) {
	var out []CategorySlice
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/reports/categories/%d", year), nil, &out)
	return out, err
}

// MonthlyTrendGated fetches the trend for the period the gate was
// activated with. A nil slice with no error means the result arrived
// stale and was discarded.
func (c *Client) MonthlyTrendGated(ctx context.Context, gate *PeriodGate, period string, year int) ([]MonthTotal, error) {
	trend, err := c.MonthlyTrend(ctx, year)
	if err != nil {
		return nil, err
	}
	if !gate.Accept(period) {
		return nil, nil
	}
	return trend, nil
}
