//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

const (
	defaultPassword = "password123"
	lockKeyPrefix   = "avecbanker:planning-lock:"
	emailsPath      = "/emails"
)

var placeholder = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^a user exists with email "([^"]*)"$`, aUserExistsWithEmail)
	ctx.Step(`^I am logged in as "([^"]*)"$`, iAmLoggedInAs)
	ctx.Step(`^I am logged out$`, iAmLoggedOut)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, iSaveTheResponseFieldAs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
}

// registerStateSteps registers steps that inspect or seed storage and side effects.
func registerStateSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^another rebalance is running for "([^"]*)"$`, anotherRebalanceIsRunningFor)
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table$`, theDbShouldContainObjects)
	ctx.Step(`^the email queue is processed$`, theEmailQueueIsProcessed)
	ctx.Step(`^the email API should have received (\d+) emails?$`, theEmailAPIShouldHaveReceived)
	ctx.Step(`^the last email subject should be "([^"]*)"$`, theLastEmailSubjectShouldBe)
	ctx.Step(`^the last email should be sent to "([^"]*)"$`, theLastEmailShouldBeSentTo)
}

func testContext(ctx context.Context) (*TestContext, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}
	return tc, nil
}

func theAPIServerIsRunning(ctx context.Context) error {
	if shared == nil || shared.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return ctx, err
	}
	return ctx, tc.send(method, endpoint, "")
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return ctx, err
	}
	return ctx, tc.send(method, endpoint, body.Content)
}

func (tc *TestContext) send(method, endpoint, body string) error {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(tc.expand(body))
	}

	req, err := http.NewRequest(method, shared.server.URL+tc.expand(endpoint), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// expand replaces {{name}} with values saved earlier in the scenario.
func (tc *TestContext) expand(text string) string {
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if value, ok := tc.saved[name]; ok {
			return value
		}
		return match
	})
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return ctx, err
	}
	tc.requestHeaders[header] = value
	return ctx, nil
}

func aUserExistsWithEmail(ctx context.Context, email string) (context.Context, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return ctx, err
	}
	return ctx, tc.register(email)
}

func (tc *TestContext) register(email string) error {
	name, _, _ := strings.Cut(email, "@")
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"name":     name,
		"password": defaultPassword,
	})

	token := tc.accessToken
	tc.accessToken = ""
	defer func() { tc.accessToken = token }()

	if err := tc.send(http.MethodPost, "/api/v1/auth/register", string(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated && tc.response.StatusCode != http.StatusConflict {
		return fmt.Errorf("failed to register %s: %d %s", email, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func iAmLoggedInAs(ctx context.Context, email string) (context.Context, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return ctx, err
	}
	if err := tc.register(email); err != nil {
		return ctx, err
	}

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": defaultPassword,
	})
	tc.accessToken = ""
	if err := tc.send(http.MethodPost, "/api/v1/auth/login", string(body)); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != http.StatusOK {
		return ctx, fmt.Errorf("failed to log in as %s: %d %s", email, tc.response.StatusCode, tc.responseBody)
	}

	var auth struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(tc.responseBody, &auth); err != nil {
		return ctx, fmt.Errorf("failed to parse login response: %w", err)
	}
	tc.accessToken = auth.AccessToken
	tc.userIDs[email] = auth.User.ID
	return ctx, nil
}

func iAmLoggedOut(ctx context.Context) (context.Context, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return ctx, err
	}
	tc.accessToken = ""
	return ctx, nil
}

func iSaveTheResponseFieldAs(ctx context.Context, path, name string) (context.Context, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return ctx, err
	}
	value, err := tc.field(path)
	if err != nil {
		return ctx, err
	}
	tc.saved[name] = stringify(value)
	return ctx, nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(string(tc.responseBody), tc.expand(expected)) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, path, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	value, err := tc.field(path)
	if err != nil {
		return err
	}

	expected = tc.expand(expected)
	if !matches(value, expected) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'. Body: %s", path, expected, stringify(value), string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, path string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	_, err = tc.field(path)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, path string, count int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	value, err := tc.field(path)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %s", path, stringify(value))
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d. Body: %s", path, count, len(items), string(tc.responseBody))
	}
	return nil
}

// field walks a dot separated path such as "goals.0.name" through the response.
func (tc *TestContext) field(path string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(tc.responseBody))
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field '%s' has no item %s: %s", path, part, string(tc.responseBody))
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(tc.responseBody))
		}
	}
	return current, nil
}

// matches compares a JSON value with its expected text. Amounts travel as strings,
// so anything that reads as a number is compared as a decimal.
func matches(value any, expected string) bool {
	actual := stringify(value)
	if actual == expected {
		return true
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return false
	}
	got, err := decimal.NewFromString(actual)
	if err != nil {
		return false
	}
	return got.Equal(want)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any, []any:
		raw, _ := json.Marshal(v)
		return string(raw)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func anotherRebalanceIsRunningFor(ctx context.Context, email string) (context.Context, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return ctx, err
	}
	userID, ok := tc.userIDs[email]
	if !ok {
		return ctx, fmt.Errorf("%s has not logged in during this scenario", email)
	}
	if err := shared.redis.Set(lockKeyPrefix+userID, "integration"); err != nil {
		return ctx, err
	}
	shared.redis.SetTTL(lockKeyPrefix+userID, time.Minute)
	return ctx, nil
}

func theDbShouldContainObjects(ctx context.Context, count int, table string) error {
	actual, err := shared.db.Count(table)
	if err != nil {
		return err
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d rows in %s, got %d", count, table, actual)
	}
	return nil
}

func theEmailQueueIsProcessed(ctx context.Context) error {
	shared.injector.EmailWorker.ProcessNow(ctx)
	return nil
}

func theEmailAPIShouldHaveReceived(ctx context.Context, count int) error {
	actual := shared.emailAPI.RequestCount(http.MethodPost, emailsPath)
	if actual != count {
		return fmt.Errorf("expected %d emails, got %d", count, actual)
	}
	return nil
}

func lastEmail() (map[string]any, error) {
	count := shared.emailAPI.RequestCount(http.MethodPost, emailsPath)
	if count == 0 {
		return nil, fmt.Errorf("no email was sent")
	}
	return shared.emailAPI.GetRequestBody(http.MethodPost, emailsPath, count-1), nil
}

func theLastEmailSubjectShouldBe(ctx context.Context, subject string) error {
	email, err := lastEmail()
	if err != nil {
		return err
	}
	if actual := stringify(email["subject"]); actual != subject {
		return fmt.Errorf("expected subject '%s', got '%s'", subject, actual)
	}
	return nil
}

func theLastEmailShouldBeSentTo(ctx context.Context, recipient string) error {
	email, err := lastEmail()
	if err != nil {
		return err
	}
	if actual := stringify(email["to"]); !strings.Contains(actual, recipient) {
		return fmt.Errorf("expected email to '%s', got '%s'", recipient, actual)
	}
	return nil
}
