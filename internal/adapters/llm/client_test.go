package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/dugout/internal/domain/scouting"
	"github.com/okian/dugout/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

const completion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "Big power, patient eye."}
  }],
  "usage": {"prompt_tokens": 40, "completion_tokens": 6, "total_tokens": 46}
}`

type capturedRequest struct {
	Path   string
	Auth   string
	Body   map[string]any
	Status int
}

func newCompletionServer(status int, body string, seen *capturedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Path = r.URL.Path
		seen.Auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&seen.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestClient(t *testing.T) {
	Convey("Given an OpenAI-compatible server", t, func() {
		var seen capturedRequest
		srv := newCompletionServer(http.StatusOK, completion, &seen)
		defer srv.Close()

		c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", Model: "gpt-test"}, WithMaxRetries(0))

		Convey("It is configured with a key", func() {
			So(c.Configured(), ShouldBeTrue)
		})

		Convey("Generate sends the persona, prompt and sampling parameters", func() {
			text, err := c.Generate(context.Background(), "Describe Babe Ruth", scouting.Params{Temperature: 0.7, MaxTokens: 300})
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "Big power, patient eye.")

			So(strings.HasSuffix(seen.Path, "/chat/completions"), ShouldBeTrue)
			So(seen.Auth, ShouldEqual, "Bearer sk-test")
			So(seen.Body["model"], ShouldEqual, "gpt-test")
			So(seen.Body["temperature"], ShouldEqual, 0.7)
			So(seen.Body["max_tokens"], ShouldEqual, float64(300))

			msgs, ok := seen.Body["messages"].([]any)
			So(ok, ShouldBeTrue)
			So(msgs, ShouldHaveLength, 2)
			So(msgs[0].(map[string]any)["role"], ShouldEqual, "system")
			So(msgs[1].(map[string]any)["role"], ShouldEqual, "user")
		})
	})

	Convey("An API error is returned to the caller", t, func() {
		var seen capturedRequest
		srv := newCompletionServer(http.StatusBadRequest, `{"error": {"message": "bad model", "type": "invalid_request_error"}}`, &seen)
		defer srv.Close()

		c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/"}, WithMaxRetries(0))
		_, err := c.Generate(context.Background(), "x", scouting.DefaultParams())
		So(err, ShouldNotBeNil)
	})

	Convey("A response without choices is an error", t, func() {
		var seen capturedRequest
		srv := newCompletionServer(http.StatusOK, `{"id": "x", "object": "chat.completion", "choices": []}`, &seen)
		defer srv.Close()

		c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/"}, WithMaxRetries(0))
		_, err := c.Generate(context.Background(), "x", scouting.DefaultParams())
		So(err, ShouldEqual, ErrEmptyResponse)
	})

	Convey("Without a key the client is unconfigured and never calls out", t, func() {
		var seen capturedRequest
		srv := newCompletionServer(http.StatusOK, completion, &seen)
		defer srv.Close()

		c := NewClient(Config{BaseURL: srv.URL + "/v1/"})
		So(c.Configured(), ShouldBeFalse)
		_, err := c.Generate(context.Background(), "x", scouting.DefaultParams())
		So(err, ShouldNotBeNil)
		So(seen.Path, ShouldBeEmpty)
	})
}
