package httpapi

import (
	"context"
	"net"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	firex "github.com/tanpawarit/fire-pension-agent/agent/fire"
)

type fakeTransport struct {
	body  []byte
	calls int
}

func (f *fakeTransport) Execute(ctx context.Context, payload any) ([]byte, error) {
	f.calls++
	return f.body, nil
}

func newTestServer(t *testing.T, transport *fakeTransport) *fasthttp.Client {
	t.Helper()

	calc, err := firex.NewCalculator(transport)
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}
	h, err := NewHandler(calc)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	ln := fasthttputil.NewInmemoryListener()
	t.Cleanup(func() { _ = ln.Close() })
	srv := NewServer(Config{Port: 8080}, h)
	go func() { _ = srv.Serve(ln) }()

	return &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) { return ln.Dial() },
	}
}

func do(t *testing.T, client *fasthttp.Client, method, path, body string) (int, []byte) {
	t.Helper()

	status, respBody, _ := doWithHeaders(t, client, method, path, body, nil)
	return status, respBody
}

func doWithHeaders(t *testing.T, client *fasthttp.Client, method, path, body string, headers map[string]string) (int, []byte, map[string]string) {
	t.Helper()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("http://fire.test" + path)
	req.Header.SetMethod(method)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}
	if err := client.Do(req, resp); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	respHeaders := map[string]string{
		HeaderRequestID: string(resp.Header.Peek(HeaderRequestID)),
	}
	return resp.StatusCode(), append([]byte(nil), resp.Body()...), respHeaders
}

func decodeMessage(t *testing.T, body []byte) string {
	t.Helper()

	var out messageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response %s: %v", body, err)
	}
	return out.Message
}

const validBody = `{"manedslon":50000,"alder":30,"pensionInd_ar":60000,"skat_percentage":35,"forbrugsmal_md":25000,"frie_midler":100000,"holding_midler":0,"rate_and_liv":500000,"fire_alder":55}`

func TestCalculateReturnsPlan(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{body: []byte(`{"opsparing_ar":93788.0,"result":-5161782.0}`)}
	client := newTestServer(t, transport)

	status, body := do(t, client, fasthttp.MethodPost, PathCalculate, validBody)
	if status != fasthttp.StatusOK {
		t.Fatalf("status = %d, body = %s", status, body)
	}
	msg := decodeMessage(t, body)
	if !strings.Contains(msg, "93,788") || !strings.Contains(msg, "-5,161,782") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if transport.calls != 1 {
		t.Fatalf("expected one calculation request, got %d", transport.calls)
	}
}

func TestCalculateValidationErrorIsMessage(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	client := newTestServer(t, transport)

	status, body := do(t, client, fasthttp.MethodPost, PathCalculate, `{"alder":15}`)
	if status != fasthttp.StatusOK {
		t.Fatalf("status = %d, body = %s", status, body)
	}
	msg := decodeMessage(t, body)
	if !strings.Contains(msg, "Invalid input parameters") || !strings.Contains(msg, "- manedslon: Field required") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if transport.calls != 0 {
		t.Fatalf("invalid input must not reach the service, got %d calls", transport.calls)
	}
}

func TestCalculateRejectsBadRequests(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, &fakeTransport{})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"malformed body", fasthttp.MethodPost, PathCalculate, `{"alder":`, fasthttp.StatusBadRequest},
		{"array body", fasthttp.MethodPost, PathCalculate, `[1,2,3]`, fasthttp.StatusBadRequest},
		{"empty body", fasthttp.MethodPost, PathCalculate, "", fasthttp.StatusBadRequest},
		{"wrong method", fasthttp.MethodGet, PathCalculate, "", fasthttp.StatusMethodNotAllowed},
		{"unknown path", fasthttp.MethodPost, "/v1/other", validBody, fasthttp.StatusNotFound},
	}
	for _, tc := range cases {
		if status, body := do(t, client, tc.method, tc.path, tc.body); status != tc.want {
			t.Fatalf("%s: status = %d, want %d (body %s)", tc.name, status, tc.want, body)
		}
	}
}

func TestCalculateRequestID(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, &fakeTransport{body: []byte(`{}`)})

	_, _, headers := doWithHeaders(t, client, fasthttp.MethodPost, PathCalculate, validBody, map[string]string{HeaderRequestID: "req-42"})
	if headers[HeaderRequestID] != "req-42" {
		t.Fatalf("request id = %q, want echo of req-42", headers[HeaderRequestID])
	}

	_, _, headers = doWithHeaders(t, client, fasthttp.MethodPost, PathCalculate, validBody, nil)
	if len(headers[HeaderRequestID]) != 36 {
		t.Fatalf("expected generated uuid request id, got %q", headers[HeaderRequestID])
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, &fakeTransport{})
	status, body := do(t, client, fasthttp.MethodGet, PathHealth, "")
	if status != fasthttp.StatusOK || string(body) != `{"status":"ok"}` {
		t.Fatalf("status = %d, body = %s", status, body)
	}
}

func TestNewHandlerRequiresCalculator(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(nil); err == nil {
		t.Fatal("expected error for nil calculator")
	}
}

func TestConfigAddr(t *testing.T) {
	t.Parallel()

	if got := (Config{Port: 9090}).Addr(); got != ":9090" {
		t.Fatalf("Addr() = %q", got)
	}
}
