package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler adapta eventos do API Gateway para o mesmo http.Handler do
// runtime local, então rotas, middleware e formato de erro são idênticos.
type LambdaHandler struct {
	handler http.Handler
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(handler http.Handler) *LambdaHandler {
	return &LambdaHandler{handler: handler}
}

// Handle processa a requisição Lambda
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	httpReq, err := toHTTPRequest(ctx, req)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"detail":"Validation error on body: invalid base64 payload"}`,
		}, nil
	}

	rw := newLambdaResponseWriter()
	h.handler.ServeHTTP(rw, httpReq)
	return rw.response(), nil
}

func toHTTPRequest(ctx context.Context, req events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("body base64 inválido: %w", err)
		}
		body = decoded
	}

	query := url.Values{}
	for k, values := range req.MultiValueQueryStringParameters {
		for _, v := range values {
			query.Add(k, v)
		}
	}
	for k, v := range req.QueryStringParameters {
		if _, ok := query[k]; !ok {
			query.Set(k, v)
		}
	}

	target := &url.URL{Path: req.Path, RawQuery: query.Encode()}
	httpReq, err := http.NewRequestWithContext(ctx, req.HTTPMethod, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for k, values := range req.MultiValueHeaders {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	for k, v := range req.Headers {
		if httpReq.Header.Get(k) == "" {
			httpReq.Header.Set(k, v)
		}
	}
	httpReq.RemoteAddr = req.RequestContext.Identity.SourceIP
	return httpReq, nil
}

// lambdaResponseWriter acumula a resposta em memória.
type lambdaResponseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newLambdaResponseWriter() *lambdaResponseWriter {
	return &lambdaResponseWriter{header: http.Header{}}
}

func (w *lambdaResponseWriter) Header() http.Header { return w.header }

func (w *lambdaResponseWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *lambdaResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *lambdaResponseWriter) response() events.APIGatewayProxyResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	headers := make(map[string]string, len(w.header))
	for k, v := range w.header {
		headers[strings.ToLower(k)] = strings.Join(v, ",")
	}

	return events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           headers,
		MultiValueHeaders: map[string][]string(w.header.Clone()),
		Body:              w.body.String(),
	}
}
