package chapa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeSendsPayloadAndAuth(t *testing.T) {
	var got InitializeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer CHASECK_TEST-secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"success","data":{"checkout_url":"https://pay/xyz"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "CHASECK_TEST-secret", time.Second)
	out, err := c.Initialize(context.Background(), InitializeRequest{
		Amount: "450.00", Currency: "ETB", Email: "guest@example.com",
		FirstName: "Abebe", LastName: "Bikila", TxRef: "booking-abcd1234",
	})
	require.NoError(t, err)
	require.NotNil(t, out.CheckoutURL())
	assert.Equal(t, "https://pay/xyz", *out.CheckoutURL())
	assert.Equal(t, "booking-abcd1234", got.TxRef)
	assert.Equal(t, "450.00", got.Amount)
	assert.Equal(t, "", got.CallbackURL)
}

func TestInitializeErrorStatusStillReturnsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid API Key","status":"failed","data":null}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL, "bad", time.Second).Initialize(context.Background(), InitializeRequest{})
	require.NoError(t, err)
	assert.Nil(t, out.CheckoutURL())
	assert.Equal(t, "Invalid API Key", out["message"])
}

func TestDecodeFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", time.Second).Verify(context.Background(), "booking-1")
	assert.Error(t, err)
}

func TestTransportFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "k", time.Second).Initialize(context.Background(), InitializeRequest{})
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/transaction/verify/booking-abcd1234", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"status":"success","reference":"APfx1"}}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL, "k", time.Second).Verify(context.Background(), "booking-abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "success", out.Status())
	require.NotNil(t, out.Reference())
	assert.Equal(t, "APfx1", *out.Reference())
}

func TestPayloadAccessorsTolerateShape(t *testing.T) {
	assert.Equal(t, "", Payload{}.Status())
	assert.Equal(t, "", Payload{"data": "oops"}.Status())
	assert.Nil(t, Payload{"data": map[string]any{"checkout_url": 5}}.CheckoutURL())
}
