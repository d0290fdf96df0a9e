package explorer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVerificationVerified(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"module":  r.URL.Query().Get("module"),
			"action":  r.URL.Query().Get("action"),
			"address": r.URL.Query().Get("address"),
			"apikey":  r.URL.Query().Get("apikey"),
		}
		w.Write([]byte(`{"status":"1","message":"OK","result":"[{\"type\":\"function\"}]"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "testkey")
	result := client.CheckVerification(context.Background(), "0xcontract")

	assert.True(t, result.Verified)
	assert.Equal(t, "0xcontract", result.Address)
	assert.Equal(t, "OK", result.Message)
	assert.NotEmpty(t, result.Result)

	require.NotNil(t, gotQuery)
	assert.Equal(t, "contract", gotQuery["module"])
	assert.Equal(t, "getabi", gotQuery["action"])
	assert.Equal(t, "0xcontract", gotQuery["address"])
	assert.Equal(t, "testkey", gotQuery["apikey"])
}

func TestCheckVerificationNotVerified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Contract source code not verified"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "testkey")
	result := client.CheckVerification(context.Background(), "0xcontract")

	assert.False(t, result.Verified)
	assert.Equal(t, "NOTOK", result.Message)
}

func TestCheckVerificationStatusFieldAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"OK"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "testkey")
	result := client.CheckVerification(context.Background(), "0xcontract")

	assert.False(t, result.Verified)
}

func TestCheckVerificationTransportFailureIsNonFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "testkey")
	result := client.CheckVerification(context.Background(), "0xcontract")

	assert.False(t, result.Verified)
	assert.NotEmpty(t, result.Message)
}

func TestCheckVerificationBadStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "testkey")
	result := client.CheckVerification(context.Background(), "0xcontract")

	assert.False(t, result.Verified)
	assert.Contains(t, result.Message, "403")
}

func TestCheckVerificationMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "testkey")
	result := client.CheckVerification(context.Background(), "0xcontract")

	assert.False(t, result.Verified)
	assert.NotEmpty(t, result.Message)
}

func TestCheckVerificationEmptyMessageDefaultsToUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"1","result":"[]"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "testkey")
	result := client.CheckVerification(context.Background(), "0xcontract")

	assert.True(t, result.Verified)
	assert.Equal(t, "Unknown", result.Message)
}
