package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderReturnsTwelveDigitNumber(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signUpAndIn(t, "alice", "pw1")

	w := env.doJSON(t, http.MethodPost, "/api/orders", gin.H{"expectedQuantity": 20, "notes": "first batch"}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Regexp(t, `^\d{12}$`, body["orderNumber"])
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, float64(20), body["expectedQuantity"])
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/orders", gin.H{"expectedQuantity": 20}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signUpAndIn(t, "alice", "pw1")

	w := env.doJSON(t, http.MethodPost, "/api/orders", gin.H{"expectedQuantity": 0}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderByNumber(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signUpAndIn(t, "alice", "pw1")

	w := env.doJSON(t, http.MethodPost, "/api/orders", gin.H{"expectedQuantity": 5}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	orderNumber := decodeBody(t, w)["orderNumber"].(string)

	w = env.doJSON(t, http.MethodGet, "/api/orders/"+orderNumber, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, orderNumber, decodeBody(t, w)["orderNumber"])

	w = env.doJSON(t, http.MethodGet, "/api/orders/000000000000", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decodeBody(t, w)["message"])
}

func TestRecentOrdersCap(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signUpAndIn(t, "alice", "pw1")

	for i := 0; i < 7; i++ {
		w := env.doJSON(t, http.MethodPost, "/api/orders", gin.H{"expectedQuantity": 1}, cookies)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := env.doJSON(t, http.MethodGet, "/api/orders/recent", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var recent []map[string]any
	require.NoError(t, jsonUnmarshal(w.Body.Bytes(), &recent))
	assert.Len(t, recent, 5)

	w = env.doJSON(t, http.MethodGet, "/api/orders", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, jsonUnmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 7)
}

func TestUpdateOrderNumberValidation(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signUpAndIn(t, "alice", "pw1")

	w := env.doJSON(t, http.MethodPost, "/api/orders", gin.H{"expectedQuantity": 5}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	orderID := int64(decodeBody(t, w)["id"].(float64))

	w = env.doJSON(t, http.MethodPut, orderPath(orderID), gin.H{"orderNumber": "123"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Order number must be exactly 12 digits", decodeBody(t, w)["message"])

	w = env.doJSON(t, http.MethodPut, orderPath(orderID), gin.H{"orderNumber": "123456789012", "notes": "renumbered"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order updated successfully", decodeBody(t, w)["message"])

	w = env.doJSON(t, http.MethodGet, "/api/orders/123456789012", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}
