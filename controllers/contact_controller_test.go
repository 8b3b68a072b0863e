package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abderrahm4ne/ix-project/models"
)

func TestSendMessage(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter()

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedFields []string
	}{
		{
			name: "Valid message",
			requestBody: map[string]interface{}{
				"name":    "Jon Doe",
				"email":   "jon@example.com",
				"subject": "Delivery question",
				"message": "When does my order ship?",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Subject is optional",
			requestBody: map[string]interface{}{
				"name":    "Jon Doe",
				"email":   "jon@example.com",
				"message": "Hello there",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Short name and short message reported together",
			requestBody: map[string]interface{}{
				"name":    "J",
				"email":   "jon@example.com",
				"message": "hey",
			},
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"name", "message"},
		},
		{
			name:           "Empty payload",
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"name", "email", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := performJSON(t, router, http.MethodPost, "/api/send-message", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if len(tt.expectedFields) > 0 {
				assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
				fields := response["error"].(map[string]interface{})["fields"].(map[string]interface{})
				for _, field := range tt.expectedFields {
					assert.Contains(t, fields, field)
				}
				return
			}

			contact := response["contact"].(map[string]interface{})
			assert.False(t, contact["read"].(bool), "new messages start unread")
		})
	}

	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAdminMessageOperations(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter()

	contact := models.ContactMessage{
		Name:    "Jon Doe",
		Email:   "jon@example.com",
		Message: "Hello there",
	}
	assert.NoError(t, db.Create(&contact).Error)

	t.Run("Listing requires admin", func(t *testing.T) {
		w, _ := performJSON(t, router, http.MethodGet, "/api/admin/show-messages", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w, _ = performJSON(t, router, http.MethodGet, "/api/admin/show-messages", nil, userCookie(t))
		assert.Equal(t, http.StatusForbidden, w.Code)

		w, _ = performJSON(t, router, http.MethodGet, "/api/admin/show-messages", nil, adminCookie(t))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Mark read", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch,
			fmt.Sprintf("/api/admin/read-message/%d", contact.ID), nil, adminCookie(t))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, response["contact"].(map[string]interface{})["read"].(bool))

		var updated models.ContactMessage
		assert.NoError(t, db.First(&updated, contact.ID).Error)
		assert.True(t, updated.Read)
	})

	t.Run("Delete message", func(t *testing.T) {
		w, _ := performJSON(t, router, http.MethodDelete,
			fmt.Sprintf("/api/admin/delete-message/%d", contact.ID), nil, adminCookie(t))
		assert.Equal(t, http.StatusOK, w.Code)

		w, response := performJSON(t, router, http.MethodDelete,
			fmt.Sprintf("/api/admin/delete-message/%d", contact.ID), nil, adminCookie(t))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "CONTACT_NOT_FOUND", errorCode(response))
	})

	t.Run("Mark read on missing message is 404", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch,
			"/api/admin/read-message/4242", nil, adminCookie(t))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "CONTACT_NOT_FOUND", errorCode(response))
	})
}
