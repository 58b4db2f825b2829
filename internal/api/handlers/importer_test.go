package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wealthos/wealth-os-backend/internal/api/handlers"
	"github.com/wealthos/wealth-os-backend/internal/service"
	"github.com/wealthos/wealth-os-backend/internal/testutil"
)

const importCSVHeader = "investment_id,date,type,amount,currency,quantity,price_per_unit,notes\n"

// TestImportHandler_Transactions tests the POST /api/import/transactions
// endpoint with both supported body shapes.
func TestImportHandler_Transactions(t *testing.T) {
	t.Run("POST with raw CSV body imports rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewImportHandler(testutil.NewTestImportService(t, db))

		entity := testutil.CreateEntity(t, db, "HoldCo")
		inv := testutil.NewInvestment(entity.ID).Build(t, db)

		csv := importCSVHeader + inv.ID + ",2023-01-15,Buy,10000,CAD,100,100,\n"
		req := httptest.NewRequest(http.MethodPost, "/api/import/transactions", strings.NewReader(csv))
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response service.ImportResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Imported != 1 {
			t.Errorf("Expected 1 imported row, got %d", response.Imported)
		}
	})

	t.Run("POST with multipart file field imports rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewImportHandler(testutil.NewTestImportService(t, db))

		entity := testutil.CreateEntity(t, db, "HoldCo")
		inv := testutil.NewInvestment(entity.ID).Build(t, db)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "transactions.csv")
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		csv := importCSVHeader + inv.ID + ",2023-01-15,Buy,10000,CAD,,,\n"
		if _, err := part.Write([]byte(csv)); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/import/transactions", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response service.ImportResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Imported != 1 {
			t.Errorf("Expected 1 imported row, got %d", response.Imported)
		}
	})

	t.Run("POST with wrong headers returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewImportHandler(testutil.NewTestImportService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/import/transactions",
			strings.NewReader("id,when,kind\n"))
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
