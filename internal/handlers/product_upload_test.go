package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseMultipartProductRequest_SetFlags(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("name", "  Wireless Earbuds  ")
	_ = writer.WriteField("price", "1999")
	_ = writer.WriteField("offerPrice", "1499")
	_ = writer.Close()

	req := httptest.NewRequest("PUT", "/api/products/1", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.NameSet || parsed.Name != "Wireless Earbuds" {
		t.Fatalf("expected trimmed name, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 1999 {
		t.Fatalf("expected price=1999, got %+v", parsed)
	}
	if !parsed.OfferPriceSet || parsed.OfferPrice != 1499 {
		t.Fatalf("expected offerPrice=1499, got %+v", parsed)
	}
	if parsed.DescriptionSet || parsed.CategorySet || parsed.ImageSet {
		t.Fatalf("absent fields must not be flagged as set, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_RejectsBadPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("price", "not-a-number")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	if _, err := parseMultipartProductRequest(c); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestSafeDeleteUpload_RefusesOutsideUploads(t *testing.T) {
	if err := safeDeleteUpload("../etc/passwd"); err == nil {
		t.Fatal("expected refusal for traversal path")
	}
	if err := safeDeleteUpload("somewhere/else.png"); err == nil {
		t.Fatal("expected refusal for non-upload path")
	}
	if err := safeDeleteUpload(""); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}
	if err := safeDeleteUpload("uploads/products/missing.png"); err != nil {
		t.Fatalf("missing file should be a no-op, got %v", err)
	}
}
