package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository fails the test on any call it was not told to expect.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySku(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func TestInvalidSkuPathIsRejected(t *testing.T) {
	mockRepo := new(MockProductRepository)
	app := setupApp(mockRepo)

	update := validCreateBody()
	delete(update, "sku")

	for _, sku := range []string{"FAL1111111", "ABC-1111111", "FAL-11a1111", "FAL-"} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			var body interface{}
			if method == http.MethodPut {
				body = update
			}
			resp := doJSON(t, app, method, "/api/v1/product/"+sku, body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s %s", method, sku)

			var errResp handlers.ErrorResponse
			decode(t, resp, &errResp)
			assert.Equal(t, "Bad Request", errResp.Error)
			assert.Equal(t, []string{"It must comply with the format FAL-XXXXXXX, where X is a number"}, errResp.Details)
			assert.Equal(t, "/api/v1/product", errResp.Path)
		}
	}

	mockRepo.AssertNotCalled(t, "FindBySku", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(body map[string]interface{})
		details []string
	}{
		{
			name:    "sku without dash",
			mutate:  func(b map[string]interface{}) { b["sku"] = "FAL11111110" },
			details: []string{"It must comply with the format FAL-XXXXXXX, where X is a number"},
		},
		{
			name:    "sku too short",
			mutate:  func(b map[string]interface{}) { b["sku"] = "FAL-111" },
			details: []string{"The value must be between 11 and 12 characters"},
		},
		{
			name:   "sku missing",
			mutate: func(b map[string]interface{}) { delete(b, "sku") },
			details: []string{
				"You must enter a value",
				"The value must be between 11 and 12 characters",
				"It must comply with the format FAL-XXXXXXX, where X is a number",
			},
		},
		{
			name:   "sku too short and malformed",
			mutate: func(b map[string]interface{}) { b["sku"] = "ABC" },
			details: []string{
				"The value must be between 11 and 12 characters",
				"It must comply with the format FAL-XXXXXXX, where X is a number",
			},
		},
		{
			name:   "empty name",
			mutate: func(b map[string]interface{}) { b["name"] = "" },
			details: []string{
				"You must enter a value",
				"The value must be between 3 and 50 characters",
			},
		},
		{
			name:    "blank name",
			mutate:  func(b map[string]interface{}) { b["name"] = "   " },
			details: []string{"You must enter a value"},
		},
		{
			name:    "brand too long",
			mutate:  func(b map[string]interface{}) { b["brand"] = strings.Repeat("b", 51) },
			details: []string{"The value must be between 3 and 50 characters"},
		},
		{
			name:    "price missing",
			mutate:  func(b map[string]interface{}) { delete(b, "price") },
			details: []string{"You must enter a value"},
		},
		{
			name:    "price below minimum",
			mutate:  func(b map[string]interface{}) { b["price"] = 0.99 },
			details: []string{"The minimum value is 1.00"},
		},
		{
			name:    "price above maximum",
			mutate:  func(b map[string]interface{}) { b["price"] = 100000000.00 },
			details: []string{"The maximum value is 99999999.00"},
		},
		{
			name:    "principal image not a url",
			mutate:  func(b map[string]interface{}) { b["principal_image"] = "ftp://localhost/image" },
			details: []string{"It must comply with the URL format"},
		},
		{
			name: "several fields",
			mutate: func(b map[string]interface{}) {
				b["name"] = "ab"
				delete(b, "principal_image")
			},
			details: []string{
				"The value must be between 3 and 50 characters",
				"You must enter a value",
				"It must comply with the URL format",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			app := setupApp(mockRepo)
			body := validCreateBody()
			tt.mutate(body)

			resp := doJSON(t, app, http.MethodPost, "/api/v1/product", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var errResp handlers.ErrorResponse
			decode(t, resp, &errResp)
			assert.Equal(t, 400, errResp.Status)
			assert.Equal(t, tt.details, errResp.Details)
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestCreatePriceBoundsAreInclusive(t *testing.T) {
	for _, price := range []interface{}{1.00, "1.00", 99999999.00, "99999999.00"} {
		app := setupApp(repositories.NewMemoryProductRepository())
		body := validCreateBody()
		body["price"] = price

		resp := doJSON(t, app, http.MethodPost, "/api/v1/product", body)
		assert.Equal(t, http.StatusCreated, resp.StatusCode, "price %v", price)
		resp.Body.Close()
	}
}

func TestOtherImagesAreNotValidated(t *testing.T) {
	app := setupApp(repositories.NewMemoryProductRepository())
	body := validCreateBody()
	body["other_images"] = []string{"not a url", ""}
	delete(body, "size")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/product", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created handlers.ProductResponse
	decode(t, resp, &created)
	assert.Equal(t, []string{"not a url", ""}, created.Data.OtherImages)
	assert.Equal(t, "", created.Data.Size)
}

func TestUpdateValidationUsesSharedRules(t *testing.T) {
	mockRepo := new(MockProductRepository)
	app := setupApp(mockRepo)
	body := validCreateBody()
	delete(body, "sku")
	body["price"] = 0

	resp := doJSON(t, app, http.MethodPut, "/api/v1/product/FAL-1111111", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp handlers.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, []string{"The minimum value is 1.00"}, errResp.Details)
	mockRepo.AssertNotCalled(t, "FindBySku", mock.Anything, mock.Anything)
}

func TestMalformedBody(t *testing.T) {
	app := setupApp(new(MockProductRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/product", strings.NewReader(`{"sku": `))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp handlers.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, []string{"Malformed request body"}, errResp.Details)
}

func TestRepositoryFailureIsInternalError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindAll", mock.Anything).Return(nil, errors.New("connection reset")).Once()
	app := setupApp(mockRepo)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var errResp handlers.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, "Internal Server Error", errResp.Error)
	assert.Equal(t, []string{"Internal Server Error"}, errResp.Details)
	assert.Equal(t, "/api/v1/product", errResp.Path)
	mockRepo.AssertExpectations(t)
}

func TestUnknownRouteUsesErrorBody(t *testing.T) {
	app := setupApp(new(MockProductRepository))

	resp := doJSON(t, app, http.MethodGet, "/api/v1/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp handlers.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, 404, errResp.Status)
	assert.Equal(t, "/api/v1/product", errResp.Path)
}
