package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/internal/validator"
	"estatehub_backend/pkg/apperrors"
)

type stubPropertyService struct {
	list *dto.ListResult[dto.PropertyResponse]
	get  *dto.PropertyResponse
	err  error
}

func (s *stubPropertyService) List(context.Context, services.Viewer, dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error) {
	return s.list, s.err
}

func (s *stubPropertyService) Get(context.Context, string, bool) (*dto.PropertyResponse, error) {
	return s.get, s.err
}

func (s *stubPropertyService) Create(context.Context, string, *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	return s.get, s.err
}

func (s *stubPropertyService) Update(context.Context, services.Viewer, string, *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	return s.get, s.err
}

func (s *stubPropertyService) Delete(context.Context, services.Viewer, string) error {
	return s.err
}

func (s *stubPropertyService) MarkSold(context.Context, services.Viewer, string) (*dto.PropertyResponse, error) {
	return s.get, s.err
}

func (s *stubPropertyService) ListByAgent(context.Context, services.Viewer, string, dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error) {
	return s.list, s.err
}

func (s *stubPropertyService) ListMine(context.Context, string, dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error) {
	return s.list, s.err
}

func (s *stubPropertyService) SetStatus(context.Context, string, models.PropertyStatus) (*dto.PropertyResponse, error) {
	return s.get, s.err
}

func newPropertyRouter(svc services.PropertyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPropertyHandler(NewBaseHandler(validator.New()), svc, nil)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestPropertyHandler_ListEnvelope(t *testing.T) {
	svc := &stubPropertyService{
		list: &dto.ListResult[dto.PropertyResponse]{
			Items: []dto.PropertyResponse{{ID: "p1", Title: "Loft downtown"}},
			Total: 25,
			Page:  2,
			Pages: 3,
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?page=2&limit=10", nil)
	newPropertyRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Properties []dto.PropertyResponse `json:"properties"`
		Total      int64                  `json:"total"`
		Page       int                    `json:"page"`
		Pages      int                    `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Properties, 1)
	assert.Equal(t, "Loft downtown", body.Properties[0].Title)
	assert.EqualValues(t, 25, body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 3, body.Pages)
}

func TestPropertyHandler_NotFoundEnvelope(t *testing.T) {
	svc := &stubPropertyService{err: apperrors.ErrNotFound(errors.New("no such property"))}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/missing", nil)
	newPropertyRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Domain  string `json:"domain"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error.Code)
	assert.NotEmpty(t, body.Error.Message)
}

func TestPropertyHandler_ValidationErrorEnvelope(t *testing.T) {
	svc := &stubPropertyService{err: apperrors.ValidationError(map[string]string{"priceMin": "must be a number"})}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?priceMin=cheap", nil)
	newPropertyRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "must be a number", body.Error.Details["priceMin"])
}
