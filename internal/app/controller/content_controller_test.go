package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/app/service"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContentControllerTest(t *testing.T) (*gin.Engine, service.ContentService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	contentService := service.NewContentService(repository.NewContentRepository(testDB))
	contentController := NewContentController(contentService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("user_role", model.RoleAdmin)
		c.Next()
	})

	router.GET("/content/:type/active", contentController.GetActiveContent)
	admin := router.Group("/admin/content")
	{
		admin.GET("/versions/:id", contentController.GetVersion)
		admin.PUT("/versions/:id", contentController.UpdateVersion)
		admin.DELETE("/versions/:id", contentController.DeleteVersion)
		admin.GET("/:type", contentController.ListHistory)
		admin.POST("/:type", contentController.PublishVersion)
		admin.PUT("/:type/:id/activate", contentController.ActivateVersion)
	}

	return router, contentService
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bannerRequest(title string, texts ...string) ContentVersionRequest {
	req := ContentVersionRequest{Title: title}
	for _, text := range texts {
		req.Items = append(req.Items, ContentItemRequest{
			ItemType: string(model.ItemTypeMessage),
			Text:     text,
		})
	}
	return req
}

func TestContentController_GetActiveContent_FallbackBanner(t *testing.T) {
	router, _ := setupContentControllerTest(t)

	req := httptest.NewRequest("GET", "/content/banner/active", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Content service.ActiveContent `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Content.Fallback)
	require.Len(t, resp.Content.Items, 1)
	assert.Equal(t, service.DefaultBannerText, resp.Content.Items[0].Text)
	assert.Equal(t, service.DefaultBannerIcon, resp.Content.Items[0].Icon)
}

func TestContentController_GetActiveContent_InvalidType(t *testing.T) {
	router, _ := setupContentControllerTest(t)

	req := httptest.NewRequest("GET", "/content/popup/active", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CONTENT_INVALID_TYPE")
}

func TestContentController_GetActiveContent_CollectionRequiresKind(t *testing.T) {
	router, _ := setupContentControllerTest(t)

	req := httptest.NewRequest("GET", "/content/collection/active", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CONTENT_KIND_REQUIRED")
}

func TestContentController_PublishThenRollbackFlow(t *testing.T) {
	router, _ := setupContentControllerTest(t)

	w := postJSON(t, router, "/admin/content/banner", bannerRequest("여름 배너", "전 상품 무료 배송"))
	require.Equal(t, http.StatusCreated, w.Code)

	var first struct {
		Version model.ContentVersion `json:"version"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.Version.IsActive)

	// 저장 즉시 공개 화면에 반영된다
	req := httptest.NewRequest("GET", "/content/banner/active", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "전 상품 무료 배송")
	assert.NotContains(t, resp.Body.String(), service.DefaultBannerText)

	w = postJSON(t, router, "/admin/content/banner", bannerRequest("가을 배너", "신상품 입고"))
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/content/banner/active", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Contains(t, resp.Body.String(), "신상품 입고")

	// 이전 버전 활성화로 롤백
	req = httptest.NewRequest("PUT", fmt.Sprintf("/admin/content/banner/%d/activate", first.Version.ID), nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	req = httptest.NewRequest("GET", "/content/banner/active", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Contains(t, resp.Body.String(), "전 상품 무료 배송")
}

func TestContentController_PublishVersion_MissingTitle(t *testing.T) {
	router, _ := setupContentControllerTest(t)

	w := postJSON(t, router, "/admin/content/banner", map[string]interface{}{
		"items": []map[string]interface{}{{"item_type": "message", "text": "무제"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestContentController_ActivateVersion_NotFound(t *testing.T) {
	router, _ := setupContentControllerTest(t)

	req := httptest.NewRequest("PUT", "/admin/content/banner/9999/activate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CONTENT_NOT_FOUND")
}

func TestContentController_ListHistory_NewestFirst(t *testing.T) {
	router, _ := setupContentControllerTest(t)

	for _, title := range []string{"첫번째", "두번째", "세번째"} {
		w := postJSON(t, router, "/admin/content/banner", bannerRequest(title, "안내"))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest("GET", "/admin/content/banner", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Versions []model.ContentVersion `json:"versions"`
		Count    int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, "세번째", resp.Versions[0].Title)
	assert.Equal(t, "첫번째", resp.Versions[2].Title)
}

func TestContentController_DeleteVersion(t *testing.T) {
	router, contentService := setupContentControllerTest(t)

	version, err := contentService.PublishVersion(model.ContentTypeBanner, model.KindNone, service.ContentVersionInput{
		Title: "삭제 대상",
		Items: []service.ContentItemInput{{ItemType: model.ItemTypeMessage, Text: "안내"}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/admin/content/versions/%d", version.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", fmt.Sprintf("/admin/content/versions/%d", version.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
