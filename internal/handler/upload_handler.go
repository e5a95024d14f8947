package handler

import (
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"RealEgo_Backend/internal/middleware"
	"RealEgo_Backend/internal/objectstore"

	"github.com/gin-gonic/gin"
)

type UploadResponse struct {
	Filename string `json:"filename" example:"photo.png"`
	URL      string `json:"url" example:"https://realego-data.tos-s3-cn-beijing.volces.com/user_1/3f1c....png"`
}

// Upload godoc
// @Summary      파일 업로드
// @Description  파일을 계정 전용 경로(user_{id}/)에 새 키로 저장하고 접근 URL을 반환합니다.
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "업로드할 파일"
// @Success      200 {object} handler.UploadResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /upload/ [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "File is required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Failed to read file")
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Failed to read file")
		return
	}

	account := middleware.CurrentAccount(c)
	url, err := h.uploader.Upload(c.Request.Context(), data, account.ID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		internalError(c, h.logger, "Upload failed", err)
		return
	}
	c.JSON(http.StatusOK, UploadResponse{Filename: fileHeader.Filename, URL: url})
}

// ServeFile godoc
// @Summary      업로드 파일 조회
// @Description  로컬 저장소 사용 시 본인 계정 경로의 파일만 반환합니다.
// @Tags         Upload
// @Security     BearerAuth
// @Param        key path string true "객체 키 (user_{id}/...)"
// @Success      200 {file} file "파일"
// @Failure      401 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /files/{key} [get]
func (h *Handler) ServeFile(c *gin.Context) {
	if h.files == nil {
		abortWithDetail(c, http.StatusNotFound, "File not found")
		return
	}
	key := strings.TrimPrefix(path.Clean("/"+c.Param("key")), "/")
	account := middleware.CurrentAccount(c)
	// 다른 계정의 파일 접근 차단
	if !strings.HasPrefix(key, objectstore.AccountPrefix(account.ID)) {
		abortWithDetail(c, http.StatusNotFound, "File not found")
		return
	}

	filePath, err := h.files.Path(key)
	if err != nil {
		abortWithDetail(c, http.StatusNotFound, "File not found")
		return
	}
	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		abortWithDetail(c, http.StatusNotFound, "File not found")
		return
	}
	c.File(filePath)
}

// Health godoc
// @Summary      헬스 체크
// @Tags         System
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
