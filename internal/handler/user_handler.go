/**
* Name: 			user_handler.go
* Description: 		프로필 조회/수정 HTTP 핸들러
* Workflow: 		프로필 조회(없으면 생성), 부분 수정, 음성 입력으로 타임라인 갱신
 */

package handler

import (
	"errors"
	"io"
	"net/http"

	"RealEgo_Backend/internal/llm"
	"RealEgo_Backend/internal/middleware"
	"RealEgo_Backend/internal/models"
	"RealEgo_Backend/internal/timeline"

	"github.com/gin-gonic/gin"
)

// 음성 업로드 최대 크기
const maxVoiceBytes = 25 << 20

// GetProfile godoc
// @Summary      내 프로필 조회
// @Description  프로필이 없으면 빈 프로필을 생성하여 반환합니다.
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.Profile
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /users/me/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	account := middleware.CurrentAccount(c)
	profile, err := h.store.GetProfile(c.Request.Context(), account.ID)
	if err != nil {
		internalError(c, h.logger, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      내 프로필 부분 수정
// @Description  요청에 포함된 필드만 변경하고 나머지는 유지합니다.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.ProfileUpdate true "변경할 필드"
// @Success      200 {object} models.Profile
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /users/me/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if update.HistoryLimit != nil && *update.HistoryLimit < 1 {
		abortWithDetail(c, http.StatusBadRequest, "history_limit must be positive")
		return
	}
	if update.TimelineData != nil {
		if _, err := timeline.Parse(*update.TimelineData); err != nil {
			abortWithDetail(c, http.StatusBadRequest, "timeline_data must be a JSON object")
			return
		}
	}

	account := middleware.CurrentAccount(c)
	profile, err := h.store.UpdateProfile(c.Request.Context(), account.ID, update)
	if err != nil {
		internalError(c, h.logger, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileFromVoice godoc
// @Summary      음성으로 타임라인 갱신
// @Description  오디오를 텍스트로 변환한 뒤 LLM으로 타임라인 카테고리를 추출하여 기존 타임라인에 병합합니다.
// @Description  언급되지 않은 카테고리는 그대로 유지됩니다.
// @Tags         Users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "오디오 파일"
// @Success      200 {object} models.Profile
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse
// @Router       /users/me/profile/voice [post]
func (h *Handler) UpdateProfileFromVoice(c *gin.Context) {
	if h.extractor == nil {
		abortWithDetail(c, http.StatusServiceUnavailable, "Voice input is not configured")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Audio file is required")
		return
	}
	if fileHeader.Size > maxVoiceBytes {
		abortWithDetail(c, http.StatusBadRequest, "Audio file is too large")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Failed to read audio file")
		return
	}
	audio, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Failed to read audio file")
		return
	}

	ctx := c.Request.Context()
	account := middleware.CurrentAccount(c)
	profile, err := h.store.GetProfile(ctx, account.ID)
	if err != nil {
		internalError(c, h.logger, "Failed to load profile", err)
		return
	}

	transcript, extracted, err := h.extractor.ExtractFromVoice(ctx, audio, fileHeader.Filename, profile.TimelineData)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrTranscription):
			internalError(c, h.logger, "Transcription failed", err)
		case errors.Is(err, llm.ErrExtraction):
			internalError(c, h.logger, "Failed to extract timeline data", err)
		default:
			internalError(c, h.logger, "Voice processing failed", err)
		}
		return
	}
	h.logger.Info("voice profile update", "account_id", account.ID, "transcript_chars", len(transcript))

	merged, err := timeline.MergeJSON(profile.TimelineData, extracted)
	if err != nil {
		internalError(c, h.logger, "Failed to merge timeline data", err)
		return
	}

	updated, err := h.store.UpdateProfile(ctx, account.ID, models.ProfileUpdate{TimelineData: &merged})
	if err != nil {
		internalError(c, h.logger, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
