/**
* Name: 			auth_handler.go
* Description: 		계정 관련 HTTP 핸들러
* Workflow: 		회원가입, 로그인(토큰 발급), 내 계정 조회
 */

package handler

import (
	"errors"
	"net/http"
	"strings"

	"RealEgo_Backend/internal/auth"
	"RealEgo_Backend/internal/middleware"
	"RealEgo_Backend/internal/storage"

	"github.com/gin-gonic/gin"
)

const loginFailedDetail = "Incorrect username or password"

// /register 요청 바디
type RegisterRequest struct {
	Username string `json:"username" example:"tera"`
	Password string `json:"password" example:"password123"`
}

type AccountResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"tera"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

// Register godoc
// @Summary      회원가입
// @Description  새로운 계정을 생성합니다. 빈 프로필이 함께 생성됩니다.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.RegisterRequest true "회원가입 요청 정보"
// @Success      200 {object} handler.AccountResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// " "으로 입력되는 케이스 방지
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		abortWithDetail(c, http.StatusBadRequest, "Username and password cannot be empty")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(c, h.logger, "Failed to hash password", err)
		return
	}

	account, err := h.store.CreateAccount(c.Request.Context(), req.Username, hash)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			abortWithDetail(c, http.StatusBadRequest, "Username already registered")
			return
		}
		internalError(c, h.logger, "Failed to create user", err)
		return
	}

	h.logger.Info("account registered", "account_id", account.ID)
	c.JSON(http.StatusOK, AccountResponse{ID: account.ID, Username: account.Username})
}

// Login godoc
// @Summary      로그인 (토큰 발급)
// @Description  OAuth2 password grant 형식으로 사용자명과 비밀번호를 받아 Bearer 토큰을 발급합니다.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username formData string true "사용자명"
// @Param        password formData string true "비밀번호"
// @Success      200 {object} handler.TokenResponse
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      429 {object} handler.ErrorResponse "요청 과다"
// @Router       /token [post]
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	account, err := h.store.GetAccountByUsername(c.Request.Context(), username)
	var verifyErr error
	if err != nil {
		// 존재하지 않는 사용자도 같은 bcrypt 비용을 소모
		verifyErr = auth.RejectUnknownUser(password)
	} else {
		verifyErr = auth.VerifyPassword(account.PasswordHash, password)
	}
	if verifyErr != nil {
		// 존재하지 않는 사용자와 비밀번호 오류를 응답에서 구분하지 않음
		h.logger.Info("login failed", "username", username, "user_found", err == nil)
		c.Header("WWW-Authenticate", "Bearer")
		abortWithDetail(c, http.StatusUnauthorized, loginFailedDetail)
		return
	}

	token, err := h.tokens.GenerateToken(account.Username)
	if err != nil {
		internalError(c, h.logger, "Failed to issue token", err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me godoc
// @Summary      내 계정 조회
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.AccountResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /users/me [get]
func (h *Handler) Me(c *gin.Context) {
	account := middleware.CurrentAccount(c)
	c.JSON(http.StatusOK, AccountResponse{ID: account.ID, Username: account.Username})
}
