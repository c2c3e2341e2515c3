package api

import (
	"net/http"

	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 인증 처리기
type AuthHandler struct {
	*Deps
}

// NewAuthHandler 인증 처리기 생성
func NewAuthHandler(d *Deps) *AuthHandler {
	return &AuthHandler{Deps: d}
}

// RegisterRequest 회원가입 요청
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"gangnam"`
	Password string `json:"password" binding:"required,min=6,max=50" example:"password123"`
	Email    string `json:"email" binding:"omitempty,email" example:"owner@example.com"`
}

// LoginRequest 로그인 요청 (아이디 또는 이메일)
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"gangnam"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 로그인 응답
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Register 회원가입
// @Summary 회원가입
// @Description 지점 운영 계정을 만든다. 새 계정은 owner 역할로 바로 활성화된다.
// @Tags 인증
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "가입 정보"
// @Success 200 {object} Response{data=models.User} "가입 성공"
// @Failure 400 {object} Response "요청 오류"
// @Failure 500 {object} Response "서버 오류"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		BadRequest(c, "이미 사용 중인 아이디입니다")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "비밀번호 암호화 실패")
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		Role:     models.RoleOwner,
		Status:   models.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		h.internal(c, "계정 생성 실패", err)
		return
	}

	SuccessWithMessage(c, "가입 완료", user)
}

// Login 로그인
// @Summary 로그인
// @Description JWT 토큰 발급
// @Tags 인증
// @Accept json
// @Produce json
// @Param request body LoginRequest true "로그인 정보"
// @Success 200 {object} Response{data=LoginResponse} "로그인 성공"
// @Failure 400 {object} Response "요청 오류"
// @Failure 401 {object} Response "아이디 또는 비밀번호 오류"
// @Failure 429 {object} Response "시도 횟수 초과"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}

	var user models.User
	err := h.DB.WithContext(c.Request.Context()).
		Where("username = ? OR email = ?", req.Username, req.Username).
		First(&user).Error
	if err != nil {
		Unauthorized(c, "아이디 또는 비밀번호가 올바르지 않습니다")
		return
	}

	if user.Status != models.UserStatusActive {
		Error(c, http.StatusForbidden, "잠긴 계정입니다. 관리자에게 문의하세요")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "아이디 또는 비밀번호가 올바르지 않습니다")
		return
	}

	token, err := h.JWT.GenerateToken(user.ID, user.Username, user.Role, h.JWT.TTL())
	if err != nil {
		InternalError(c, "토큰 발급 실패")
		return
	}

	h.log(c).Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("로그인")
	Success(c, LoginResponse{Token: token, UserInfo: user})
}

// GetProfile 내 정보
// @Summary 내 정보 조회
// @Tags 인증
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Failure 401 {object} Response "인증 필요"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	var user models.User
	if err := h.DB.WithContext(c.Request.Context()).First(&user, middleware.GetCurrentUserID(c)).Error; err != nil {
		NotFound(c, "사용자를 찾을 수 없습니다")
		return
	}
	Success(c, user)
}
