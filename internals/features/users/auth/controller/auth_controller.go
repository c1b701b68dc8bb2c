package controller

import (
	"errors"
	"log"
	"strings"

	"onboardku_backend/internals/configs"
	authdto "onboardku_backend/internals/features/users/auth/dto"
	authservice "onboardku_backend/internals/features/users/auth/service"
	usermodel "onboardku_backend/internals/features/users/model"
	helper "onboardku_backend/internals/helpers"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:       db,
		Validate: validator.New(),
	}
}

// =============================
// POST /api/auth/register
// =============================
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req authdto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var role usermodel.RoleModel
	if err := ctrl.DB.Where("role = ?", req.Role).First(&role).Error; err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := usermodel.UserModel{
		RoleID:      role.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DOB:         req.DOB,
		Address:     req.Address,
		Gender:      req.Gender,
		Nationality: req.Nationality,
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	cred := usermodel.CredentialModel{
		UserID:      user.ID,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Username:    strings.TrimSpace(req.Username),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Password:    string(hash),
	}
	if err := tx.Create(&cred).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusConflict, "Email, username, or phone number already registered")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to commit transaction")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registration successful", authdto.AuthUserResponse{
		ID:       user.ID,
		FullName: user.FullName(),
		Email:    cred.Email,
		Username: cred.Username,
		Role:     role.Role,
	})
}

// =============================
// POST /api/auth/login
// =============================
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req authdto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ident := strings.TrimSpace(req.Identifier)
	var cred usermodel.CredentialModel
	err := ctrl.DB.
		Where("email = ? OR username = ? OR phone_number = ?", strings.ToLower(ident), ident, ident).
		First(&cred).Error
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(req.Password)) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return ctrl.issueTokens(c, cred.UserID, &cred)
}

// =============================
// POST /api/auth/login/google
// =============================
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req authdto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil || claimSet.Email == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	var cred usermodel.CredentialModel
	if err := ctrl.DB.Where("email = ?", strings.ToLower(claimSet.Email)).First(&cred).Error; err != nil {
		// Staff accounts are provisioned by admins; Google sign-in never
		// self-registers.
		return helper.Error(c, fiber.StatusForbidden, "No account registered for this Google email")
	}

	return ctrl.issueTokens(c, cred.UserID, &cred)
}

// =============================
// POST /api/auth/refresh-token
// =============================
func (ctrl *AuthController) RefreshToken(c *fiber.Ctx) error {
	refresh := helper.GetRefreshTokenFromCookie(c)
	if refresh == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	tok, err := jwt.Parse(refresh, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	row, err := authservice.FindActiveRefreshToken(ctrl.DB, refresh)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Unknown refresh token")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Database error")
	}

	// ROTATE: the old refresh token dies with this call.
	if err := authservice.RevokeRefreshToken(ctrl.DB, row.ID); err != nil {
		log.Printf("[AUTH] revoke old refresh failed: %v", err)
	}

	return ctrl.issueTokens(c, userID, nil)
}

// =============================
// POST /api/auth/logout
// =============================
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	if raw := helper.GetRawAccessToken(c); raw != "" {
		if err := authservice.BlacklistAccessToken(ctrl.DB, raw); err != nil {
			log.Printf("[AUTH] blacklist failed: %v", err)
		}
	}
	if userID, err := helper.GetUserIDFromToken(c); err == nil {
		if err := authservice.RevokeAllRefreshTokens(ctrl.DB, userID); err != nil {
			log.Printf("[AUTH] revoke refresh tokens failed: %v", err)
		}
	}
	authservice.ClearRefreshCookie(c)
	return helper.Success(c, "Logged out", nil)
}

// =============================
// GET /api/auth/me
// =============================
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user usermodel.UserModel
	if err := ctrl.DB.Preload("Role").First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	var cred usermodel.CredentialModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&cred).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Credential not found")
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Role
	}
	return helper.Success(c, "OK", authdto.AuthUserResponse{
		ID:       user.ID,
		FullName: user.FullName(),
		Email:    cred.Email,
		Username: cred.Username,
		Role:     roleName,
	})
}

// issueTokens loads the user, refuses suspended accounts, signs the token
// pair and sets the refresh cookie. cred may be nil (refresh flow).
func (ctrl *AuthController) issueTokens(c *fiber.Ctx, userID uuid.UUID, cred *usermodel.CredentialModel) error {
	var user usermodel.UserModel
	if err := ctrl.DB.Preload("Role").First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User not found")
	}
	if user.IsSuspended {
		return helper.Error(c, fiber.StatusForbidden, "Your account has been suspended")
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Role
	}

	access, err := authservice.BuildAccessToken(&user, roleName)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refresh, err := authservice.BuildRefreshToken(user.ID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to sign refresh token")
	}
	if err := authservice.StoreRefreshToken(ctrl.DB, c, user.ID, refresh); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}
	authservice.SetRefreshCookie(c, refresh)

	if cred == nil {
		cred = &usermodel.CredentialModel{}
		if err := ctrl.DB.Where("user_id = ?", user.ID).First(cred).Error; err != nil {
			log.Printf("[AUTH] load credential failed: %v", err)
		}
	}

	return helper.Success(c, "Login successful", authdto.LoginResponse{
		AccessToken: access,
		User: authdto.AuthUserResponse{
			ID:       user.ID,
			FullName: user.FullName(),
			Email:    cred.Email,
			Username: cred.Username,
			Role:     roleName,
		},
	})
}
