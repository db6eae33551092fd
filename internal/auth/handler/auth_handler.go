package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/dto"
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/service"
	autherror "github.com/SupermaxiMarket/pme-freelance-assistant/internal/errors"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	log          *zap.Logger
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		log:          log,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	user, tokens, err := h.userService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "email already in use",
			})
		}
		return h.internalError(c, "registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "registration successful",
		"user":    dto.NewUserOutput(user),
		"tokens":  tokens,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	user, tokens, err := h.userService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			return unauthorized(c, "invalid email or password")
		}
		return h.internalError(c, "login failed", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "login successful",
		"user":    dto.NewUserOutput(user),
		"tokens":  tokens,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if input.RefreshToken == "" {
		return unauthorized(c, "refresh token missing")
	}

	accessToken, err := h.userService.Refresh(c.Context(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidToken) || errors.Is(err, autherror.ErrUserNotFound) {
			return unauthorized(c, "invalid or expired refresh token")
		}
		return h.internalError(c, "token refresh failed", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"accessToken": accessToken,
	})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	devToken, err := h.userService.ForgotPassword(c.Context(), input.Email)
	if err != nil {
		return h.internalError(c, "password reset request failed", err)
	}

	// Registered and unregistered emails get the same envelope.
	resp := fiber.Map{
		"success": true,
		"message": "if an account is associated with this email, a reset link has been sent",
	}
	if devToken != "" {
		resp["resetToken"] = devToken
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if input.Token == "" || input.Password == "" {
		return badRequest(c, "token and new password are required")
	}

	if err := h.userService.ResetPassword(c.Context(), input.Token, input.Password); err != nil {
		if errors.Is(err, autherror.ErrInvalidResetToken) {
			return badRequest(c, "invalid or expired token")
		}
		return h.internalError(c, "password reset failed", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "password reset successful",
	})
}

func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.Context(), UserID(c))
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		return h.internalError(c, "failed to fetch profile", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserOutput(user),
	})
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	user, err := h.userService.UpdateProfile(c.Context(), UserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrUserNotFound):
			return notFound(c, "user not found")
		case errors.Is(err, autherror.ErrEmailAlreadyInUse):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "email already in use",
			})
		default:
			return h.internalError(c, "profile update failed", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "profile updated successfully",
		"user":    dto.NewUserOutput(user),
	})
}

// Logout is stateless: tokens are not revocable server-side, the client
// discards them. Known limitation.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "logout successful",
	})
}

func (h *AuthHandler) internalError(c *fiber.Ctx, message string, err error) error {
	// Logged server-side only; nothing internal reaches the caller.
	h.log.Error(message, zap.Error(err), zap.String("path", c.Path()))

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
