package handler

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/dto"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/ratelimit"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/service"
	autherror "github.com/Kashawn-Brown/Career-Tracker-sub003/internal/errors"
)

type AuthHandler struct {
	userService    *service.UserService
	lockoutService *service.LockoutService
	tokenService   service.TokenGenerator
	limiter        ratelimit.Checker
	loginPolicy    ratelimit.Policy
}

func NewAuthHandler(userService *service.UserService, lockoutService *service.LockoutService,
	tokenService service.TokenGenerator, limiter ratelimit.Checker, loginPolicy ratelimit.Policy) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		lockoutService: lockoutService,
		tokenService:   tokenService,
		limiter:        limiter,
		loginPolicy:    loginPolicy,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	// Pre-auth throttle, keyed by source IP and target email so one IP
	// cannot spray accounts and one account cannot be sprayed from one IP.
	key := ratelimit.KeyByIPEmail(input.IPAddress, input.Email)
	decision := h.limiter.Check(c.Context(), key, h.loginPolicy)
	if !decision.Allowed {
		return rateLimited(c, decision)
	}

	tokenPair, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return loginError(c, err)
	}

	h.limiter.Clear(c.Context(), key)

	return c.Status(fiber.StatusOK).JSON(tokenPair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	tokens, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		return tokenError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

// loginError maps the protection core's taxonomy onto response codes. Locked
// and reset-required outcomes are distinguishable so clients can show an
// unlock estimate or route to the reset flow; internal thresholds stay
// internal.
func loginError(c *fiber.Ctx, err error) error {
	var locked *service.AccountLockedError
	if errors.As(err, &locked) {
		body := fiber.Map{
			"error": "account is temporarily locked",
			"code":  "ACCOUNT_LOCKED",
		}
		if locked.Info != nil && locked.Info.UnlockAt != nil {
			body["retry_in"] = service.HumanDuration(time.Until(*locked.Info.UnlockAt))
			body["unlock_at"] = locked.Info.UnlockAt
		}
		return c.Status(fiber.StatusForbidden).JSON(body)
	}

	switch {
	case errors.Is(err, autherror.ErrPasswordResetRequired):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "a password reset is required before logging in",
			"code":  "PASSWORD_RESET_REQUIRED",
		})
	case errors.Is(err, autherror.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid credentials",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}

// tokenError keeps "expired, please refresh" apart from "invalid,
// re-authenticate" and from plain bad input.
func tokenError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, autherror.ErrMissingToken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "refresh token is required",
			"code":  "MISSING_TOKEN",
		})
	case errors.Is(err, autherror.ErrTokenExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "token expired",
			"code":  "TOKEN_EXPIRED",
		})
	case errors.Is(err, autherror.ErrWrongTokenType):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "wrong token type",
			"code":  "WRONG_TOKEN_TYPE",
		})
	case errors.Is(err, autherror.ErrTokenMalformed):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid token",
			"code":  "INVALID_TOKEN",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}

func rateLimited(c *fiber.Ctx, decision ratelimit.Decision) error {
	retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error":    "too many attempts, please try again later",
		"code":     "RATE_LIMITED",
		"retry_in": service.HumanDuration(decision.RetryAfter),
	})
}
