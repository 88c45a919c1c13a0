package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/workforce-hub/hrms/backend/internal/domain"
	"github.com/workforce-hub/hrms/backend/internal/utils"
)

type AuthClaims struct {
	Role        string `json:"role"`
	CompanyName string `json:"companyName"`
	jwt.RegisteredClaims
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "ok", nil)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyName string `json:"companyName" validate:"required,min=2,max=100,companyname"`
		Name        string `json:"name" validate:"required,min=2,max=50,personname"`
		Email       string `json:"email" validate:"required,email,max=100"`
		Phone       string `json:"phone" validate:"required,phone"`
		Password    string `json:"password" validate:"required,min=8,max=50,strongpassword"`
		Logo        string `json:"logo"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 先检查邮箱，避免为已注册的邮箱计算哈希
	exists, err := h.repository.CheckEmailIfExists(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if exists {
		h.errorResponse(w, r, http.StatusConflict, "Email is already registered")
		return
	}

	now := h.now()
	user := &domain.User{
		Email:       req.Email,
		Name:        req.Name,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		Role:        domain.RoleAdmin, // 注册的用户是公司的管理员
		Avatar:      utils.AvatarFromName(req.Name),
		Phone:       req.Phone,
		Logo:        req.Logo,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}

	prefix := utils.LoginIDPrefix(req.CompanyName, req.Name, now.Year())
	created, err := h.repository.SignupWithLoginIDPrefix(user, prefix)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	// 登录 ID 通过邮件发给用户；账户已经保存，邮件发送失败只记录日志
	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   created.Email,
		Data: domain.WelcomeMailData{
			Name:        created.Name,
			CompanyName: created.CompanyName,
			LoginID:     created.LoginID,
		},
	}); err != nil {
		slog.Error("无法发送欢迎邮件", "loginId", created.LoginID, "error", err)
	}

	h.createdResponse(w, r, "User registered successfully", created)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.Login(req.Identifier, req.Password)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	// 生成 JWT
	now := time.Now()
	expiration := now.Add(time.Duration(h.config.JWT.Expiration) * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role:        string(user.Role),
		CompanyName: user.CompanyName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.LoginID,
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通过 http-only 的 cookie 返回给客户端
	cookie := &http.Cookie{
		Name:     h.config.Auth.CookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "Login successful", user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    h.config.Auth.CookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "Logout successful", nil)
}

func resetPasswordKey(loginID string) string {
	return fmt.Sprintf("otp_%s_reset_password", loginID)
}

func resetPasswordAttemptsKey(loginID string) string {
	return fmt.Sprintf("otp_%s_reset_password_attempts", loginID)
}

// recordFailedOTPAttempt 记录一次验证失败，达到上限后验证码作废
func (h *Handler) recordFailedOTPAttempt(ctx context.Context, loginID string) error {
	key := resetPasswordAttemptsKey(loginID)

	attempts, err := h.otpStore.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if attempts == 1 {
		if err := h.otpStore.Expire(ctx, key, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
			return err
		}
	}
	if attempts >= int64(h.config.OTP.MaxAttempts) {
		return h.otpStore.Del(ctx, resetPasswordKey(loginID), key).Err()
	}
	return nil
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	const msg = "A verification code has been sent by email"

	user, err := h.repository.FindUser(req.Identifier, req.Identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// 用户不存在时同样返回成功，不暴露账户是否存在
			h.successResponse(w, r, msg, nil)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	// 生成 OTP 并将 OTP 存到 redis
	otp, err := utils.GenerateRandomOTP()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	// 新的验证码重新计算失败次数
	if err := h.otpStore.Del(ctx, resetPasswordAttemptsKey(user.LoginID)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := h.otpStore.Set(ctx, resetPasswordKey(user.LoginID), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   user.Email,
		Data: domain.ResetPasswordMailData{
			Name:       user.Name,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // 邮件中显示的过期时间以分钟为单位，而配置中以秒为单位
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, msg, nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier" validate:"required"`
		OTP        string `json:"otp" validate:"required,len=6,numeric"`
		Password   string `json:"password" validate:"required,min=8,max=50,strongpassword"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.FindUser(req.Identifier, req.Identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid verification code")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	// 检验 OTP
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	otp, err := h.otpStore.Get(ctx, resetPasswordKey(user.LoginID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid verification code")
			return
		}
		h.internalServerError(w, r, err)
		return
	}
	if otp != req.OTP {
		if err := h.recordFailedOTPAttempt(ctx, user.LoginID); err != nil {
			slog.Error("无法记录验证码失败次数", "loginId", user.LoginID, "error", err)
		}
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid verification code")
		return
	}

	if _, err := h.repository.UpdateUser(user.LoginID, domain.UserPatch{Password: &req.Password}); err != nil {
		h.domainError(w, r, err)
		return
	}

	// 删除 OTP
	if err := h.otpStore.Del(ctx, resetPasswordKey(user.LoginID), resetPasswordAttemptsKey(user.LoginID)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Password has been reset", nil)
}

// publishMail 将邮件序列化后发送到消息队列
func (h *Handler) publishMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
