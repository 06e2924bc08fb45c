package dto

// CaptchaFields 图形验证码答案，验证码未启用时可省略。
type CaptchaFields struct {
	CaptchaID     string `json:"captchaId"`
	CaptchaAnswer string `json:"captchaAnswer"`
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	CaptchaFields
}

type EmailRequest struct {
	Email string `json:"email" binding:"required"`
	CaptchaFields
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	CaptchaFields
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// LoginResponse 登录成功（密码登录、验证码完成注册）的响应。
type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	Image     string `json:"image"`
	IsAdmin   bool   `json:"isAdmin"`
	ExpiresIn string `json:"expiresIn"`
}

type MeResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Image    string `json:"image"`
	IsAdmin  bool   `json:"isAdmin"`
}

type CaptchaResponse struct {
	Provider     string `json:"provider"`
	CaptchaID    string `json:"captchaId,omitempty"`
	CaptchaImage string `json:"captchaImage,omitempty"`
}

type ResetTokenResponse struct {
	Token string `json:"token"`
}
