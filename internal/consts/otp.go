package consts

// OTPPurpose 验证码用途。一个身份同一时刻只有一种用途的验证码处于待验证状态。
type OTPPurpose string

const (
	OTPPurposeSignup OTPPurpose = "signup"
	OTPPurposeReset  OTPPurpose = "reset"
)
