package account

import (
	"regexp"
	"strings"
)

const otpLength = 6

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	otpRe   = regexp.MustCompile(`^\d{6}$`)
)

func ValidateEmail(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address."}
	}
	return nil
}

// ValidateSignup checks fields in form order and reports the first problem only.
func ValidateSignup(req SignupRequest) error {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return &ValidationError{Field: "full_name", Message: "Please enter your full name."}
	}
	if !nameRe.MatchString(name) {
		return &ValidationError{Field: "full_name", Message: "Name can only contain letters and spaces."}
	}
	if !phoneRe.MatchString(req.Phone) {
		return &ValidationError{Field: "phone", Message: "Phone number must contain exactly 10 digits."}
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if strings.TrimSpace(req.Password) == "" || len(req.Password) < 6 {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters long."}
	}
	if req.Password != req.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "Passwords do not match."}
	}
	return nil
}

func ValidateLogin(req LoginRequest) error {
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return &ValidationError{Field: "password", Message: "Please enter your password."}
	}
	return nil
}

func ValidateOTP(otp string) error {
	if !otpRe.MatchString(otp) {
		return &ValidationError{Field: "otp", Message: "Please enter the 6-digit verification code."}
	}
	return nil
}
