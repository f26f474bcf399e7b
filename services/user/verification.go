package user

import (
	"context"
	"fmt"
	"time"

	"croppulse/config"
	"croppulse/models"
	"croppulse/utils"

	"go.uber.org/zap"
)

func (s *DefaultAccountService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultAccountService) codeLength() int {
	if n := config.AppConfig.OTPLength; n > 0 {
		return n
	}
	return utils.DefaultVerificationCodeLength
}

func (s *DefaultAccountService) codeValidity() time.Duration {
	if secs := config.AppConfig.OTPValiditySecs; secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 10 * time.Minute
}

// RequestVerificationCode (re)issues a verification code over SMS. An
// unexpired code is resent rather than replaced, so a farmer tapping the
// button twice does not invalidate the SMS already in flight.
func (s *DefaultAccountService) RequestVerificationCode(ctx context.Context, phone string) error {
	acct, err := s.Repo.GetByPhone(ctx, utils.FormatPhoneNumber(phone))
	if err != nil {
		return err
	}
	if acct == nil {
		return ErrAccountNotFound
	}
	if acct.IsVerified {
		return ErrAlreadyVerified
	}

	code := acct.VerificationCode
	if code == "" || s.codeAge(acct) > s.codeValidity() {
		code, err = utils.GenerateVerificationCode(s.codeLength())
		if err != nil {
			return err
		}
		now := s.now()
		if err := s.Repo.SetVerificationCode(ctx, acct.ID, code, now); err != nil {
			return err
		}
		acct.VerificationCode = code
		acct.CodeIssuedAt = &now
	}
	return s.deliverCode(ctx, acct)
}

func (s *DefaultAccountService) codeAge(acct *models.Account) time.Duration {
	if acct.CodeIssuedAt == nil {
		return s.codeValidity() + time.Second
	}
	return s.now().Sub(*acct.CodeIssuedAt)
}

func (s *DefaultAccountService) deliverCode(ctx context.Context, acct *models.Account) error {
	logger := utils.GetLogger()
	message := fmt.Sprintf("Your CropPulse verification code is %s. It expires in %d minutes.",
		acct.VerificationCode, int(s.codeValidity().Minutes()))
	if err := s.SMS.Send(ctx, acct.PhoneNumber, message); err != nil {
		logger.Error("verification SMS failed",
			zap.String("account_id", acct.ID),
			zap.Error(err))
		return SMSDeliveryError{Cause: err}
	}
	return nil
}

// VerifyPhone checks the submitted code and, on success, marks the account
// verified and opens a session. The stored code is consumed atomically so it
// can never be replayed.
func (s *DefaultAccountService) VerifyPhone(ctx context.Context, phone, code string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	acct, err := s.Repo.GetByPhone(ctx, utils.FormatPhoneNumber(phone))
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrAccountNotFound
	}
	if code == "" || acct.VerificationCode == "" || acct.VerificationCode != code {
		return nil, ErrInvalidCode
	}
	if s.codeAge(acct) > s.codeValidity() {
		return nil, ErrCodeExpired
	}

	consumed, err := s.Repo.ConsumeVerificationCode(ctx, acct.ID, code)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// Lost the race against a concurrent verify with the same code.
		return nil, ErrInvalidCode
	}

	now := s.now()
	if err := s.Repo.SetLastLogin(ctx, acct.ID, now); err != nil {
		logger.Warn("failed to record last login", zap.Error(err))
	}
	logger.Info("phone verified", zap.String("account_id", acct.ID))

	return s.issueSession(acct)
}
