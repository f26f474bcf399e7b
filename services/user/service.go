package user

import (
	"context"
	"errors"
	"fmt"

	userRepo "croppulse/database/repository/user"
	"croppulse/models"
	"croppulse/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account for any role, stamps a verification code and
// sends it by SMS. The account is persisted even when the SMS cannot be
// delivered; in that case the error is an SMSDeliveryError and the caller
// should tell the client to retry the code request.
func (s *DefaultAccountService) Register(ctx context.Context, req RegistrationRequest) (*models.Account, error) {
	logger := utils.GetLogger()

	if !req.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}
	phone := utils.FormatPhoneNumber(req.PhoneNumber)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	language := req.Language
	if language == "" {
		language = "sw"
	}
	acct := &models.Account{
		PhoneNumber:  phone,
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		PasswordHash: string(hash),
		County:       req.County,
		Subcounty:    req.Subcounty,
		Ward:         req.Ward,
		Village:      req.Village,
		Language:     language,
		ReceiveSMS:   true,
		ReceivePush:  true,
		IsActive:     true,
	}

	if err := s.createWithCode(ctx, acct); err != nil {
		return nil, err
	}
	logger.Info("account registered",
		zap.String("account_id", acct.ID),
		zap.String("role", string(acct.Role)))

	return acct, s.deliverCode(ctx, acct)
}

// RegisterFarmer is the USSD/app quick-onboarding path: phone plus name is
// enough, location is reverse-geocoded when coordinates are given, and the
// farm profile is created in the same call.
func (s *DefaultAccountService) RegisterFarmer(ctx context.Context, req FarmerRegistrationRequest) (*models.Account, error) {
	logger := utils.GetLogger()
	phone := utils.FormatPhoneNumber(req.PhoneNumber)

	county := req.County
	subcounty, ward, village := "", "", ""
	if county == "" && req.Latitude != nil && req.Longitude != nil && s.Geocoder != nil {
		loc, err := s.Geocoder.Reverse(ctx, *req.Latitude, *req.Longitude)
		if err != nil {
			logger.Warn("reverse geocoding failed, registering without location",
				zap.Error(err))
		} else {
			county = loc.County
			subcounty = loc.Subcounty
			ward = loc.Ward
			village = loc.Village
		}
	}

	language := req.Language
	if language == "" {
		language = "sw"
	}
	acct := &models.Account{
		PhoneNumber: phone,
		FullName:    req.FullName,
		Role:        models.RoleFarmer,
		County:      county,
		Subcounty:   subcounty,
		Ward:        ward,
		Village:     village,
		Language:    language,
		ReceiveSMS:  true,
		ReceivePush: true,
		IsActive:    true,
	}
	if err := s.createWithCode(ctx, acct); err != nil {
		return nil, err
	}

	if req.PrimaryCrop != "" || req.FarmSize > 0 {
		profile := &models.FarmerProfile{
			AccountID:        acct.ID,
			PrimaryCrop:      req.PrimaryCrop,
			FarmSizeHectares: req.FarmSize,
			Latitude:         req.Latitude,
			Longitude:        req.Longitude,
		}
		if err := s.Repo.UpsertFarmerProfile(ctx, profile); err != nil {
			return nil, err
		}
		acct.FarmerProfile = profile
	}
	logger.Info("farmer registered", zap.String("account_id", acct.ID))

	return acct, s.deliverCode(ctx, acct)
}

func (s *DefaultAccountService) createWithCode(ctx context.Context, acct *models.Account) error {
	code, err := utils.GenerateVerificationCode(s.codeLength())
	if err != nil {
		return err
	}
	now := s.now()
	acct.VerificationCode = code
	acct.CodeIssuedAt = &now

	if err := s.Repo.Create(ctx, acct); err != nil {
		if errors.Is(err, userRepo.ErrDuplicatePhone) {
			return ErrPhoneTaken
		}
		return err
	}
	return nil
}

func (s *DefaultAccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	acct, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

func (s *DefaultAccountService) UpdateProfile(ctx context.Context, id string, req ProfileUpdateRequest) (*models.Account, error) {
	acct, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		acct.FullName = *req.FullName
	}
	if req.Email != nil {
		acct.Email = *req.Email
	}
	if req.County != nil {
		acct.County = *req.County
	}
	if req.Subcounty != nil {
		acct.Subcounty = *req.Subcounty
	}
	if req.Ward != nil {
		acct.Ward = *req.Ward
	}
	if req.Village != nil {
		acct.Village = *req.Village
	}
	if req.Language != nil {
		acct.Language = *req.Language
	}
	if req.ReceiveSMS != nil {
		acct.ReceiveSMS = *req.ReceiveSMS
	}
	if req.ReceivePush != nil {
		acct.ReceivePush = *req.ReceivePush
	}

	if err := s.Repo.UpdateProfile(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (s *DefaultAccountService) UpdateFarmerProfile(ctx context.Context, id string, p models.FarmerProfile) (*models.Account, error) {
	acct, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if acct.Role != models.RoleFarmer {
		return nil, fmt.Errorf("account %s is not a farmer", id)
	}
	p.AccountID = id
	if err := s.Repo.UpsertFarmerProfile(ctx, &p); err != nil {
		return nil, err
	}
	acct.FarmerProfile = &p
	return acct, nil
}

func (s *DefaultAccountService) UpdateFCMToken(ctx context.Context, id, token string) error {
	if _, err := s.GetAccount(ctx, id); err != nil {
		return err
	}
	return s.Repo.UpdateFCMToken(ctx, id, token)
}

func (s *DefaultAccountService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	acct, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Repo.UpdatePassword(ctx, id, string(hash))
}

func (s *DefaultAccountService) ListAccounts(ctx context.Context, role models.Role, limit, offset int) ([]*models.Account, int, error) {
	return s.Repo.List(ctx, role, limit, offset)
}
