package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/eventhub/eventhub/internal/mailer"
	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/repository"
	"github.com/eventhub/eventhub/pkg/token"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken          = errors.New("this username is already registered")
	ErrEmailTaken             = errors.New("this email is already registered")
	ErrWeakPassword           = errors.New("password does not meet the policy")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrAccountInactive        = errors.New("account is not activated; please check your email")
	ErrInvalidActivationToken = errors.New("invalid or expired activation link")
	ErrUnknownRole            = errors.New("unknown role")
	ErrSuperuserDelete        = errors.New("superuser cannot be deleted")
)

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[@#$%^&+=]`)
)

type RegisterInput struct {
	Username        string
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Activate(ctx context.Context, userID uint, activationToken string) (*models.User, bool, error)
	Authenticate(ctx context.Context, username, password string) (string, *models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	AssignRole(ctx context.Context, userID uint, role models.Role) (*models.User, error)
	DeleteUser(ctx context.Context, userID uint) error
}

type accountService struct {
	userRepo  repository.UserRepository
	signer    *token.Signer
	mail      *mailer.Mailer
	jwtSecret []byte
}

func NewAccountService(
	userRepo repository.UserRepository,
	signer *token.Signer,
	mail *mailer.Mailer,
	jwtSecret string,
) AccountService {
	return &accountService{
		userRepo:  userRepo,
		signer:    signer,
		mail:      mail,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register creates an inactive account with the default User role and
// enqueues the activation email.
func (s *accountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsActive:     false,
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.mail != nil {
		s.mail.SendAccountActivation(user, s.signer.ActivationToken(user.ID, user.Email, user.PasswordHash))
	}

	return user, nil
}

// Activate flips is_active exactly once. The second return reports whether
// the account was already active; redeeming the link again is a no-op.
func (s *accountService) Activate(ctx context.Context, userID uint, activationToken string) (*models.User, bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, err
	}

	if !s.signer.Verify(user.ID, user.Email, user.PasswordHash, activationToken) {
		return nil, false, ErrInvalidActivationToken
	}

	if user.IsActive {
		return user, true, nil
	}

	if err := s.userRepo.UpdateActive(ctx, user.ID, true); err != nil {
		return nil, false, err
	}
	user.IsActive = true

	return user, false, nil
}

func (s *accountService) Authenticate(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrAccountInactive
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	return signed, user, nil
}

func (s *accountService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// AssignRole replaces the user's role; holding more than one is impossible.
func (s *accountService) AssignRole(ctx context.Context, userID uint, role models.Role) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, ErrUnknownRole
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

func (s *accountService) DeleteUser(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.IsSuperuser {
		return ErrSuperuserDelete
	}
	return s.userRepo.Delete(ctx, userID)
}

func validatePassword(password string) error {
	var problems []string
	if len(password) < 8 {
		problems = append(problems, "must be at least 8 characters long")
	}
	if !upperRe.MatchString(password) {
		problems = append(problems, "must include at least one uppercase letter")
	}
	if !lowerRe.MatchString(password) {
		problems = append(problems, "must include at least one lowercase letter")
	}
	if !digitRe.MatchString(password) {
		problems = append(problems, "must include at least one number")
	}
	if !specialRe.MatchString(password) {
		problems = append(problems, "must include at least one special character (@#$%^&+=)")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(problems, "; "))
	}
	return nil
}
