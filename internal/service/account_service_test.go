package service

import (
	"context"
	"testing"

	"github.com/eventhub/eventhub/internal/mailer"
	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/pkg/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newTestAccountService(users *mockUserRepo, queue *recordingQueue) AccountService {
	signer := token.NewSigner("test-activation-key")
	var mail *mailer.Mailer
	if queue != nil {
		mail = mailer.New(queue, "http://localhost:3000/", "noreply@eventhub.local")
	}
	return NewAccountService(users, signer, mail, testJWTSecret)
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username:        "asha",
		FirstName:       "Asha",
		LastName:        "Rahman",
		Email:           "asha@example.com",
		Password:        "Str0ng@pass",
		ConfirmPassword: "Str0ng@pass",
	}
}

func TestRegister_Success(t *testing.T) {
	queue := &recordingQueue{}
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = 1
			return nil
		},
	}

	svc := newTestAccountService(users, queue)
	user, err := svc.Register(context.Background(), registerInput())

	require.NoError(t, err)
	assert.False(t, user.IsActive, "new accounts start inactive")
	assert.Equal(t, models.RoleUser, user.Role, "new accounts get the User role")
	assert.NotEqual(t, "Str0ng@pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ng@pass")))

	require.Len(t, queue.sent, 1)
	assert.Equal(t, mailer.RouteAccountActivation, queue.sent[0].Route)
	msg := queue.sent[0].Payload.(mailer.Message)
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Contains(t, msg.Body, "user/activate/1/")
}

func TestRegister_PasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "S@1a"},
		{"no uppercase", "weak@pass1"},
		{"no lowercase", "WEAK@PASS1"},
		{"no digit", "Weak@password"},
		{"no special character", "Weakpass1"},
	}

	svc := newTestAccountService(&mockUserRepo{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := registerInput()
			input.Password = tt.password
			input.ConfirmPassword = tt.password

			_, err := svc.Register(context.Background(), input)
			assert.ErrorIs(t, err, ErrWeakPassword)
		})
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	input := registerInput()
	input.ConfirmPassword = "Different@1"

	svc := newTestAccountService(&mockUserRepo{}, nil)
	_, err := svc.Register(context.Background(), input)

	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 9, Username: username}, nil
		},
	}

	svc := newTestAccountService(users, nil)
	_, err := svc.Register(context.Background(), registerInput())

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 9, Email: email}, nil
		},
	}

	svc := newTestAccountService(users, nil)
	_, err := svc.Register(context.Background(), registerInput())

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestActivate_FlipsOnce(t *testing.T) {
	signer := token.NewSigner("test-activation-key")
	stored := &models.User{ID: 1, Email: "asha@example.com", PasswordHash: "hash", IsActive: false}
	activated := 0
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) { return stored, nil },
		updateActiveFn: func(ctx context.Context, id uint, active bool) error {
			activated++
			stored.IsActive = active
			return nil
		},
	}

	svc := newTestAccountService(users, nil)
	valid := signer.ActivationToken(1, "asha@example.com", "hash")

	user, already, err := svc.Activate(context.Background(), 1, valid)
	require.NoError(t, err)
	assert.False(t, already)
	assert.True(t, user.IsActive)

	// Same link again: no error, no second write.
	user, already, err = svc.Activate(context.Background(), 1, valid)
	require.NoError(t, err)
	assert.True(t, already)
	assert.True(t, user.IsActive)
	assert.Equal(t, 1, activated)
}

func TestActivate_InvalidToken(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 1, Email: "asha@example.com", PasswordHash: "hash"}, nil
		},
	}

	svc := newTestAccountService(users, nil)
	_, _, err := svc.Activate(context.Background(), 1, "tampered")

	assert.ErrorIs(t, err, ErrInvalidActivationToken)
}

func TestAuthenticate_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Str0ng@pass"), bcrypt.MinCost)
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username, PasswordHash: string(hash), IsActive: true, Role: models.RoleOrganizer}, nil
		},
	}

	svc := newTestAccountService(users, nil)
	signed, user, err := svc.Authenticate(context.Background(), "asha", "Str0ng@pass")

	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganizer, user.Role)

	parsed, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["user_id"])
	assert.Equal(t, "Organizer", claims["role"])
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Str0ng@pass"), bcrypt.MinCost)
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, PasswordHash: string(hash), IsActive: true}, nil
		},
	}

	svc := newTestAccountService(users, nil)
	_, _, err := svc.Authenticate(context.Background(), "asha", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Str0ng@pass"), bcrypt.MinCost)
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, PasswordHash: string(hash), IsActive: false}, nil
		},
	}

	svc := newTestAccountService(users, nil)
	_, _, err := svc.Authenticate(context.Background(), "asha", "Str0ng@pass")

	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAssignRole_ReplacesRole(t *testing.T) {
	var assigned models.Role
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "asha", Role: models.RoleUser}, nil
		},
		updateRoleFn: func(ctx context.Context, id uint, role models.Role) error {
			assigned = role
			return nil
		},
	}

	svc := newTestAccountService(users, nil)
	user, err := svc.AssignRole(context.Background(), 1, models.RoleOrganizer)

	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganizer, assigned)
	assert.Equal(t, models.RoleOrganizer, user.Role)
}

func TestAssignRole_UnknownRole(t *testing.T) {
	svc := newTestAccountService(&mockUserRepo{}, nil)
	_, err := svc.AssignRole(context.Background(), 1, models.Role("Moderator"))

	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestDeleteUser_SuperuserRefused(t *testing.T) {
	deleted := false
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsSuperuser: true}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}

	svc := newTestAccountService(users, nil)
	err := svc.DeleteUser(context.Background(), 1)

	assert.ErrorIs(t, err, ErrSuperuserDelete)
	assert.False(t, deleted)
}

func TestDeleteUser_Success(t *testing.T) {
	deleted := uint(0)
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}

	svc := newTestAccountService(users, nil)
	require.NoError(t, svc.DeleteUser(context.Background(), 4))
	assert.Equal(t, uint(4), deleted)
}
