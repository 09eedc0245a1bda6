package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
)

type Auth struct {
	db         *gorm.DB
	tokens     *auth.Tokens
	bcryptCost int
	logger     *zap.SugaredLogger
}

func NewAuth(db *gorm.DB, tokens *auth.Tokens, bcryptCost int, l *zap.SugaredLogger) *Auth {
	return &Auth{
		db:         db,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     l,
	}
}

func NewAuthFromConfig(db *gorm.DB, tokens *auth.Tokens, cfg *config.Config, l *zap.SugaredLogger) *Auth {
	return NewAuth(db, tokens, cfg.BcryptCost, l)
}

// Signup registers the email and returns an access token for the new user.
func (s *Auth) Signup(ctx context.Context, email, pass string) (string, error) {
	if email == "" || pass == "" {
		return "", errors.Wrap(ErrValidation, "email and password are required")
	}

	var count int64
	res := s.db.WithContext(ctx).Model(&db.User{}).Where("email = ?", email).Count(&count)
	if res.Error != nil {
		return "", errors.Wrap(res.Error, "count users by email")
	}
	if count != 0 {
		return "", ErrCredentialsTaken
	}

	hash, err := s.bcryptGen(pass)
	if err != nil {
		return "", errors.Wrap(err, "bcryptGen")
	}

	user := db.User{
		Email: email,
		Hash:  hash,
	}
	res = s.db.WithContext(ctx).Create(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return "", ErrCredentialsTaken
		}
		return "", errors.Wrap(res.Error, "create user")
	}

	s.logger.Infow("user signed up", "user_id", user.ID)
	return s.tokens.Issue(user.ID)
}

func (s *Auth) Signin(ctx context.Context, email, pass string) (string, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", ErrCredentialsIncorrect
		}
		return "", errors.Wrap(res.Error, "find user")
	}

	if err := s.bcryptCheck(user.Hash, pass); err != nil {
		return "", ErrCredentialsIncorrect
	}

	return s.tokens.Issue(user.ID)
}

// Authenticate resolves a bearer token to the user row it was issued for.
func (s *Auth) Authenticate(ctx context.Context, token string) (*db.User, error) {
	if token == "" {
		return nil, errors.Wrap(ErrUnauthenticated, "missing token")
	}

	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, errors.Wrap(ErrUnauthenticated, err.Error())
	}

	user := db.User{}
	res := s.db.WithContext(ctx).First(&user, userID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrUnauthenticated, "user no longer exists")
		}
		return nil, errors.Wrap(res.Error, "find user")
	}

	return &user, nil
}

func (s *Auth) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), s.bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}

func (s *Auth) bcryptCheck(hash, pass string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
}
