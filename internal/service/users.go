package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
)

type (
	// UserPatch holds optional profile fields; nil means leave unchanged.
	UserPatch struct {
		Email     *string
		FirstName *string
		LastName  *string
	}

	Users struct {
		db     *gorm.DB
		logger *zap.SugaredLogger
	}
)

func (p UserPatch) columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	return cols
}

func NewUsers(db *gorm.DB, l *zap.SugaredLogger) *Users {
	return &Users{
		db:     db,
		logger: l,
	}
}

// GetSelf returns the identity resolved by the auth guard as is.
func (s *Users) GetSelf(caller *db.User) *db.User {
	return caller
}

// UpdateSelf applies the patch to the caller's own row. The returned user never
// carries the credential hash.
func (s *Users) UpdateSelf(ctx context.Context, userID uint64, patch UserPatch) (*db.User, error) {
	if patch.Email != nil {
		if *patch.Email == "" {
			return nil, errors.Wrap(ErrValidation, "email is empty")
		}
		if err := s.ensureEmailFree(ctx, userID, *patch.Email); err != nil {
			return nil, err
		}
	}

	user := db.User{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cols := patch.columns(); len(cols) != 0 {
			res := tx.Model(&db.User{}).Where("id = ?", userID).Updates(cols)
			if res.Error != nil {
				if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
					return ErrCredentialsTaken
				}
				return errors.Wrap(res.Error, "update user")
			}
		}

		res := tx.First(&user, userID)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return ErrUnauthenticated
			}
			return errors.Wrap(res.Error, "get user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Hash = ""
	return &user, nil
}

func (s *Users) ensureEmailFree(ctx context.Context, userID uint64, email string) error {
	var count int64
	res := s.db.WithContext(ctx).Model(&db.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count)
	if res.Error != nil {
		return errors.Wrap(res.Error, "count users by email")
	}
	if count != 0 {
		return ErrCredentialsTaken
	}
	return nil
}
