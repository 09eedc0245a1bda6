package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
)

// NoBookmarksMessage is rendered in place of an empty bookmark list.
const NoBookmarksMessage = "No bookmarks yet, create one!"

type (
	BookmarkCreate struct {
		Title       string
		Description *string
		Link        string
	}

	// BookmarkPatch holds optional fields; nil means leave unchanged.
	BookmarkPatch struct {
		Title       *string
		Description *string
		Link        *string
	}

	Bookmarks struct {
		db     *gorm.DB
		logger *zap.SugaredLogger
	}
)

func (p BookmarkPatch) columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Link != nil {
		cols["link"] = *p.Link
	}
	return cols
}

func NewBookmarks(db *gorm.DB, l *zap.SugaredLogger) *Bookmarks {
	return &Bookmarks{
		db:     db,
		logger: l,
	}
}

func (s *Bookmarks) Create(ctx context.Context, userID uint64, in BookmarkCreate) (*db.Bookmark, error) {
	if in.Title == "" || in.Link == "" {
		return nil, errors.Wrap(ErrValidation, "title and link are required")
	}

	model := db.Bookmark{
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
		UserID:      userID,
	}

	res := s.db.WithContext(ctx).Create(&model)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create bookmark")
	}

	s.logger.Debugw("bookmark created", "bookmark_id", model.ID, "user_id", userID)
	return &model, nil
}

func (s *Bookmarks) ListOwned(ctx context.Context, userID uint64) ([]db.Bookmark, error) {
	sql, args, err := squirrel.
		Select("id", "created_at", "updated_at", "title", "description", "link", "user_id").
		From("bookmarks").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	bookmarks := make([]db.Bookmark, 0)
	res := s.db.WithContext(ctx).Raw(sql, args...).Scan(&bookmarks)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}

	return bookmarks, nil
}

func (s *Bookmarks) GetOwned(ctx context.Context, userID, bookmarkID uint64) (*db.Bookmark, error) {
	model := db.Bookmark{}
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookmarkID, userID).
		First(&model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, errors.Wrap(res.Error, "find bookmark")
	}

	return &model, nil
}

func (s *Bookmarks) UpdateOwned(ctx context.Context, userID, bookmarkID uint64, patch BookmarkPatch) (*db.Bookmark, error) {
	if (patch.Title != nil && *patch.Title == "") || (patch.Link != nil && *patch.Link == "") {
		return nil, errors.Wrap(ErrValidation, "title and link cannot be emptied")
	}

	var updated *db.Bookmark

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := findOwned(tx, userID, bookmarkID)
		if err != nil {
			return err
		}

		cols := patch.columns()
		if len(cols) == 0 {
			updated = model
			return nil
		}

		res := tx.Model(&db.Bookmark{}).
			Where("id = ? AND user_id = ?", bookmarkID, userID).
			Updates(cols)
		if res.Error != nil {
			return errors.Wrap(res.Error, "update bookmark")
		}
		if res.RowsAffected == 0 {
			return ErrBookmarkNotOwned
		}

		updated = &db.Bookmark{}
		if res := tx.First(updated, bookmarkID); res.Error != nil {
			return errors.Wrap(res.Error, "reload bookmark")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Bookmarks) DeleteOwned(ctx context.Context, userID, bookmarkID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwned(tx, userID, bookmarkID); err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", bookmarkID, userID).Delete(&db.Bookmark{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete bookmark")
		}
		if res.RowsAffected == 0 {
			return ErrBookmarkNotOwned
		}

		s.logger.Debugw("bookmark deleted", "bookmark_id", bookmarkID, "user_id", userID)
		return nil
	})
}

// findOwned loads the bookmark by id alone and then applies requireOwned.
func findOwned(tx *gorm.DB, userID, bookmarkID uint64) (*db.Bookmark, error) {
	model := db.Bookmark{}
	res := tx.Limit(1).Find(&model, bookmarkID)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find bookmark")
	}
	if res.RowsAffected == 0 {
		return requireOwned(nil, userID)
	}
	return requireOwned(&model, userID)
}

func requireOwned(model *db.Bookmark, userID uint64) (*db.Bookmark, error) {
	if model == nil || model.UserID != userID {
		return nil, ErrBookmarkNotOwned
	}
	return model, nil
}
