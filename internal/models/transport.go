package models

import (
	"time"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/service"
)

type AuthReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResp struct {
	AccessToken string `json:"access_token"`
}

type UserUpdateReq struct {
	Email     *string `json:"email" validate:"omitnil,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type UserResp struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookmarkCreateReq struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Link        string  `json:"link" validate:"required"`
}

type BookmarkUpdateReq struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description"`
	Link        *string `json:"link" validate:"omitnil,min=1"`
}

type BookmarkResp struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	UserID      uint64    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MessageResp struct {
	Message string `json:"message"`
}

type ErrorResp struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func (r BookmarkCreateReq) ToService() service.BookmarkCreate {
	return service.BookmarkCreate{
		Title:       r.Title,
		Description: r.Description,
		Link:        r.Link,
	}
}

func (r BookmarkUpdateReq) ToService() service.BookmarkPatch {
	return service.BookmarkPatch{
		Title:       r.Title,
		Description: r.Description,
		Link:        r.Link,
	}
}

func (r UserUpdateReq) ToService() service.UserPatch {
	return service.UserPatch{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

func NewUserResp(u *db.User) UserResp {
	return UserResp{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewBookmarkResp(b *db.Bookmark) BookmarkResp {
	return BookmarkResp{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Link:        b.Link,
		UserID:      b.UserID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func NewBookmarkRespList(bookmarks []db.Bookmark) []BookmarkResp {
	resp := make([]BookmarkResp, len(bookmarks))
	for i := range bookmarks {
		resp[i] = NewBookmarkResp(&bookmarks[i])
	}
	return resp
}
