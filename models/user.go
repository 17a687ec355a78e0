package models

type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleOwner
}

// User is the session user. It lives only in the session store.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	Avatar    string   `json:"avatar,omitempty"`
	Favorites []string `json:"favorites"`
}

func (u *User) IsOwner() bool {
	return u != nil && u.Role == RoleOwner
}

func (u *User) HasFavorite(roomID string) bool {
	for _, id := range u.Favorites {
		if id == roomID {
			return true
		}
	}
	return false
}

// ToggleFavorite flips membership of roomID and reports whether it is now a favorite.
func (u *User) ToggleFavorite(roomID string) bool {
	for i, id := range u.Favorites {
		if id == roomID {
			u.Favorites = append(u.Favorites[:i:i], u.Favorites[i+1:]...)
			return false
		}
	}
	u.Favorites = append(u.Favorites, roomID)
	return true
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"omitempty,oneof=student owner"`
}

type SignupInput struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"omitempty,oneof=student owner"`
}

// AuthResult is returned by login and signup.
type AuthResult struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      *User  `json:"user"`
}

type FavoriteResult struct {
	RoomID    string   `json:"roomId"`
	Favorited bool     `json:"favorited"`
	Favorites []string `json:"favorites"`
}
